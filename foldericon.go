/*
Package foldericon is a library for producing the multi-resolution icons used
to decorate folders, converting ordinary images into icon containers.
*/
package foldericon

import (
	"io/ioutil"

	"github.com/sirupsen/logrus"
)

// Converter encodes images as icon containers, optionally reusing previously
// encoded containers held in a Cache.
type Converter struct {
	cache   *Cache
	fs      Filesystem
	deleter *Deleter
	logger  logrus.FieldLogger
}

// New returns a Converter. cache may be nil to always encode, logger may be
// nil to discard all log output.
func New(cache *Cache, logger logrus.FieldLogger) *Converter {
	if logger == nil {
		logger = discardLogger()
	}
	return &Converter{
		cache:   cache,
		fs:      OS,
		deleter: NewDeleter(OS, logger),
		logger:  logger,
	}
}

// DeleteWithRetry removes path using the Converter's filesystem and logger,
// see Deleter.DeleteWithRetry.
func (c *Converter) DeleteWithRetry(path string) bool {
	return c.deleter.DeleteWithRetry(path)
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(ioutil.Discard)
	return l
}
