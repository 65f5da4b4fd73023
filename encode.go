package foldericon

import (
	"bytes"
	"io"

	"github.com/bodgit/foldericon/ico"
)

// Encode converts the image at source into an icon container written to
// destination. The source is fully decoded before destination is created so
// an unreadable source never leaves a file behind, however a failure while
// writing may leave destination incomplete. Every failure is returned as an
// *EncodeError.
func (c *Converter) Encode(source, destination string) error {
	m, sha, err := load(source)
	if err != nil {
		return &EncodeError{Op: "decode", Path: source, Err: err}
	}

	var cached []byte
	if c.cache != nil {
		if cached, err = c.cache.Find(sha); err != nil {
			return &EncodeError{Op: "cache", Path: source, Err: err}
		}
	}

	w, err := c.fs.OpenForExclusiveWrite(destination)
	if err != nil {
		return &EncodeError{Op: "create", Path: destination, Err: err}
	}

	b := new(bytes.Buffer)
	if cached != nil {
		c.logger.WithField("source", source).Debug("Using cached icon")
		_, err = w.Write(cached)
	} else {
		var dst io.Writer = w
		if c.cache != nil {
			dst = io.MultiWriter(w, b)
		}
		err = ico.Encode(dst, m)
	}
	if err != nil {
		w.Close()
		return &EncodeError{Op: "encode", Path: destination, Err: err}
	}

	if err := w.Close(); err != nil {
		return &EncodeError{Op: "close", Path: destination, Err: err}
	}

	if c.cache != nil && cached == nil {
		if err := c.cache.Store(sha, b.Bytes()); err != nil {
			return &EncodeError{Op: "cache", Path: source, Err: err}
		}
	}

	return nil
}

// Encode converts the image at source into an icon container written to
// destination without a cache, see Converter.Encode.
func Encode(source, destination string) error {
	return New(nil, nil).Encode(source, destination)
}
