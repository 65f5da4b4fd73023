package foldericon

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	// iconDirectory is the folder icons get stored in, it's never scanned
	iconDirectory = "ICON"
	iconExt       = ".ico"
	numWorkers    = 10
)

type job struct {
	source      string
	destination string
}

func (c *Converter) findImages(ctx context.Context, base string) (<-chan job, <-chan error, error) {
	out := make(chan job)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)

		// Two sources with the same name but different extensions
		// would otherwise race to write the same icon
		claimed := make(map[string]struct{})

		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if file != base {
				// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
				if info.Name()[0] == '.' {
					if info.Mode().IsDir() {
						return filepath.SkipDir
					}
					return nil
				}

				if info.Mode().IsDir() && strings.EqualFold(info.Name(), iconDirectory) {
					return filepath.SkipDir
				}
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() {
				return nil
			}

			ext := filepath.Ext(file)
			if !IsSupportedRasterExtension(file) || strings.EqualFold(ext, iconExt) {
				return nil
			}

			dst := strings.TrimSuffix(file, ext) + iconExt
			if _, ok := claimed[dst]; ok {
				c.logger.WithField("source", file).Infof("Skipping, \"%s\" is produced from another image", dst)
				return nil
			}
			claimed[dst] = struct{}{}

			if c.fs.Exists(dst) {
				c.logger.WithField("source", file).Infof("Skipping, \"%s\" already exists", dst)
				return nil
			}

			select {
			case out <- job{source: file, destination: dst}:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (c *Converter) imageWorker(ctx context.Context, in <-chan job) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for j := range in {
			if err := c.Encode(j.source, j.destination); err != nil {
				errc <- err
				return
			}
			c.logger.WithField("source", j.source).Infof("Wrote \"%s\"", j.destination)
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks the directory tree rooted at path and converts every supported
// image into an icon container alongside it, named after the image with the
// ".ico" extension. Hidden entries, directories named "ICON" and images whose
// icon already exists are skipped. The first error stops the scan.
func (c *Converter) Scan(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	jobs, errc, err := c.findImages(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < numWorkers; i++ {
		errc, err := c.imageWorker(ctx, jobs)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
