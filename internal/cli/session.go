package cli

import (
	"errors"
	"fmt"

	"github.com/frsdk/frsdk-go/pkg/frsdk"
)

type sessionParts int

const (
	sessionDetector sessionParts = 1 << iota
	sessionRecognizer
)

// session bundles the library with the instances a command needs. Close
// destroys the instances before unloading the library on every exit path.
type session struct {
	lib     *frsdk.Library
	det     *frsdk.Detector
	rec     *frsdk.Recognizer
	created bool
	done    bool
}

func openSession(opts *Options, parts sessionParts) (s *session, err error) {
	open := opts.Open
	if open == nil {
		open = frsdk.Open
	}
	lib, err := open(frsdk.Config{LibraryPath: opts.LibraryPath, Logger: opts.Logger})
	if err != nil {
		return nil, fmt.Errorf("open FRSDK library %s: %w", opts.LibraryPath, err)
	}
	s = &session{lib: lib}
	defer func() {
		if err != nil {
			err = errors.Join(err, s.Close())
			s = nil
		}
	}()

	if parts&sessionDetector != 0 {
		if s.det, err = lib.NewDetector(); err != nil {
			return s, err
		}
	}
	if parts&sessionRecognizer != 0 {
		if s.rec, err = lib.NewRecognizer(opts.ModelPath); err != nil {
			return s, err
		}
		if s.created, err = s.rec.OpenGallery(opts.GalleryPath); err != nil {
			return s, err
		}
	}
	return s, nil
}

func (s *session) Close() error {
	if s == nil || s.done {
		return nil
	}
	s.done = true
	var errs []error
	if s.det != nil {
		errs = append(errs, s.det.Close())
	}
	if s.rec != nil {
		errs = append(errs, s.rec.Close())
	}
	errs = append(errs, s.lib.Close())
	return errors.Join(errs...)
}
