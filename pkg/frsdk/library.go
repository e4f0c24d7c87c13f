package frsdk

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"sync"

	"github.com/frsdk/frsdk-go/internal/native"
	"github.com/frsdk/frsdk-go/pkg/frsdk/logging"
)

// Library is an opened binding context for the native FRSDK library. It is
// owned by the caller; every Detector and Recognizer created from it must be
// closed before the Library itself.
type Library struct {
	mu     sync.Mutex
	sym    Symbols
	log    logging.Logger
	path   string
	live   int
	closed bool
}

// Open loads the shared object named by cfg.LibraryPath.
func Open(cfg Config) (*Library, error) {
	path := cfg.libraryPath()
	lib, err := native.Load(path)
	if err != nil {
		return nil, remapError(err)
	}
	l := newLibrary(lib, path, cfg.logger())
	l.log.Debug(context.Background(), "library opened")
	return l, nil
}

// NewLibrary binds an already loaded symbol table. cfg.LibraryPath is only
// recorded; nothing is loaded from it.
func NewLibrary(sym Symbols, cfg Config) *Library {
	return newLibrary(sym, cfg.libraryPath(), cfg.logger())
}

func newLibrary(sym Symbols, path string, log logging.Logger) *Library {
	return &Library{
		sym:  sym,
		path: path,
		log:  log.With("library", path),
	}
}

// Path returns the location the shared object was loaded from.
func (l *Library) Path() string {
	return l.path
}

// Close unloads the native library. It fails with ErrInstancesOpen while
// detectors or recognizers are still alive and with ErrLibraryClosed when
// called twice.
func (l *Library) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrLibraryClosed
	}
	if l.live > 0 {
		return fmt.Errorf("%w: %d", ErrInstancesOpen, l.live)
	}
	if err := l.sym.Close(); err != nil {
		return remapError(err)
	}
	l.closed = true
	l.log.Debug(context.Background(), "library closed")
	return nil
}

// CreateGallery writes a new, empty gallery file at path. It does not need an
// instance.
func (l *Library) CreateGallery(path string) error {
	if err := l.usable(); err != nil {
		return err
	}
	return l.check("FR_CreateNewGallery", KindGallery, l.sym.FRCreateNewGallery(path),
		Arg{"gallery_path", path})
}

// EnsureGallery creates an empty gallery at path unless a file already exists
// there. It reports whether a gallery was created.
func (l *Library) EnsureGallery(path string) (bool, error) {
	if err := l.usable(); err != nil {
		return false, err
	}
	info, err := os.Stat(path)
	switch {
	case err == nil:
		if info.IsDir() {
			return false, fmt.Errorf("frsdk: gallery path %s is a directory", path)
		}
		return false, nil
	case errors.Is(err, fs.ErrNotExist):
		if err := l.CreateGallery(path); err != nil {
			return false, err
		}
		l.log.Info(context.Background(), "created empty gallery", "gallery_path", path)
		return true, nil
	default:
		return false, fmt.Errorf("frsdk: stat gallery: %w", err)
	}
}

func (l *Library) usable() error {
	if l == nil {
		return ErrLibraryClosed
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrLibraryClosed
	}
	return nil
}

func (l *Library) acquire() error {
	if l == nil {
		return ErrLibraryClosed
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrLibraryClosed
	}
	l.live++
	return nil
}

func (l *Library) release() {
	l.mu.Lock()
	l.live--
	l.mu.Unlock()
}

// check converts a native status into an *Error and logs failures.
func (l *Library) check(op string, kind Kind, rc int32, args ...Arg) error {
	err := statusError(op, kind, rc, args...)
	if err == nil {
		return nil
	}
	attrs := []any{"op", op, "kind", kind.String(), "code", Code(rc).String()}
	for _, a := range args {
		if a.Name == "image_bytes" {
			attrs = append(attrs, logging.Redacted("image"))
		}
		attrs = append(attrs, a.Name, a.Value)
	}
	l.log.Warn(context.Background(), "native call failed", attrs...)
	return err
}

func checkImage(img []byte) error {
	if len(img) > math.MaxInt32 {
		return fmt.Errorf("%w: %d", ErrImageTooLarge, len(img))
	}
	return nil
}
