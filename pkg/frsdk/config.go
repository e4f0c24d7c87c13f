package frsdk

import (
	"github.com/frsdk/frsdk-go/internal/native"
	"github.com/frsdk/frsdk-go/pkg/frsdk/logging"
)

// Config expresses the knobs required to open the native FRSDK library.
type Config struct {
	// LibraryPath locates the FRSDK shared object. Leaving it empty uses
	// DefaultLibraryPath.
	LibraryPath string

	// Logger receives lifecycle events at debug level and native failures at
	// warn level. Nil binds to slog.Default().
	Logger logging.Logger
}

// DefaultLibraryPath returns the shared object location used by the SDK
// distribution layout, relative to the working directory.
func DefaultLibraryPath() string {
	return native.DefaultLibraryPath()
}

func (c Config) libraryPath() string {
	if c.LibraryPath == "" {
		return DefaultLibraryPath()
	}
	return c.LibraryPath
}

func (c Config) logger() logging.Logger {
	if c.Logger == nil {
		return logging.New(nil)
	}
	return c.Logger
}
