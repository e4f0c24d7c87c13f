package frsdk

import (
	"testing"

	"github.com/frsdk/frsdk-go/internal/native/nativefake"
	"github.com/frsdk/frsdk-go/pkg/frsdk/logging"
)

func newTestLibrary(t *testing.T) (*Library, *nativefake.Lib) {
	t.Helper()
	fake := nativefake.New()
	return NewLibrary(fake, Config{LibraryPath: "fake://libFRSDK.so", Logger: logging.Discard()}), fake
}
