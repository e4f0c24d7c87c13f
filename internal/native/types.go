package native

import (
	"errors"
	"path/filepath"
	"runtime"
)

// IDWidth is the fixed width of the personID/faceID character arrays in the
// native ABI.
const IDWidth = 24

// Status codes returned by every FRSDK entry point.
const (
	FRSDKE_OK                               = 0
	FRSDKE_INVALID_INSTANCE                 = -10001
	FRSDKE_INVALID_FACE_ID                  = -10000
	FRSDKE_BAD_ALLOC                        = -9999
	FRSDKE_FACE_DETECT_INIT_MODEL_FAILED    = -9998
	FRSDKE_FACE_RECOGNIZE_INIT_MODEL_FAILED = -9997
	FRSDKE_INVALID_INPUT_ARGUMENTS          = -9996
	FRSDKE_INVALID_OUTPUT_ARGUMENTS         = -9995
	FRSDKE_OPEN_FACES_FILE_FAIL             = -9994
	FRSDKE_READ_FACES_FILE_FAIL             = -9993
	FRSDKE_WRITE_FACES_FILE_FAIL            = -9992
	FRSDKE_WRONG_FACES_FILE                 = -9991
	FRSDKE_IMG_DECODE_FAIL                  = -9990
)

// Rect mirrors struct Rect.
type Rect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

// RecogResult mirrors struct FaceRecogRlt.
type RecogResult struct {
	PersonID [IDWidth]byte
	FaceID   [IDWidth]byte
	Score    float32
}

// ErrNotBuilt reports that the native loader is not available on the current
// platform.
var ErrNotBuilt = errors.New("frsdk/internal/native: native loader not built for this platform")

// DefaultLibraryPath returns the location the SDK distribution uses for the
// shared object, relative to the working directory.
func DefaultLibraryPath() string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(".", "frsdk", "lib", "darwin64", "C", "libFRSDK.dylib")
	case "windows":
		return filepath.Join(".", "frsdk", "lib", "win64", "C", "FRSDK.dll")
	default:
		return filepath.Join(".", "frsdk", "lib", "linux64", "C", "libFRSDK.so")
	}
}
