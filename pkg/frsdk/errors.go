package frsdk

import (
	"errors"
	"fmt"
	"strings"

	"github.com/frsdk/frsdk-go/internal/native"
)

var (
	// ErrNotBuilt reports that the native loader is not available for the
	// current platform.
	ErrNotBuilt = errors.New("frsdk: native bindings not built for this platform")

	// ErrLibraryClosed is returned by any call on a Library after Close.
	ErrLibraryClosed = errors.New("frsdk: library closed")

	// ErrInstancesOpen is returned by Library.Close while detectors or
	// recognizers created from it have not been closed.
	ErrInstancesOpen = errors.New("frsdk: instances still open")

	// ErrInstanceClosed is returned by any call on a Detector or Recognizer
	// after Close.
	ErrInstanceClosed = errors.New("frsdk: instance closed")

	// ErrInvalidID reports a person or face identifier that does not fit the
	// fixed-width native field.
	ErrInvalidID = errors.New("frsdk: invalid identifier")

	ErrInvalidMaxResults = errors.New("frsdk: max results must be between 1 and 2147483647")
	ErrImageTooLarge     = errors.New("frsdk: image buffer exceeds 2147483647 bytes")
	ErrIndexRange        = errors.New("frsdk: face index outside int32 range")

	// ErrUnexpectedStatus reports a sub-status the library is not documented
	// to produce.
	ErrUnexpectedStatus = errors.New("frsdk: unexpected native status")
)

// Kind classifies native failures by call family.
type Kind int

const (
	KindLifecycle Kind = iota + 1
	KindParams
	KindDetect
	KindGallery
	KindRecognize
)

func (k Kind) String() string {
	switch k {
	case KindLifecycle:
		return "lifecycle"
	case KindParams:
		return "params"
	case KindDetect:
		return "detect"
	case KindGallery:
		return "gallery"
	case KindRecognize:
		return "recognize"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Code is a native FRSDKE_* status code.
type Code int32

const (
	CodeOK                       Code = native.FRSDKE_OK
	CodeInvalidInstance          Code = native.FRSDKE_INVALID_INSTANCE
	CodeInvalidFaceID            Code = native.FRSDKE_INVALID_FACE_ID
	CodeBadAlloc                 Code = native.FRSDKE_BAD_ALLOC
	CodeDetectInitModelFailed    Code = native.FRSDKE_FACE_DETECT_INIT_MODEL_FAILED
	CodeRecognizeInitModelFailed Code = native.FRSDKE_FACE_RECOGNIZE_INIT_MODEL_FAILED
	CodeInvalidInputArguments    Code = native.FRSDKE_INVALID_INPUT_ARGUMENTS
	CodeInvalidOutputArguments   Code = native.FRSDKE_INVALID_OUTPUT_ARGUMENTS
	CodeOpenFacesFileFailed      Code = native.FRSDKE_OPEN_FACES_FILE_FAIL
	CodeReadFacesFileFailed      Code = native.FRSDKE_READ_FACES_FILE_FAIL
	CodeWriteFacesFileFailed     Code = native.FRSDKE_WRITE_FACES_FILE_FAIL
	CodeWrongFacesFile           Code = native.FRSDKE_WRONG_FACES_FILE
	CodeImageDecodeFailed        Code = native.FRSDKE_IMG_DECODE_FAIL
)

var codeNames = map[Code]string{
	CodeOK:                       "FRSDKE_OK",
	CodeInvalidInstance:          "FRSDKE_INVALID_INSTANCE",
	CodeInvalidFaceID:            "FRSDKE_INVALID_FACE_ID",
	CodeBadAlloc:                 "FRSDKE_BAD_ALLOC",
	CodeDetectInitModelFailed:    "FRSDKE_FACE_DETECT_INIT_MODEL_FAILED",
	CodeRecognizeInitModelFailed: "FRSDKE_FACE_RECOGNIZE_INIT_MODEL_FAILED",
	CodeInvalidInputArguments:    "FRSDKE_INVALID_INPUT_ARGUMENTS",
	CodeInvalidOutputArguments:   "FRSDKE_INVALID_OUTPUT_ARGUMENTS",
	CodeOpenFacesFileFailed:      "FRSDKE_OPEN_FACES_FILE_FAIL",
	CodeReadFacesFileFailed:      "FRSDKE_READ_FACES_FILE_FAIL",
	CodeWriteFacesFileFailed:     "FRSDKE_WRITE_FACES_FILE_FAIL",
	CodeWrongFacesFile:           "FRSDKE_WRONG_FACES_FILE",
	CodeImageDecodeFailed:        "FRSDKE_IMG_DECODE_FAIL",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int32(c))
}

// Arg records one argument of a failed native call.
type Arg struct {
	Name  string
	Value any
}

// Error is returned for every non-zero native status. It names the entry
// point, the status code and the arguments that produced it. Image buffers
// are recorded by length only.
type Error struct {
	Op   string
	Kind Kind
	Code Code
	Args []Arg
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "frsdk: %s failed: %s (%d)", e.Op, e.Code, int32(e.Code))
	for i, a := range e.Args {
		if i == 0 {
			b.WriteString(" [")
		} else {
			b.WriteByte(' ')
		}
		if s, ok := a.Value.(string); ok {
			fmt.Fprintf(&b, "%s=%q", a.Name, s)
		} else {
			fmt.Fprintf(&b, "%s=%v", a.Name, a.Value)
		}
	}
	if len(e.Args) > 0 {
		b.WriteByte(']')
	}
	return b.String()
}

// IsKind reports whether err wraps a native failure of the given kind.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// CodeOf extracts the native status code from err.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return 0, false
	}
	return e.Code, true
}

func statusError(op string, kind Kind, rc int32, args ...Arg) error {
	if rc == native.FRSDKE_OK {
		return nil
	}
	return &Error{Op: op, Kind: kind, Code: Code(rc), Args: args}
}

func imageArg(img []byte) Arg {
	return Arg{Name: "image_bytes", Value: len(img)}
}

// remapError converts native layer errors to public API errors.
func remapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, native.ErrNotBuilt) {
		return ErrNotBuilt
	}
	return fmt.Errorf("frsdk: %w", err)
}
