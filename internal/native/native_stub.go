//go:build !((linux || darwin) && (amd64 || arm64))

package native

// Stub implementations for platforms without the purego loader or with a
// 32-bit C long. These allow the package to compile but Load always returns
// ErrNotBuilt, so none of the methods below is reachable.

type Lib struct{}

func Load(string) (*Lib, error) { return nil, ErrNotBuilt }

func (l *Lib) Path() string { return "" }

func (l *Lib) Close() error { return nil }

func (l *Lib) FDCreateIns(*int64) int32 { return FRSDKE_INVALID_INSTANCE }

func (l *Lib) FDDestroyIns(*int64) int32 { return FRSDKE_INVALID_INSTANCE }

func (l *Lib) FDSetParams(int64, float64, float64) int32 { return FRSDKE_INVALID_INSTANCE }

func (l *Lib) FDDetectFace(int64, []byte) int32 { return FRSDKE_INVALID_INSTANCE }

func (l *Lib) FDGetFaceNum(int64, *int32) int32 { return FRSDKE_INVALID_INSTANCE }

func (l *Lib) FDGetFace(int64, int32, *Rect) int32 { return FRSDKE_INVALID_INSTANCE }

func (l *Lib) FRCreateNewGallery(string) int32 { return FRSDKE_INVALID_INPUT_ARGUMENTS }

func (l *Lib) FRCreateIns(*int64, string) int32 { return FRSDKE_INVALID_INSTANCE }

func (l *Lib) FRDestroyIns(*int64) int32 { return FRSDKE_INVALID_INSTANCE }

func (l *Lib) FRSetParams(int64, int32, float64) int32 { return FRSDKE_INVALID_INSTANCE }

func (l *Lib) FRLoadFaces(int64, string) int32 { return FRSDKE_INVALID_INSTANCE }

func (l *Lib) FRSaveFaces(int64, string, bool) int32 { return FRSDKE_INVALID_INSTANCE }

func (l *Lib) FRAddFace(int64, []byte, *[IDWidth]byte, *[IDWidth]byte, *int32) int32 {
	return FRSDKE_INVALID_INSTANCE
}

func (l *Lib) FRDelFace(int64, *[IDWidth]byte, *[IDWidth]byte, *int32) int32 {
	return FRSDKE_INVALID_INSTANCE
}

func (l *Lib) FRRecognize(int64, []byte, *int32, []RecogResult, *bool, int32) int32 {
	return FRSDKE_INVALID_INSTANCE
}
