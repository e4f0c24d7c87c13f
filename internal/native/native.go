//go:build (linux || darwin) && (amd64 || arm64)

package native

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/ebitengine/purego"
)

// Lib is an opened FRSDK shared object with every entry point resolved.
// C long is 64 bits on the supported targets, so instances travel as int64.
type Lib struct {
	mu     sync.Mutex
	handle uintptr
	path   string

	fdCreateIns  func(ins *int64) int32
	fdDestroyIns func(ins *int64) int32
	fdSetParams  func(ins int64, minDetWidthRatio, faceRectExpandRatio float64) int32
	fdDetectFace func(ins int64, buf *byte, size int32) int32
	fdGetFaceNum func(ins int64, n *int32) int32
	fdGetFace    func(ins int64, id int32, rect *Rect) int32
	frCreateNew  func(path string) int32
	frCreateIns  func(ins *int64, modelDir string) int32
	frDestroyIns func(ins *int64) int32
	frSetParams  func(ins int64, chooseType int32, minDetWidthRatio float64) int32
	frLoadFaces  func(ins int64, path string) int32
	frSaveFaces  func(ins int64, path string, saveAll bool) int32
	frAddFace    func(ins int64, buf *byte, size int32, personID, faceID *byte, status *int32) int32
	frDelFace    func(ins int64, personID, faceID *byte, status *int32) int32
	frRecognize  func(ins int64, buf *byte, size int32, n *int32, out *RecogResult, ok *bool, searchType int32) int32
}

// Load opens the shared object at path and resolves all FRSDK symbols.
func Load(path string) (*Lib, error) {
	if path == "" {
		return nil, errors.New("library path must not be empty")
	}

	h, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("dlopen %s: %w", path, err)
	}

	l := &Lib{handle: h, path: path}
	syms := []struct {
		name string
		fn   any
	}{
		{"FD_CreateIns", &l.fdCreateIns},
		{"FD_DestroyIns", &l.fdDestroyIns},
		{"FD_SetParams", &l.fdSetParams},
		{"FD_DetectFace", &l.fdDetectFace},
		{"FD_GetFaceNum", &l.fdGetFaceNum},
		{"FD_GetFace", &l.fdGetFace},
		{"FR_CreateNewGallery", &l.frCreateNew},
		{"FR_CreateIns", &l.frCreateIns},
		{"FR_DestroyIns", &l.frDestroyIns},
		{"FR_SetParams", &l.frSetParams},
		{"FR_LoadFaces", &l.frLoadFaces},
		{"FR_SaveFaces", &l.frSaveFaces},
		{"FR_AddFace", &l.frAddFace},
		{"FR_DelFace", &l.frDelFace},
		{"FR_Recognize", &l.frRecognize},
	}
	for _, s := range syms {
		addr, err := purego.Dlsym(h, s.name)
		if err != nil {
			_ = purego.Dlclose(h)
			return nil, fmt.Errorf("resolve %s in %s: %w", s.name, path, err)
		}
		purego.RegisterFunc(s.fn, addr)
	}
	return l, nil
}

// Path returns the location the library was loaded from.
func (l *Lib) Path() string { return l.path }

// Close unloads the shared object. Calling Close twice is a no-op.
func (l *Lib) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.handle == 0 {
		return nil
	}
	err := purego.Dlclose(l.handle)
	l.handle = 0
	return err
}

// FDCreateIns wraps int FD_CreateIns(long* pIns).
func (l *Lib) FDCreateIns(ins *int64) int32 {
	return l.fdCreateIns(ins)
}

// FDDestroyIns wraps int FD_DestroyIns(long* pIns).
func (l *Lib) FDDestroyIns(ins *int64) int32 {
	return l.fdDestroyIns(ins)
}

// FDSetParams wraps int FD_SetParams(long, double, double).
func (l *Lib) FDSetParams(ins int64, minDetWidthRatio, faceRectExpandRatio float64) int32 {
	return l.fdSetParams(ins, minDetWidthRatio, faceRectExpandRatio)
}

// FDDetectFace wraps int FD_DetectFace(long, const char*, int).
func (l *Lib) FDDetectFace(ins int64, img []byte) int32 {
	buf, size := bufPtr(img)
	rc := l.fdDetectFace(ins, buf, size)
	runtime.KeepAlive(img)
	return rc
}

// FDGetFaceNum wraps int FD_GetFaceNum(long, int*).
func (l *Lib) FDGetFaceNum(ins int64, n *int32) int32 {
	return l.fdGetFaceNum(ins, n)
}

// FDGetFace wraps int FD_GetFace(long, int, Rect*).
func (l *Lib) FDGetFace(ins int64, id int32, rect *Rect) int32 {
	return l.fdGetFace(ins, id, rect)
}

// FRCreateNewGallery wraps int FR_CreateNewGallery(const char*).
func (l *Lib) FRCreateNewGallery(path string) int32 {
	return l.frCreateNew(path)
}

// FRCreateIns wraps int FR_CreateIns(long*, const char*).
func (l *Lib) FRCreateIns(ins *int64, modelDir string) int32 {
	return l.frCreateIns(ins, modelDir)
}

// FRDestroyIns wraps int FR_DestroyIns(long*).
func (l *Lib) FRDestroyIns(ins *int64) int32 {
	return l.frDestroyIns(ins)
}

// FRSetParams wraps int FR_SetParams(long, int, double).
func (l *Lib) FRSetParams(ins int64, chooseType int32, minDetWidthRatio float64) int32 {
	return l.frSetParams(ins, chooseType, minDetWidthRatio)
}

// FRLoadFaces wraps int FR_LoadFaces(long, const char*).
func (l *Lib) FRLoadFaces(ins int64, path string) int32 {
	return l.frLoadFaces(ins, path)
}

// FRSaveFaces wraps int FR_SaveFaces(long, const char*, bool).
func (l *Lib) FRSaveFaces(ins int64, path string, saveAll bool) int32 {
	return l.frSaveFaces(ins, path, saveAll)
}

// FRAddFace wraps int FR_AddFace(long, const char*, int, const char[24],
// const char[24], int*).
func (l *Lib) FRAddFace(ins int64, img []byte, personID, faceID *[IDWidth]byte, status *int32) int32 {
	buf, size := bufPtr(img)
	rc := l.frAddFace(ins, buf, size, &personID[0], &faceID[0], status)
	runtime.KeepAlive(img)
	runtime.KeepAlive(personID)
	runtime.KeepAlive(faceID)
	return rc
}

// FRDelFace wraps int FR_DelFace(long, const char[24], const char[24], int*).
func (l *Lib) FRDelFace(ins int64, personID, faceID *[IDWidth]byte, status *int32) int32 {
	rc := l.frDelFace(ins, &personID[0], &faceID[0], status)
	runtime.KeepAlive(personID)
	runtime.KeepAlive(faceID)
	return rc
}

// FRRecognize wraps int FR_Recognize(long, const char*, int, int*,
// FaceRecogRlt*, bool*, int). On entry *n must not exceed len(out).
func (l *Lib) FRRecognize(ins int64, img []byte, n *int32, out []RecogResult, ok *bool, searchType int32) int32 {
	buf, size := bufPtr(img)
	var first *RecogResult
	if len(out) > 0 {
		first = &out[0]
	}
	rc := l.frRecognize(ins, buf, size, n, first, ok, searchType)
	runtime.KeepAlive(img)
	runtime.KeepAlive(out)
	return rc
}

// emptyBuf backs zero-length images so the library never sees a NULL buffer.
var emptyBuf [1]byte

func bufPtr(b []byte) (*byte, int32) {
	if len(b) == 0 {
		return &emptyBuf[0], 0
	}
	return &b[0], int32(len(b))
}
