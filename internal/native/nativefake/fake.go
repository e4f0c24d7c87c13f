// Package nativefake is an in-memory stand-in for the FRSDK shared object.
//
// Images are identified by their content: tests register how many faces each
// one holds in Faces and what FR_Recognize answers for it in Results. Content
// that is not registered fails to decode. Every call is appended to Calls by
// its native name, so tests can assert call order.
package nativefake

import (
	"bytes"
	"os"

	"github.com/frsdk/frsdk-go/internal/native"
)

// Save records one FR_SaveFaces call.
type Save struct {
	Path string
	All  bool
}

// Entry is one enrolled face.
type Entry struct {
	PersonID string
	FaceID   string
}

// Lib implements the native entry point table in memory. It is not safe for
// concurrent use.
type Lib struct {
	Calls []string
	// Fail makes the named entry point return the given status.
	Fail map[string]int32

	Faces   map[string][]native.Rect
	Results map[string][]native.RecogResult

	// Entries is the gallery shared by every recognizer instance.
	Entries []Entry
	Saves   []Save

	// AddStatusOverride, when non-zero, is reported by every FR_AddFace.
	AddStatusOverride int32
	LastRecognizeN    int32
	Closed            bool

	next      int64
	detectors map[int64][]native.Rect
	recogs    map[int64]int32
}

// New returns an empty fake.
func New() *Lib {
	return &Lib{
		Fail:      map[string]int32{},
		Faces:     map[string][]native.Rect{},
		Results:   map[string][]native.RecogResult{},
		next:      0x1000,
		detectors: map[int64][]native.Rect{},
		recogs:    map[int64]int32{},
	}
}

// Count reports how many times op was called.
func (f *Lib) Count(op string) int {
	n := 0
	for _, c := range f.Calls {
		if c == op {
			n++
		}
	}
	return n
}

// Result builds a recognition result row.
func Result(person, face string, score float32) native.RecogResult {
	var r native.RecogResult
	copy(r.PersonID[:], person)
	copy(r.FaceID[:], face)
	r.Score = score
	return r
}

func (f *Lib) enter(op string) (int32, bool) {
	f.Calls = append(f.Calls, op)
	if rc, ok := f.Fail[op]; ok {
		return rc, true
	}
	return 0, false
}

// usable reports whether an image yields a face under the choose type.
func usable(choose int32, faces []native.Rect) bool {
	if choose == 0 {
		return len(faces) == 1
	}
	return len(faces) > 0
}

func (f *Lib) FDCreateIns(ins *int64) int32 {
	if rc, failed := f.enter("FD_CreateIns"); failed {
		return rc
	}
	f.next++
	*ins = f.next
	f.detectors[*ins] = nil
	return 0
}

func (f *Lib) FDDestroyIns(ins *int64) int32 {
	if rc, failed := f.enter("FD_DestroyIns"); failed {
		return rc
	}
	if _, ok := f.detectors[*ins]; !ok {
		return native.FRSDKE_INVALID_INSTANCE
	}
	delete(f.detectors, *ins)
	*ins = 0
	return 0
}

func (f *Lib) FDSetParams(ins int64, minDetWidthRatio, faceRectExpandRatio float64) int32 {
	if rc, failed := f.enter("FD_SetParams"); failed {
		return rc
	}
	if faceRectExpandRatio < 1.0 {
		return native.FRSDKE_INVALID_INPUT_ARGUMENTS
	}
	return 0
}

func (f *Lib) FDDetectFace(ins int64, img []byte) int32 {
	if rc, failed := f.enter("FD_DetectFace"); failed {
		return rc
	}
	faces, ok := f.Faces[string(img)]
	if !ok {
		return native.FRSDKE_IMG_DECODE_FAIL
	}
	f.detectors[ins] = faces
	return 0
}

func (f *Lib) FDGetFaceNum(ins int64, n *int32) int32 {
	if rc, failed := f.enter("FD_GetFaceNum"); failed {
		return rc
	}
	*n = int32(len(f.detectors[ins]))
	return 0
}

func (f *Lib) FDGetFace(ins int64, id int32, rect *native.Rect) int32 {
	if rc, failed := f.enter("FD_GetFace"); failed {
		return rc
	}
	faces := f.detectors[ins]
	if id < 0 || int(id) >= len(faces) {
		return native.FRSDKE_INVALID_INPUT_ARGUMENTS
	}
	*rect = faces[id]
	return 0
}

func (f *Lib) FRCreateNewGallery(path string) int32 {
	if rc, failed := f.enter("FR_CreateNewGallery"); failed {
		return rc
	}
	if err := os.WriteFile(path, []byte("FRG0"), 0o600); err != nil {
		return native.FRSDKE_WRITE_FACES_FILE_FAIL
	}
	return 0
}

func (f *Lib) FRCreateIns(ins *int64, modelDir string) int32 {
	if rc, failed := f.enter("FR_CreateIns"); failed {
		return rc
	}
	if modelDir == "" {
		return native.FRSDKE_FACE_RECOGNIZE_INIT_MODEL_FAILED
	}
	f.next++
	*ins = f.next
	f.recogs[*ins] = 1
	return 0
}

func (f *Lib) FRDestroyIns(ins *int64) int32 {
	if rc, failed := f.enter("FR_DestroyIns"); failed {
		return rc
	}
	if _, ok := f.recogs[*ins]; !ok {
		return native.FRSDKE_INVALID_INSTANCE
	}
	delete(f.recogs, *ins)
	*ins = 0
	return 0
}

func (f *Lib) FRSetParams(ins int64, chooseType int32, minDetWidthRatio float64) int32 {
	if rc, failed := f.enter("FR_SetParams"); failed {
		return rc
	}
	if chooseType != 0 && chooseType != 1 {
		return native.FRSDKE_INVALID_INPUT_ARGUMENTS
	}
	f.recogs[ins] = chooseType
	return 0
}

func (f *Lib) FRLoadFaces(ins int64, path string) int32 {
	if rc, failed := f.enter("FR_LoadFaces"); failed {
		return rc
	}
	if _, err := os.Stat(path); err != nil {
		return native.FRSDKE_OPEN_FACES_FILE_FAIL
	}
	return 0
}

func (f *Lib) FRSaveFaces(ins int64, path string, saveAll bool) int32 {
	if rc, failed := f.enter("FR_SaveFaces"); failed {
		return rc
	}
	f.Saves = append(f.Saves, Save{Path: path, All: saveAll})
	return 0
}

func (f *Lib) FRAddFace(ins int64, img []byte, personID, faceID *[native.IDWidth]byte, status *int32) int32 {
	if rc, failed := f.enter("FR_AddFace"); failed {
		return rc
	}
	if f.AddStatusOverride != 0 {
		*status = f.AddStatusOverride
		return 0
	}
	faces, ok := f.Faces[string(img)]
	if !ok {
		return native.FRSDKE_IMG_DECODE_FAIL
	}
	if !usable(f.recogs[ins], faces) {
		*status = 1
		return 0
	}
	e := Entry{PersonID: cstring(personID[:]), FaceID: cstring(faceID[:])}
	for _, have := range f.Entries {
		if have == e {
			*status = 2
			return 0
		}
	}
	f.Entries = append(f.Entries, e)
	*status = 0
	return 0
}

func (f *Lib) FRDelFace(ins int64, personID, faceID *[native.IDWidth]byte, status *int32) int32 {
	if rc, failed := f.enter("FR_DelFace"); failed {
		return rc
	}
	e := Entry{PersonID: cstring(personID[:]), FaceID: cstring(faceID[:])}
	for i, have := range f.Entries {
		if have == e {
			f.Entries = append(f.Entries[:i], f.Entries[i+1:]...)
			*status = 0
			return 0
		}
	}
	*status = 1
	return 0
}

func (f *Lib) FRRecognize(ins int64, img []byte, n *int32, out []native.RecogResult, ok *bool, searchType int32) int32 {
	if rc, failed := f.enter("FR_Recognize"); failed {
		return rc
	}
	f.LastRecognizeN = *n
	if searchType < 0 || searchType > 2 {
		return native.FRSDKE_INVALID_INPUT_ARGUMENTS
	}
	faces, known := f.Faces[string(img)]
	if !known {
		return native.FRSDKE_IMG_DECODE_FAIL
	}
	if !usable(f.recogs[ins], faces) {
		*ok = false
		return 0
	}
	k := copy(out[:*n], f.Results[string(img)])
	*n = int32(k)
	*ok = true
	return 0
}

func (f *Lib) Close() error {
	f.Calls = append(f.Calls, "dlclose")
	f.Closed = true
	return nil
}

func cstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
