package frsdk

import "github.com/frsdk/frsdk-go/internal/native"

// Symbols is the native entry point table. The table Open loads satisfies
// it; internal/native/nativefake provides an in-memory one for tests. Its
// signatures use internal/native types, so only this module can implement it.
type Symbols interface {
	FDCreateIns(ins *int64) int32
	FDDestroyIns(ins *int64) int32
	FDSetParams(ins int64, minDetWidthRatio, faceRectExpandRatio float64) int32
	FDDetectFace(ins int64, img []byte) int32
	FDGetFaceNum(ins int64, n *int32) int32
	FDGetFace(ins int64, id int32, rect *native.Rect) int32

	FRCreateNewGallery(path string) int32
	FRCreateIns(ins *int64, modelDir string) int32
	FRDestroyIns(ins *int64) int32
	FRSetParams(ins int64, chooseType int32, minDetWidthRatio float64) int32
	FRLoadFaces(ins int64, path string) int32
	FRSaveFaces(ins int64, path string, saveAll bool) int32
	FRAddFace(ins int64, img []byte, personID, faceID *[native.IDWidth]byte, status *int32) int32
	FRDelFace(ins int64, personID, faceID *[native.IDWidth]byte, status *int32) int32
	FRRecognize(ins int64, img []byte, n *int32, out []native.RecogResult, ok *bool, searchType int32) int32

	Close() error
}

var _ Symbols = (*native.Lib)(nil)
