// Package frsdk is a Go binding for the FRSDK face detection and recognition
// shared library.
//
// The library is opened explicitly and owned by the caller:
//
//	lib, err := frsdk.Open(frsdk.Config{LibraryPath: "./frsdk/lib/linux64/C/libFRSDK.so"})
//	if err != nil {
//	    return err
//	}
//	defer lib.Close()
//
//	rec, err := lib.NewRecognizer("./models")
//	if err != nil {
//	    return err
//	}
//	defer rec.Close()
//
//	if _, err := rec.OpenGallery("./gallery/star_face_gallery"); err != nil {
//	    return err
//	}
//	res, err := rec.Recognize(img, frsdk.WithMaxResults(5), frsdk.WithMinScore(0.6))
//
// Detection, recognition, scoring and the gallery file format are implemented
// by the native library. This package only crosses the boundary: it encodes
// arguments, turns every non-zero native status into an *Error naming the
// entry point, the code and the arguments, and reports expected outcomes
// (no match, duplicate enrollment, unknown face on delete) as values.
//
// Instances must be closed before the Library; Library.Close refuses with
// ErrInstancesOpen otherwise.
package frsdk
