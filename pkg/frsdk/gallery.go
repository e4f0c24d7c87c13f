package frsdk

import (
	"context"
	"fmt"
)

// SaveMode selects how SaveFaces writes the in-memory gallery.
type SaveMode bool

const (
	// SaveIncremental appends faces added since the gallery was loaded.
	SaveIncremental SaveMode = false
	// SaveAll rewrites the whole file from memory. Deletions only reach disk
	// this way.
	SaveAll SaveMode = true
)

func (m SaveMode) String() string {
	if m == SaveAll {
		return "all"
	}
	return "incremental"
}

// AddStatus is the outcome of a successful AddFace call.
type AddStatus int32

const (
	AddOK AddStatus = 0
	// AddFaceCountMismatch means the image did not yield a usable face under
	// the configured ChooseStrategy.
	AddFaceCountMismatch AddStatus = 1
	// AddDuplicate means the (person id, face id) pair is already enrolled.
	AddDuplicate AddStatus = 2
)

func (s AddStatus) String() string {
	switch s {
	case AddOK:
		return "added"
	case AddFaceCountMismatch:
		return "face count mismatch"
	case AddDuplicate:
		return "duplicate"
	default:
		return fmt.Sprintf("add status(%d)", int32(s))
	}
}

// Describe explains s in terms of the choose strategy it was produced under.
func (s AddStatus) Describe(c ChooseStrategy) string {
	if s != AddFaceCountMismatch {
		return s.String()
	}
	return c.UnusableReason()
}

// DeleteStatus is the outcome of a successful DeleteFace call.
type DeleteStatus int32

const (
	DeleteOK       DeleteStatus = 0
	DeleteNotFound DeleteStatus = 1
)

func (s DeleteStatus) String() string {
	switch s {
	case DeleteOK:
		return "deleted"
	case DeleteNotFound:
		return "not found"
	default:
		return fmt.Sprintf("delete status(%d)", int32(s))
	}
}

// LoadFaces loads the gallery file at path into the instance.
func (r *Recognizer) LoadFaces(path string) error {
	unlock, err := r.lock()
	if err != nil {
		return err
	}
	defer unlock()
	if err := r.lib.check("FR_LoadFaces", KindGallery, r.lib.sym.FRLoadFaces(r.ins, path),
		Arg{"gallery_path", path}); err != nil {
		return err
	}
	r.lib.log.Debug(context.Background(), "gallery loaded", "gallery_path", path)
	return nil
}

// SaveFaces writes the in-memory gallery to path.
func (r *Recognizer) SaveFaces(path string, mode SaveMode) error {
	unlock, err := r.lock()
	if err != nil {
		return err
	}
	defer unlock()
	if err := r.lib.check("FR_SaveFaces", KindGallery, r.lib.sym.FRSaveFaces(r.ins, path, bool(mode)),
		Arg{"gallery_path", path}, Arg{"mode", mode.String()}); err != nil {
		return err
	}
	r.lib.log.Debug(context.Background(), "gallery saved", "gallery_path", path, "mode", mode.String())
	return nil
}

// OpenGallery creates an empty gallery at path if none exists and then loads
// it. It reports whether the file was created.
func (r *Recognizer) OpenGallery(path string) (bool, error) {
	unlock, err := r.lock()
	if err != nil {
		return false, err
	}
	unlock()

	created, err := r.lib.EnsureGallery(path)
	if err != nil {
		return false, err
	}
	if err := r.LoadFaces(path); err != nil {
		return created, err
	}
	return created, nil
}

// AddFace extracts the face of img and enrolls it under (personID, faceID)
// in the in-memory gallery. Duplicates and face count mismatches are
// reported through the status, not as errors.
func (r *Recognizer) AddFace(img []byte, personID, faceID string) (AddStatus, error) {
	p, f, err := encodeIDs(personID, faceID)
	if err != nil {
		return 0, err
	}
	if err := checkImage(img); err != nil {
		return 0, err
	}
	unlock, err := r.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()

	var st int32
	if err := r.lib.check("FR_AddFace", KindGallery, r.lib.sym.FRAddFace(r.ins, img, &p, &f, &st),
		Arg{"person_id", personID}, Arg{"face_id", faceID}, imageArg(img)); err != nil {
		return 0, err
	}
	switch s := AddStatus(st); s {
	case AddOK, AddFaceCountMismatch, AddDuplicate:
		return s, nil
	default:
		return s, fmt.Errorf("%w: FR_AddFace status %d [person_id=%q face_id=%q]",
			ErrUnexpectedStatus, st, personID, faceID)
	}
}

// DeleteFace removes (personID, faceID) from the in-memory gallery. Persist
// the removal with SaveFaces(path, SaveAll).
func (r *Recognizer) DeleteFace(personID, faceID string) (DeleteStatus, error) {
	p, f, err := encodeIDs(personID, faceID)
	if err != nil {
		return 0, err
	}
	unlock, err := r.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()

	var st int32
	if err := r.lib.check("FR_DelFace", KindGallery, r.lib.sym.FRDelFace(r.ins, &p, &f, &st),
		Arg{"person_id", personID}, Arg{"face_id", faceID}); err != nil {
		return 0, err
	}
	switch s := DeleteStatus(st); s {
	case DeleteOK, DeleteNotFound:
		return s, nil
	default:
		return s, fmt.Errorf("%w: FR_DelFace status %d [person_id=%q face_id=%q]",
			ErrUnexpectedStatus, st, personID, faceID)
	}
}
