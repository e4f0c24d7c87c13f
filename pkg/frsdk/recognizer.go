package frsdk

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// ChooseStrategy controls how an image with several faces is handled by
// AddFace and Recognize.
type ChooseStrategy int32

const (
	// ChooseSingle accepts only images that contain exactly one face.
	ChooseSingle ChooseStrategy = 0
	// ChooseLargest picks the largest face of the image.
	ChooseLargest ChooseStrategy = 1
)

func (c ChooseStrategy) String() string {
	switch c {
	case ChooseSingle:
		return "single"
	case ChooseLargest:
		return "largest"
	default:
		return fmt.Sprintf("choose(%d)", int32(c))
	}
}

// UnusableReason explains why an image yields no face under c: AddFace
// reports AddFaceCountMismatch and Recognize an unmatched Recognition.
func (c ChooseStrategy) UnusableReason() string {
	if c == ChooseSingle {
		return "image does not contain exactly one face"
	}
	return "no face detected in image"
}

// ParseChooseStrategy accepts "single" or "largest".
func ParseChooseStrategy(s string) (ChooseStrategy, error) {
	switch strings.ToLower(s) {
	case "single":
		return ChooseSingle, nil
	case "largest":
		return ChooseLargest, nil
	}
	return 0, fmt.Errorf("unknown face choose strategy %q (want single or largest)", s)
}

// RecognizeParams tunes gallery enrollment and recognition.
type RecognizeParams struct {
	Choose ChooseStrategy

	// MinFaceRatio is the smallest face size relative to the longer image
	// side that is considered at all.
	MinFaceRatio float64
}

// DefaultRecognizeParams mirrors the defaults of the SDK demo.
func DefaultRecognizeParams() RecognizeParams {
	return RecognizeParams{Choose: ChooseLargest, MinFaceRatio: 0.05}
}

// Recognizer owns one native recognition instance together with its
// in-memory gallery. Calls on one Recognizer are serialized.
type Recognizer struct {
	mu       sync.Mutex
	lib      *Library
	ins      int64
	closed   bool
	modelDir string
	choose   ChooseStrategy
}

// NewRecognizer creates a native recognition instance that reads its models
// from modelDir. The caller must Close it.
func (l *Library) NewRecognizer(modelDir string) (*Recognizer, error) {
	if err := l.acquire(); err != nil {
		return nil, err
	}
	var ins int64
	if err := l.check("FR_CreateIns", KindLifecycle, l.sym.FRCreateIns(&ins, modelDir),
		Arg{"model_dir", modelDir}); err != nil {
		l.release()
		return nil, err
	}
	l.log.Debug(context.Background(), "recognizer created", "model_dir", modelDir)
	return &Recognizer{lib: l, ins: ins, modelDir: modelDir, choose: ChooseLargest}, nil
}

// ModelDir returns the model directory the instance was created with.
func (r *Recognizer) ModelDir() string {
	return r.modelDir
}

// Choose returns the face choose strategy currently applied to the instance.
func (r *Recognizer) Choose() ChooseStrategy {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.choose
}

// Close destroys the native instance. Like Detector.Close it runs the native
// destroy at most once; subsequent calls return nil.
func (r *Recognizer) Close() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}

	ins := r.ins
	rc := r.lib.sym.FRDestroyIns(&ins)
	r.closed = true
	r.ins = 0
	r.lib.release()
	if err := r.lib.check("FR_DestroyIns", KindLifecycle, rc, Arg{"model_dir", r.modelDir}); err != nil {
		return err
	}
	r.lib.log.Debug(context.Background(), "recognizer destroyed")
	return nil
}

// SetParams applies p to the instance without transformation.
func (r *Recognizer) SetParams(p RecognizeParams) error {
	unlock, err := r.lock()
	if err != nil {
		return err
	}
	defer unlock()
	if err := r.lib.check("FR_SetParams", KindParams,
		r.lib.sym.FRSetParams(r.ins, int32(p.Choose), p.MinFaceRatio),
		Arg{"choose", p.Choose.String()}, Arg{"min_face_ratio", p.MinFaceRatio}); err != nil {
		return err
	}
	r.choose = p.Choose
	return nil
}

func (r *Recognizer) lock() (func(), error) {
	if r == nil {
		return nil, ErrInstanceClosed
	}
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, ErrInstanceClosed
	}
	return r.mu.Unlock, nil
}
