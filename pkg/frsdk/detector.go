package frsdk

import (
	"context"
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/frsdk/frsdk-go/internal/native"
)

// Rect is a detected face region in source image coordinates: (Left, Top) is
// the upper-left corner and (Right, Bottom) the lower-right one.
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

func (r Rect) Width() int  { return r.Right - r.Left }
func (r Rect) Height() int { return r.Bottom - r.Top }

// Rectangle converts r to an image.Rectangle.
func (r Rect) Rectangle() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Right, r.Bottom)
}

func rectFromNative(r native.Rect) Rect {
	return Rect{Left: int(r.Left), Top: int(r.Top), Right: int(r.Right), Bottom: int(r.Bottom)}
}

// DetectParams tunes face detection.
type DetectParams struct {
	// MinFaceRatio is the smallest detectable face size relative to the
	// longer image side. For a 1000x1500 image, 0.1 means 150 pixels.
	MinFaceRatio float64

	// ExpandRatio scales the returned face rectangles; it must be >= 1.0.
	ExpandRatio float64
}

// DefaultDetectParams returns the values the library uses when SetParams is
// never called.
func DefaultDetectParams() DetectParams {
	return DetectParams{MinFaceRatio: 0.05, ExpandRatio: 1.0}
}

// Detector owns one native face detection instance. Its methods are safe for
// concurrent use; calls on one Detector are serialized because the native
// instance keeps the last detection result between calls.
type Detector struct {
	mu     sync.Mutex
	lib    *Library
	ins    int64
	closed bool
}

// NewDetector creates a native detection instance. The caller must Close it.
func (l *Library) NewDetector() (*Detector, error) {
	if err := l.acquire(); err != nil {
		return nil, err
	}
	var ins int64
	if err := l.check("FD_CreateIns", KindLifecycle, l.sym.FDCreateIns(&ins)); err != nil {
		l.release()
		return nil, err
	}
	l.log.Debug(context.Background(), "detector created")
	return &Detector{lib: l, ins: ins}, nil
}

// Close destroys the native instance. The instance is treated as gone even
// when the library reports a failure, so it is never destroyed twice.
// Subsequent calls return nil.
func (d *Detector) Close() error {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}

	ins := d.ins
	rc := d.lib.sym.FDDestroyIns(&ins)
	d.closed = true
	d.ins = 0
	d.lib.release()
	if err := d.lib.check("FD_DestroyIns", KindLifecycle, rc); err != nil {
		return err
	}
	d.lib.log.Debug(context.Background(), "detector destroyed")
	return nil
}

// SetParams applies p to the instance without transformation.
func (d *Detector) SetParams(p DetectParams) error {
	unlock, err := d.lock()
	if err != nil {
		return err
	}
	defer unlock()
	return d.lib.check("FD_SetParams", KindParams,
		d.lib.sym.FDSetParams(d.ins, p.MinFaceRatio, p.ExpandRatio),
		Arg{"min_face_ratio", p.MinFaceRatio}, Arg{"expand_ratio", p.ExpandRatio})
}

// DetectFace runs detection over an encoded BMP, JPEG or PNG image. Results
// are read back with FaceCount and Face.
func (d *Detector) DetectFace(img []byte) error {
	unlock, err := d.lock()
	if err != nil {
		return err
	}
	defer unlock()
	return d.detectLocked(img)
}

// FaceCount returns the number of faces found by the last DetectFace.
func (d *Detector) FaceCount() (int, error) {
	unlock, err := d.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()
	return d.countLocked()
}

// Face returns the i-th face of the last detection. The index is forwarded
// as is; values outside [0, FaceCount) fail inside the library.
func (d *Detector) Face(i int) (Rect, error) {
	unlock, err := d.lock()
	if err != nil {
		return Rect{}, err
	}
	defer unlock()
	return d.faceLocked(i)
}

// Detect runs DetectFace and reads every resulting face in one step.
func (d *Detector) Detect(img []byte) ([]Rect, error) {
	unlock, err := d.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := d.detectLocked(img); err != nil {
		return nil, err
	}
	n, err := d.countLocked()
	if err != nil {
		return nil, err
	}
	faces := make([]Rect, 0, n)
	for i := 0; i < n; i++ {
		r, err := d.faceLocked(i)
		if err != nil {
			return nil, err
		}
		faces = append(faces, r)
	}
	return faces, nil
}

func (d *Detector) lock() (func(), error) {
	if d == nil {
		return nil, ErrInstanceClosed
	}
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil, ErrInstanceClosed
	}
	return d.mu.Unlock, nil
}

func (d *Detector) detectLocked(img []byte) error {
	if err := checkImage(img); err != nil {
		return err
	}
	return d.lib.check("FD_DetectFace", KindDetect, d.lib.sym.FDDetectFace(d.ins, img), imageArg(img))
}

func (d *Detector) countLocked() (int, error) {
	var n int32
	if err := d.lib.check("FD_GetFaceNum", KindDetect, d.lib.sym.FDGetFaceNum(d.ins, &n)); err != nil {
		return 0, err
	}
	if n < 0 {
		n = 0
	}
	return int(n), nil
}

func (d *Detector) faceLocked(i int) (Rect, error) {
	if i < math.MinInt32 || i > math.MaxInt32 {
		return Rect{}, fmt.Errorf("%w: %d", ErrIndexRange, i)
	}
	var r native.Rect
	if err := d.lib.check("FD_GetFace", KindDetect, d.lib.sym.FDGetFace(d.ins, int32(i), &r), Arg{"index", i}); err != nil {
		return Rect{}, err
	}
	return rectFromNative(r), nil
}
