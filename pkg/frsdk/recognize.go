package frsdk

import (
	"fmt"
	"math"
	"strings"

	"github.com/frsdk/frsdk-go/internal/native"
)

// DefaultMaxResults is the number of candidates Recognize asks for unless
// WithMaxResults says otherwise.
const DefaultMaxResults = 10

// RankStrategy selects how the library ranks gallery candidates.
type RankStrategy int32

const (
	// RankFace ranks individual faces; a person may appear several times.
	RankFace RankStrategy = 0
	// RankPersonMax ranks persons by the best score among their faces.
	RankPersonMax RankStrategy = 1
	// RankPersonAverage ranks persons by the mean score of their faces.
	RankPersonAverage RankStrategy = 2
)

func (s RankStrategy) String() string {
	switch s {
	case RankFace:
		return "face"
	case RankPersonMax:
		return "person-max"
	case RankPersonAverage:
		return "person-avg"
	default:
		return fmt.Sprintf("rank(%d)", int32(s))
	}
}

// ParseRankStrategy accepts "face", "person-max" or "person-avg".
func ParseRankStrategy(s string) (RankStrategy, error) {
	switch strings.ToLower(s) {
	case "face":
		return RankFace, nil
	case "person-max", "max":
		return RankPersonMax, nil
	case "person-avg", "avg", "average":
		return RankPersonAverage, nil
	}
	return 0, fmt.Errorf("unknown rank strategy %q (want face, person-max or person-avg)", s)
}

// Match is one gallery candidate for a recognized face.
type Match struct {
	PersonID string
	FaceID   string
	Score    float32
}

// Recognition is the outcome of Recognize. Matched is false when the image
// did not contain a face usable under the configured ChooseStrategy; Matches
// is then empty.
type Recognition struct {
	Matched bool
	Matches []Match
}

type recognizeOptions struct {
	maxResults int
	minScore   float32
	hasMin     bool
	strategy   RankStrategy
}

// RecognizeOption configures a Recognize call.
type RecognizeOption func(*recognizeOptions)

// WithMaxResults caps the number of candidates returned.
func WithMaxResults(n int) RecognizeOption {
	return func(o *recognizeOptions) { o.maxResults = n }
}

// WithMinScore drops candidates scoring below s.
func WithMinScore(s float32) RecognizeOption {
	return func(o *recognizeOptions) {
		o.minScore = s
		o.hasMin = true
	}
}

// WithStrategy selects the ranking strategy.
func WithStrategy(s RankStrategy) RecognizeOption {
	return func(o *recognizeOptions) { o.strategy = s }
}

// Recognize matches the face in img against the loaded gallery.
func (r *Recognizer) Recognize(img []byte, opts ...RecognizeOption) (Recognition, error) {
	o := recognizeOptions{maxResults: DefaultMaxResults, strategy: RankPersonAverage}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxResults < 1 || o.maxResults > math.MaxInt32 {
		return Recognition{}, fmt.Errorf("%w: got %d", ErrInvalidMaxResults, o.maxResults)
	}
	if err := checkImage(img); err != nil {
		return Recognition{}, err
	}

	unlock, err := r.lock()
	if err != nil {
		return Recognition{}, err
	}
	defer unlock()

	out := make([]native.RecogResult, o.maxResults)
	n := int32(o.maxResults)
	var ok bool
	var minScore any = "none"
	if o.hasMin {
		minScore = o.minScore
	}
	if err := r.lib.check("FR_Recognize", KindRecognize,
		r.lib.sym.FRRecognize(r.ins, img, &n, out, &ok, int32(o.strategy)),
		Arg{"max_results", o.maxResults}, Arg{"min_score", minScore},
		Arg{"strategy", o.strategy.String()}, imageArg(img)); err != nil {
		return Recognition{}, err
	}
	return buildRecognition(ok, out, int(n), o), nil
}

func buildRecognition(ok bool, raw []native.RecogResult, n int, o recognizeOptions) Recognition {
	if !ok {
		return Recognition{}
	}
	if n < 0 {
		n = 0
	}
	if n > len(raw) {
		n = len(raw)
	}
	matches := make([]Match, 0, n)
	for _, v := range raw[:n] {
		matches = append(matches, Match{
			PersonID: decodeID(v.PersonID),
			FaceID:   decodeID(v.FaceID),
			Score:    v.Score,
		})
	}
	if o.hasMin {
		matches = FilterByScore(matches, o.minScore)
	}
	return Recognition{Matched: true, Matches: matches}
}

// FilterByScore returns the matches scoring at least threshold, keeping their
// order.
func FilterByScore(matches []Match, threshold float32) []Match {
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if m.Score >= threshold {
			out = append(out, m)
		}
	}
	return out
}
