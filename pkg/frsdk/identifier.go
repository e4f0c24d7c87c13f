package frsdk

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/frsdk/frsdk-go/internal/native"
)

// IDWidth is the byte width of person and face identifiers in the native
// gallery.
const IDWidth = native.IDWidth

// ValidateID checks that id can be stored in a fixed-width native field:
// non-empty, at most IDWidth bytes, and free of NUL bytes.
func ValidateID(id string) error {
	switch {
	case id == "":
		return fmt.Errorf("%w: empty", ErrInvalidID)
	case len(id) > IDWidth:
		return fmt.Errorf("%w: %q is %d bytes, limit %d", ErrInvalidID, id, len(id), IDWidth)
	case strings.IndexByte(id, 0) >= 0:
		return fmt.Errorf("%w: %q contains a NUL byte", ErrInvalidID, id)
	}
	return nil
}

func encodeID(id string) ([IDWidth]byte, error) {
	var out [IDWidth]byte
	if err := ValidateID(id); err != nil {
		return out, err
	}
	copy(out[:], id)
	return out, nil
}

func encodeIDs(personID, faceID string) (p, f [IDWidth]byte, err error) {
	if p, err = encodeID(personID); err != nil {
		return p, f, fmt.Errorf("person id: %w", err)
	}
	if f, err = encodeID(faceID); err != nil {
		return p, f, fmt.Errorf("face id: %w", err)
	}
	return p, f, nil
}

func decodeID(b [IDWidth]byte) string {
	if i := bytes.IndexByte(b[:], 0); i >= 0 {
		return string(b[:i])
	}
	return string(b[:])
}
