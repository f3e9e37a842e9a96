package waves

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Height is a wave height in feet that may be unavailable. The zero value is
// Unavailable, which is never equal to a measured calm sea of Feet(0).
type Height struct {
	feet  float64
	known bool
}

// Unavailable marks a wave height no source could provide.
var Unavailable = Height{}

// Verify Height survives a JSON round trip.
var _ json.Marshaler = Height{}
var _ json.Unmarshaler = new(Height)

// Feet returns a known wave height.
func Feet(ft float64) Height {
	return Height{feet: ft, known: true}
}

// Feet returns the height and whether it is known.
func (h Height) Feet() (float64, bool) {
	return h.feet, h.known
}

// Known reports whether h carries a value.
func (h Height) Known() bool {
	return h.known
}

// String formats the height with one decimal, or "N/A".
func (h Height) String() string {
	if !h.known {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", h.feet)
}

// MarshalJSON encodes an unavailable height as null.
func (h Height) MarshalJSON() ([]byte, error) {
	if !h.known {
		return []byte("null"), nil
	}
	return json.Marshal(h.feet)
}

func (h *Height) UnmarshalJSON(buf []byte) error {
	if bytes.Equal(bytes.TrimSpace(buf), []byte("null")) {
		*h = Unavailable
		return nil
	}
	var ft float64
	if err := json.Unmarshal(buf, &ft); err != nil {
		return fmt.Errorf("wave height %q not a number: %w", buf, err)
	}
	*h = Feet(ft)
	return nil
}
