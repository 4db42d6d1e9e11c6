package stage

import (
	"fmt"
	"strconv"
	"strings"
)

// Materials are plain typed parameter structs, one per shading program.
// The draw methods read exactly these fields; there is no dynamic
// property lookup.

// MarkerMaterial shades the vertex-marker stage.
type MarkerMaterial struct {
	Color  [3]float32
	Radius float32 // marker radius in world units
}

// WireMaterial shades the edge stage.
type WireMaterial struct {
	Color [3]float32
	Width float32 // line width in pixels; most core profiles clamp to 1
}

// FillMaterial shades the face stage.
type FillMaterial struct {
	Color   [3]float32
	Opacity float32 // 0..1, multiplied with each face's animation scalar
}

// DissolveMaterial shades the assembled solid.
type DissolveMaterial struct {
	Color [3]float32
}

// ParseHexColor parses a "#rrggbb" color string into RGB components in the
// 0-1 range. The leading '#' is optional.
func ParseHexColor(s string) ([3]float32, error) {
	var c [3]float32

	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return c, fmt.Errorf("color %q: want 6 hex digits", s)
	}

	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return c, fmt.Errorf("color %q: %w", s, err)
		}
		c[i] = float32(v) / 255.0
	}

	return c, nil
}

// FormatHexColor renders RGB components back into "#rrggbb" form.
func FormatHexColor(c [3]float32) string {
	clamp := func(v float32) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return fmt.Sprintf("#%02x%02x%02x", clamp(c[0]), clamp(c[1]), clamp(c[2]))
}
