package terrain

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseColor accepts "#RRGGBB" or "RRGGBB" in either case and returns the
// canonical upper-case "#RRGGBB" form.
func ParseColor(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return "", fmt.Errorf("color %q: want 6 hex digits", s)
	}
	if _, err := strconv.ParseUint(s, 16, 32); err != nil {
		return "", fmt.Errorf("color %q: %w", s, err)
	}
	return Color("#" + strings.ToUpper(s)), nil
}

// RGB returns the red, green and blue components of a "#RRGGBB" colour.
// ok is false for any other form.
func (c Color) RGB() (r, g, b uint8, ok bool) {
	s := string(c)
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}
