package palette

import (
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/chaosgame/pkg/errors"
)

// Color is a configured color: a hex string or a "palette:N" reference.
type Color string

// paletteRef is the prefix of symbolic palette references.
const paletteRef = "palette:"

// Default is the built-in palette referenced by "palette:N".
var Default = []string{
	"#e4572e",
	"#29335c",
	"#f3a712",
	"#a8c686",
	"#669bbc",
	"#7b2d26",
	"#9c6ade",
	"#2a9d8f",
	"#e76f51",
	"#264653",
}

// Ref returns the symbolic reference to palette entry i.
func Ref(i int) Color {
	return Color(paletteRef + strconv.Itoa(i))
}

// Resolve returns the concrete "#rrggbb" value of c.
func Resolve(c Color) (string, error) {
	s := strings.TrimSpace(string(c))
	if rest, ok := strings.CutPrefix(s, paletteRef); ok {
		i, err := strconv.Atoi(rest)
		if err != nil || i < 0 || i >= len(Default) {
			return "", errors.New(errors.ErrCodeInvalidColor, "unknown palette color %q (palette has %d entries)", s, len(Default))
		}
		s = Default[i]
	}

	if !strings.HasPrefix(s, "#") || (len(s) != 4 && len(s) != 7) {
		return "", errors.New(errors.ErrCodeInvalidColor, "invalid color %q (want #rgb, #rrggbb or palette:N)", string(c))
	}
	parsed, err := colorful.Hex(s)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid color %q", string(c))
	}
	return parsed.Hex(), nil
}

// ResolveAll resolves every color, failing on the first invalid one.
func ResolveAll(colors []Color) ([]string, error) {
	out := make([]string, len(colors))
	for i, c := range colors {
		hex, err := Resolve(c)
		if err != nil {
			return nil, err
		}
		out[i] = hex
	}
	return out, nil
}

// DefaultColors returns n references cycling through the default palette.
func DefaultColors(n int) []Color {
	out := make([]Color, n)
	for i := range out {
		out[i] = Ref(i % len(Default))
	}
	return out
}
