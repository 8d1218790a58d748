package scene

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// ParseColor converts an SVG color name ("skyblue") or a hex triplet ("#80b3ff")
// into a linear [0,1] RGB vector.
func ParseColor(value string) (core.Vec3, error) {
	name := strings.ToLower(strings.TrimSpace(value))

	if strings.HasPrefix(name, "#") {
		return parseHexColor(name)
	}

	c, ok := colornames.Map[name]
	if !ok {
		return core.Vec3{}, fmt.Errorf("unknown color name %q", value)
	}
	return core.NewVec3(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0), nil
}

func parseHexColor(hex string) (core.Vec3, error) {
	digits := strings.TrimPrefix(hex, "#")
	if len(digits) != 6 {
		return core.Vec3{}, fmt.Errorf("invalid hex color %q: want #rrggbb", hex)
	}

	rgb, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return core.Vec3{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}

	return core.NewVec3(
		float64((rgb>>16)&0xff)/255.0,
		float64((rgb>>8)&0xff)/255.0,
		float64(rgb&0xff)/255.0,
	), nil
}
