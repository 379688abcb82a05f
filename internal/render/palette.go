package render

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/rhyrak/go-timetable/pkg/model"
)

// PaletteSize is how many pastel colours are drawn per run.
const PaletteSize = 20

// NewPalette draws n pastel colours (each channel 180-255) as RRGGBB hex.
func NewPalette(rng *rand.Rand, n int) []string {
	colors := make([]string, n)
	for i := range colors {
		colors[i] = randomColor(rng, 180)
	}
	return colors
}

func randomColor(rng *rand.Rand, low int) string {
	channel := func() int { return low + rng.Intn(256-low) }
	return fmt.Sprintf("%02X%02X%02X", channel(), channel(), channel())
}

// Colors hands out one fill colour per course code for a single document.
type Colors struct {
	rng       *rand.Rand
	available []string
	assigned  map[string]string
}

// NewColors shuffles a copy of the palette; colours are popped from its end.
func NewColors(rng *rand.Rand, palette []string) *Colors {
	available := make([]string, len(palette))
	copy(available, palette)
	rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})
	return &Colors{rng: rng, available: available, assigned: make(map[string]string)}
}

// For returns the colour of the occupant's course. All session types of a
// course share it. Once the palette runs out colours are drawn from 150-255.
func (c *Colors) For(o *model.Occupant) string {
	if color, ok := c.assigned[o.CourseCode]; ok {
		return color
	}
	var color string
	if n := len(c.available); n > 0 {
		color = c.available[n-1]
		c.available = c.available[:n-1]
	} else {
		color = randomColor(c.rng, 150)
	}
	c.assigned[o.CourseCode] = color
	return color
}

// rgb splits RRGGBB into channels; malformed input gives white.
func rgb(hex string) (int, int, int) {
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || len(hex) != 6 {
		return 255, 255, 255
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF)
}

// Assign fixes the colours of every course in tt, walking days then slots.
// Afterwards For only reads, so one Colors can serve concurrent renders.
func (c *Colors) Assign(tt *model.Timetable) *Colors {
	for _, day := range tt.Days {
		for _, span := range day.Spans() {
			c.For(span.Occupant)
		}
	}
	return c
}
