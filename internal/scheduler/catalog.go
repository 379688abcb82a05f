package scheduler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rhyrak/go-timetable/pkg/model"
)

var ErrMalformedSlot = errors.New("malformed time slot")

// Catalog is the ordered list of time slots shared by every day.
type Catalog struct {
	slots []model.TimeSlot
	index map[string]int
}

// NewCatalog builds "HH:MM-HH:MM" labels from the trimmed start/end pairs and
// derives each slot's duration in hours.
func NewCatalog(specs []model.SlotSpec) (*Catalog, error) {
	c := &Catalog{slots: make([]model.TimeSlot, 0, len(specs)), index: make(map[string]int, len(specs))}
	for _, s := range specs {
		label := strings.TrimSpace(s.Start) + "-" + strings.TrimSpace(s.End)
		d, err := ParseSlotDuration(label)
		if err != nil {
			return nil, err
		}
		c.index[label] = len(c.slots)
		c.slots = append(c.slots, model.TimeSlot{Label: label, Duration: d})
	}
	return c, nil
}

// ParseSlotDuration returns end minus start in fractional hours.
func ParseSlotDuration(label string) (float64, error) {
	parts := strings.Split(label, "-")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedSlot, label)
	}
	start, err := parseClock(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedSlot, label)
	}
	end, err := parseClock(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedSlot, label)
	}
	return end - start, nil
}

func parseClock(hhmm string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(hhmm), ":")
	if len(parts) != 2 {
		return 0, ErrMalformedSlot
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, err
	}
	return float64(h) + float64(m)/60, nil
}

// Slots returns a copy of the catalog.
func (c *Catalog) Slots() []model.TimeSlot {
	out := make([]model.TimeSlot, len(c.slots))
	copy(out, c.slots)
	return out
}

func (c *Catalog) Len() int {
	return len(c.slots)
}

func (c *Catalog) Label(i int) string {
	return c.slots[i].Label
}

func (c *Catalog) Duration(i int) float64 {
	return c.slots[i].Duration
}

// Index returns the position of a label, or -1.
func (c *Catalog) Index(label string) int {
	if i, ok := c.index[label]; ok {
		return i
	}
	return -1
}
