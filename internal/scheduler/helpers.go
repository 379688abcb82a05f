package scheduler

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

type Configuration struct {
	CoursesFile        string   `validate:"required"`
	RoomsFile          string   `validate:"required"`
	SlotsFile          string   `validate:"required"`
	OutputDir          string   `validate:"required"`
	UploadDir          string   `validate:"required"`
	Delimiter          rune     `validate:"required"`
	WeekDays           []string `validate:"required,min=1,dive,required"`
	ExcludedSlots      []string
	MaxAttempts        int      `validate:"min=1"`
	Seed               int64
	IndependentStreams bool
	OutputFormats      []string `validate:"dive,oneof=csv xlsx pdf"`
}

func NewDefaultConfiguration() *Configuration {
	return &Configuration{
		CoursesFile:        "./data/courses.csv",
		RoomsFile:          "./data/rooms.csv",
		SlotsFile:          "./data/time_slots.json",
		OutputDir:          ".",
		UploadDir:          "./db",
		Delimiter:          ',',
		WeekDays:           []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		ExcludedSlots:      []string{"07:30-09:00", "13:15-14:00", "17:30-18:30"},
		MaxAttempts:        10,
		Seed:               42,
		IndependentStreams: false,
		OutputFormats:      []string{"csv", "xlsx"},
	}
}

// Validate checks the configuration for missing or out of range values.
func (c *Configuration) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid scheduler configuration: %w", err)
	}
	return nil
}

// excludedSet turns the configured exclusions into a lookup set.
func (c *Configuration) excludedSet() map[string]bool {
	set := make(map[string]bool, len(c.ExcludedSlots))
	for _, s := range c.ExcludedSlots {
		set[s] = true
	}
	return set
}

// Durations are sums of minute fractions, compare with a small tolerance.
const epsilon = 1e-9

func atLeast(have, want float64) bool {
	return have+epsilon >= want
}

func exhausted(remaining float64) bool {
	return remaining <= epsilon
}

func roundHours(h float64) float64 {
	return math.Round(h*1e6) / 1e6
}
