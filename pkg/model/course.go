package model

import (
	"errors"
	"strconv"
	"strings"
)

// ElectiveCode is the course code of the synthetic pseudo-course that stands in
// for the elective chosen for a run.
const ElectiveCode = "Elective"

var ErrMalformedHours = errors.New("malformed L-T-P-S-C")

type Course struct {
	Course_Code   string `csv:"Course_Code"`
	Faculty       string `csv:"Faculty"`
	LTPSC         string `csv:"L-T-P-S-C"`
	Elective      string `csv:"Elective"`
	Semester_Half string `csv:"Semester_Half"`
}

// Hours is the lecture/tutorial/practical/self-study/credit quintuple.
type Hours struct {
	L, T, P, S, C int
}

// ParseHours splits an "L-T-P-S-C" string into its five integer fields.
func ParseHours(raw string) (Hours, error) {
	parts := strings.Split(raw, "-")
	if len(parts) != 5 {
		return Hours{}, ErrMalformedHours
	}
	var values [5]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Hours{}, ErrMalformedHours
		}
		values[i] = v
	}
	return Hours{L: values[0], T: values[1], P: values[2], S: values[3], C: values[4]}, nil
}

func (c *Course) Code() string {
	return strings.TrimSpace(c.Course_Code)
}

func (c *Course) Lecturer() string {
	return strings.TrimSpace(c.Faculty)
}

func (c *Course) IsElective() bool {
	return strings.TrimSpace(c.Elective) == "1"
}

// Hours parses the course quintuple.
func (c *Course) Hours() (Hours, error) {
	return ParseHours(c.LTPSC)
}

// InHalf reports whether the course runs in the given semester half.
// Courses tagged "0" run in both halves.
func (c *Course) InHalf(half int) bool {
	tag := strings.TrimSpace(c.Semester_Half)
	return tag == "0" || tag == strconv.Itoa(half)
}

// FilterByHalf keeps input order.
func FilterByHalf(courses []*Course, half int) []*Course {
	var filtered []*Course
	for _, c := range courses {
		if c.InHalf(half) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
