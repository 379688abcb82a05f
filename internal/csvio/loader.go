package csvio

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"

	appErrors "github.com/rhyrak/go-timetable/pkg/errors"
	"github.com/rhyrak/go-timetable/pkg/model"
)

func newReader(in io.Reader, delim rune) gocsv.CSVReader {
	r := csv.NewReader(in)
	r.Comma = delim
	r.TrimLeadingSpace = true
	return r
}

func inputError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrInput.Code, appErrors.ErrInput.Status, message)
}

// LoadCourses reads and parses given csv file for course data.
func LoadCourses(path string, delim rune) ([]*model.Course, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, inputError(err, "failed to open "+path+". Please make sure the file exists")
	}
	defer f.Close()
	return ReadCourses(f, delim)
}

// ReadCourses parses course rows. Columns: Course_Code, Faculty, L-T-P-S-C,
// Elective, Semester_Half.
func ReadCourses(in io.Reader, delim rune) ([]*model.Course, error) {
	courses := []*model.Course{}
	if err := gocsv.UnmarshalCSV(newReader(in, delim), &courses); err != nil {
		return nil, inputError(err, "failed to parse course data. Please check the data integrity and format")
	}
	return courses, nil
}

// LoadRooms reads and parses given csv file for room data.
func LoadRooms(path string, delim rune) ([]*model.Room, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, inputError(err, "failed to open "+path+". Please make sure the file exists")
	}
	defer f.Close()
	return ReadRooms(f, delim)
}

// ReadRooms parses room rows. Columns: Room_ID, Type.
func ReadRooms(in io.Reader, delim rune) ([]*model.Room, error) {
	rooms := []*model.Room{}
	if err := gocsv.UnmarshalCSV(newReader(in, delim), &rooms); err != nil {
		return nil, inputError(err, "failed to parse room data. Please check the data integrity and format")
	}
	return rooms, nil
}

type slotFile struct {
	TimeSlots []model.SlotSpec `yaml:"time_slots"`
}

// LoadSlotCatalog reads the time slot file. Both JSON and YAML are accepted.
func LoadSlotCatalog(path string) ([]model.SlotSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, inputError(err, "failed to open "+path+". Please make sure the file exists")
	}
	defer f.Close()
	return ReadSlotCatalog(f)
}

func ReadSlotCatalog(in io.Reader) ([]model.SlotSpec, error) {
	var file slotFile
	if err := yaml.NewDecoder(in).Decode(&file); err != nil {
		return nil, inputError(err, "failed to parse time slots")
	}
	if len(file.TimeSlots) == 0 {
		return nil, appErrors.Clone(appErrors.ErrInput, "time slot file has no time_slots")
	}
	return file.TimeSlots, nil
}
