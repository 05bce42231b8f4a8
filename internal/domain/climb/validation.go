package climb

import (
	"strings"
	"time"
)

// Input is a candidate log entry as submitted, all fields untyped strings.
type Input struct {
	Date        string `json:"date"`
	Environment string `json:"environment"`
	Location    string `json:"location"`
	RouteName   string `json:"routeName"`
	ClimbType   string `json:"climbType"`
	GradeSystem string `json:"gradeSystem"`
	Grade       string `json:"grade"`
	Progress    string `json:"progress"`
}

// FieldErrors maps field names to human-readable messages. Empty means valid.
type FieldErrors map[string]string

// MaxImageBytes is the upload size ceiling for attached photos.
const MaxImageBytes = 5 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// Validate checks a candidate entry and returns one message per violated
// field. Every rule is evaluated independently; nothing short-circuits.
func Validate(in Input) FieldErrors {
	errs := FieldErrors{}

	required := []struct{ name, value string }{
		{"date", in.Date},
		{"environment", in.Environment},
		{"location", in.Location},
		{"routeName", in.RouteName},
		{"climbType", in.ClimbType},
		{"gradeSystem", in.GradeSystem},
		{"grade", in.Grade},
		{"progress", in.Progress},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			errs[f.name] = f.name + " is required."
		}
	}

	if date := strings.TrimSpace(in.Date); date != "" {
		parsed, err := time.ParseInLocation(DateLayout, date, time.Local)
		if err != nil {
			errs["date"] = "Date must be YYYY-MM-DD."
		} else if parsed.After(today()) {
			errs["date"] = "Date cannot be in the future."
		}
	}

	env := strings.TrimSpace(in.Environment)
	if env != "" && env != string(EnvGym) && env != string(EnvOutdoor) {
		errs["environment"] = "Environment must be gym or outdoor."
	}

	ctype := strings.TrimSpace(in.ClimbType)
	if ctype != "" && !validClimbType(ctype) {
		errs["climbType"] = "Invalid climb type."
	}

	prog := strings.TrimSpace(in.Progress)
	if prog != "" && prog != string(ProgressComplete) && prog != string(ProgressIncomplete) {
		errs["progress"] = "Progress must be complete or incomplete."
	}

	gsys := strings.TrimSpace(in.GradeSystem)
	if ctype == string(TypeBoulder) {
		if gsys != "" && gsys != string(SystemV) {
			errs["gradeSystem"] = "Bouldering should use V-Scale."
		}
	} else {
		if gsys != "" && gsys != string(SystemYDS) {
			errs["gradeSystem"] = "Roped climbs should use YDS."
		}
	}

	// The grade check runs against the declared system regardless of climb
	// type, so a mismatched system surfaces both a gradeSystem error and a
	// grade error when the grade isn't on the declared system's list.
	grade := strings.TrimSpace(in.Grade)
	if grade != "" {
		switch gsys {
		case string(SystemV):
			if !ValidGrade(SystemV, grade) {
				errs["grade"] = "Bouldering grades must be between V0 and V17."
			}
		case string(SystemYDS):
			if !ValidGrade(SystemYDS, grade) {
				errs["grade"] = "Roped climb grades must be between 5.2 and 5.15."
			}
		}
	}

	return errs
}

// ValidateImage checks an attached photo's MIME type and size. The returned
// errors are keyed to the "image" field.
func ValidateImage(contentType string, size int64) FieldErrors {
	errs := FieldErrors{}
	if !allowedImageTypes[contentType] {
		errs["image"] = "Image must be a JPEG, PNG, or GIF."
	} else if size > MaxImageBytes {
		errs["image"] = "Image must be 5 MB or smaller."
	}
	return errs
}

func validClimbType(s string) bool {
	switch ClimbType(s) {
	case TypeBoulder, TypeTopRope, TypeSport, TypeTrad:
		return true
	}
	return false
}

// today returns midnight of the current local calendar date.
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}

// trimmed returns a copy of the input with all fields whitespace-trimmed.
func (in Input) trimmed() Input {
	return Input{
		Date:        strings.TrimSpace(in.Date),
		Environment: strings.TrimSpace(in.Environment),
		Location:    strings.TrimSpace(in.Location),
		RouteName:   strings.TrimSpace(in.RouteName),
		ClimbType:   strings.TrimSpace(in.ClimbType),
		GradeSystem: strings.TrimSpace(in.GradeSystem),
		Grade:       strings.TrimSpace(in.Grade),
		Progress:    strings.TrimSpace(in.Progress),
	}
}
