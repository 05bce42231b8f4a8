package climb

import (
	"strconv"
	"strings"
)

// VGrades is the canonical V-scale bouldering list, in ascending order.
var VGrades = []string{
	"V0", "V1", "V2", "V3", "V4", "V5", "V6", "V7", "V8",
	"V9", "V10", "V11", "V12", "V13", "V14", "V15", "V16", "V17",
}

// YDSGrades is the canonical YDS roped-climb list, in ascending order.
// Only bare decimal grades; letter-suffixed grades like "5.10a" are not
// accepted by the validator.
var YDSGrades = []string{
	"5.2", "5.3", "5.4", "5.5", "5.6", "5.7", "5.8",
	"5.9", "5.10", "5.11", "5.12", "5.13", "5.14", "5.15",
}

// GradesFor returns the ordered grade list for a system, suitable for
// populating a selection control. Unknown systems yield nil.
func GradesFor(system GradeSystem) []string {
	switch system {
	case SystemV:
		return VGrades
	case SystemYDS:
		return YDSGrades
	}
	return nil
}

// ValidGrade reports whether grade is a member of the system's canonical list.
func ValidGrade(system GradeSystem, grade string) bool {
	for _, g := range GradesFor(system) {
		if g == grade {
			return true
		}
	}
	return false
}

// GradeKey maps a grade to a sortable integer: V0..V17 to 0..17, 5.2..5.15 to
// 502..515. Returns -1 when the grade doesn't parse under the given system.
// Keys from different systems are not comparable with each other.
func GradeKey(system GradeSystem, grade string) int {
	switch system {
	case SystemV:
		return vKey(grade)
	case SystemYDS:
		return ydsKey(grade)
	}
	return -1
}

func vKey(grade string) int {
	s := strings.ToUpper(strings.TrimSpace(grade))
	if !strings.HasPrefix(s, "V") {
		return -1
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 0 {
		return -1
	}
	return n
}

func ydsKey(grade string) int {
	s := strings.ToLower(strings.TrimSpace(grade))
	if !strings.HasPrefix(s, "5.") {
		return -1
	}
	// Tolerate letter-suffixed grades ("5.10a") for sort keys by keeping
	// only the digits after the dot.
	digits := strings.Builder{}
	for _, ch := range s[len("5."):] {
		if ch >= '0' && ch <= '9' {
			digits.WriteRune(ch)
		}
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return -1
	}
	return 500 + n
}
