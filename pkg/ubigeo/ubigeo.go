// Package ubigeo implements the fixed-width hierarchical location codes used
// by the national registry: the leading 2 digits identify the department, the
// leading 4 the province and the full 6-digit code the district. Trailing
// zeros mark a code as less specific ("150000" is the department of Lima).
package ubigeo

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

const Width = 6

type Level int

const (
	LevelDepartment Level = iota
	LevelProvince
	LevelDistrict
)

// SignificantLen returns the length of the code after stripping trailing
// zeros. It is the basis for deciding how specific a filter code is.
func SignificantLen(code string) int {
	return len(strings.TrimRight(code, "0"))
}

// LevelOf classifies a code by its significant length.
func LevelOf(code string) Level {
	switch n := SignificantLen(code); {
	case n <= 2:
		return LevelDepartment
	case n <= 4:
		return LevelProvince
	default:
		return LevelDistrict
	}
}

// DepartmentCode derives the department-level code ("15xxxx" -> "150000").
func DepartmentCode(code string) string {
	if len(code) < 2 {
		return ""
	}
	return code[:2] + "0000"
}

// ProvinceCode derives the province-level code ("1501xx" -> "150100").
func ProvinceCode(code string) string {
	if len(code) < 4 {
		return ""
	}
	return code[:4] + "00"
}

// Predicate narrows column to the locations matching code. An empty code
// yields nil (no filtering). Department and province codes match by prefix,
// district codes match exactly.
func Predicate(column, code string) sq.Sqlizer {
	if code == "" {
		return nil
	}
	switch LevelOf(code) {
	case LevelDepartment:
		return sq.Like{column: code[:min(2, len(code))] + "%"}
	case LevelProvince:
		return sq.Like{column: code[:min(4, len(code))] + "%"}
	default:
		return sq.Eq{column: code}
	}
}

// Matches reports whether candidate falls inside the area denoted by filter,
// applying the same rule as Predicate. An empty filter matches everything.
func Matches(candidate, filter string) bool {
	if filter == "" {
		return true
	}
	switch LevelOf(filter) {
	case LevelDepartment:
		return len(filter) >= 2 && strings.HasPrefix(candidate, filter[:2])
	case LevelProvince:
		return len(filter) >= 4 && strings.HasPrefix(candidate, filter[:4])
	default:
		return candidate == filter
	}
}
