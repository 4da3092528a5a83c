package domain

import (
	"fmt"
	"strings"
	"time"
)

type Season string

const (
	SeasonFall   Season = "fall"
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonWinter Season = "winter"
)

func (s Season) Valid() bool {
	switch s {
	case SeasonFall, SeasonSpring, SeasonSummer, SeasonWinter:
		return true
	}
	return false
}

type Semester struct {
	ID        string // "<season>_<year>", e.g. fall_2024
	Name      string
	Year      int
	Season    Season
	StartsOn  *time.Time
	EndsOn    *time.Time
	IsCurrent bool
	Archived  bool
	CreatedAt time.Time
}

// SemesterID builds the canonical identifier for a season and year.
func SemesterID(season Season, year int) string {
	return fmt.Sprintf("%s_%d", strings.ToLower(string(season)), year)
}
