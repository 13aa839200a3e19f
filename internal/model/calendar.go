package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DayType classifies a calendar date for the weekday/weekend contrast.
type DayType int

const (
	Weekday DayType = iota
	WeekendOrHoliday
)

// DayTypeCount is the number of day-type partitions.
const DayTypeCount = 2

func (d DayType) String() string {
	switch d {
	case Weekday:
		return "weekday"
	case WeekendOrHoliday:
		return "weekend_or_holiday"
	default:
		return fmt.Sprintf("DayType(%d)", int(d))
	}
}

// DayTypeOf classifies the date of t. Saturdays, Sundays and England bank
// holidays are WeekendOrHoliday; a bank holiday on a weekday wins over the
// weekday classification.
func DayTypeOf(t time.Time) DayType {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return WeekendOrHoliday
	}
	if IsBankHoliday(t) {
		return WeekendOrHoliday
	}
	return Weekday
}

type civilDate struct {
	Year  int
	Month time.Month
	Day   int
}

func dateOf(t time.Time) civilDate {
	y, m, d := t.Date()
	return civilDate{Year: y, Month: m, Day: d}
}

// bankHolidaysEngland lists public holidays in England for the years covered
// by the smart-meter trial, both the nominal date and the substitute day when
// the holiday fell on a weekend.
var bankHolidaysEngland = map[civilDate]string{
	{2011, time.January, 1}:   "New Year's Day",
	{2011, time.January, 3}:   "New Year's Day (substitute)",
	{2011, time.April, 22}:    "Good Friday",
	{2011, time.April, 25}:    "Easter Monday",
	{2011, time.April, 29}:    "Royal Wedding",
	{2011, time.May, 2}:       "Early May bank holiday",
	{2011, time.May, 30}:      "Spring bank holiday",
	{2011, time.August, 29}:   "Summer bank holiday",
	{2011, time.December, 25}: "Christmas Day",
	{2011, time.December, 26}: "Boxing Day",
	{2011, time.December, 27}: "Christmas Day (substitute)",

	{2012, time.January, 1}:   "New Year's Day",
	{2012, time.January, 2}:   "New Year's Day (substitute)",
	{2012, time.April, 6}:     "Good Friday",
	{2012, time.April, 9}:     "Easter Monday",
	{2012, time.May, 7}:       "Early May bank holiday",
	{2012, time.June, 4}:      "Spring bank holiday",
	{2012, time.June, 5}:      "Diamond Jubilee",
	{2012, time.August, 27}:   "Summer bank holiday",
	{2012, time.December, 25}: "Christmas Day",
	{2012, time.December, 26}: "Boxing Day",

	{2013, time.January, 1}:   "New Year's Day",
	{2013, time.March, 29}:    "Good Friday",
	{2013, time.April, 1}:     "Easter Monday",
	{2013, time.May, 6}:       "Early May bank holiday",
	{2013, time.May, 27}:      "Spring bank holiday",
	{2013, time.August, 26}:   "Summer bank holiday",
	{2013, time.December, 25}: "Christmas Day",
	{2013, time.December, 26}: "Boxing Day",

	{2014, time.January, 1}:   "New Year's Day",
	{2014, time.April, 18}:    "Good Friday",
	{2014, time.April, 21}:    "Easter Monday",
	{2014, time.May, 5}:       "Early May bank holiday",
	{2014, time.May, 26}:      "Spring bank holiday",
	{2014, time.August, 25}:   "Summer bank holiday",
	{2014, time.December, 25}: "Christmas Day",
	{2014, time.December, 26}: "Boxing Day",
}

// IsBankHoliday reports whether the date of t is an England public holiday.
// Only 2011–2014 are covered.
func IsBankHoliday(t time.Time) bool {
	_, ok := bankHolidaysEngland[dateOf(t)]
	return ok
}

// BankHolidayName returns the holiday name for the date of t, if any.
func BankHolidayName(t time.Time) (string, bool) {
	name, ok := bankHolidaysEngland[dateOf(t)]
	return name, ok
}

// Season is an approximate meteorological season.
type Season int

const (
	Winter Season = iota
	Spring
	Summer
	Autumn
)

// SeasonCount is the number of season partitions.
const SeasonCount = 4

var seasonNames = [SeasonCount]string{"winter", "spring", "summer", "autumn"}

func (s Season) String() string {
	if s < 0 || int(s) >= SeasonCount {
		return fmt.Sprintf("Season(%d)", int(s))
	}
	return seasonNames[s]
}

// seasonByMonth maps each calendar month to its season.
var seasonByMonth = map[time.Month]Season{
	time.December:  Winter,
	time.January:   Winter,
	time.February:  Winter,
	time.March:     Spring,
	time.April:     Spring,
	time.May:       Spring,
	time.June:      Summer,
	time.July:      Summer,
	time.August:    Summer,
	time.September: Autumn,
	time.October:   Autumn,
	time.November:  Autumn,
}

// SeasonOf returns the season of the month t falls in.
func SeasonOf(t time.Time) Season {
	return seasonByMonth[t.Month()]
}

// ErrInvalidSeason is returned for unknown season names.
var ErrInvalidSeason = errors.New("invalid season")

// SpringAndAutumn is the name of the composite season selector.
const SpringAndAutumn = "spring and autumn"

// SeasonSelector names either one season or the spring-and-autumn composite.
type SeasonSelector struct {
	Season    Season
	Composite bool
}

// SingleSeason selects one season.
func SingleSeason(s Season) SeasonSelector { return SeasonSelector{Season: s} }

// SpringAutumn selects the mean of spring and autumn.
func SpringAutumn() SeasonSelector { return SeasonSelector{Composite: true} }

// Seasons lists the seasons averaged by the selector.
func (s SeasonSelector) Seasons() []Season {
	if s.Composite {
		return []Season{Spring, Autumn}
	}
	return []Season{s.Season}
}

func (s SeasonSelector) String() string {
	if s.Composite {
		return SpringAndAutumn
	}
	return s.Season.String()
}

// ParseSeasonSelector parses "winter", "spring", "summer", "autumn" or
// "spring and autumn" (case-insensitive).
func ParseSeasonSelector(name string) (SeasonSelector, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == SpringAndAutumn {
		return SpringAutumn(), nil
	}
	for i, s := range seasonNames {
		if n == s {
			return SingleSeason(Season(i)), nil
		}
	}
	return SeasonSelector{}, fmt.Errorf("%w: %q", ErrInvalidSeason, name)
}
