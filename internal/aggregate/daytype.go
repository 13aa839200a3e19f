package aggregate

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"

	"smart-meter-exploration/internal/model"
)

// ErrInvalidMode is returned for a day-type contrast mode other than diff or ratio.
var ErrInvalidMode = errors.New("invalid contrast mode")

// ContrastMode selects how weekend and weekday profiles are combined.
type ContrastMode string

const (
	// ModeDiff is weekend_or_holiday minus weekday.
	ModeDiff ContrastMode = "diff"
	// ModeRatio is weekend_or_holiday divided by weekday.
	ModeRatio ContrastMode = "ratio"
)

// ParseContrastMode parses "diff" or "ratio".
func ParseContrastMode(s string) (ContrastMode, error) {
	switch ContrastMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeDiff:
		return ModeDiff, nil
	case ModeRatio:
		return ModeRatio, nil
	default:
		return "", fmt.Errorf("%w: %q (want diff or ratio)", ErrInvalidMode, s)
	}
}

var bothDayTypes = []int{int(model.Weekday), int(model.WeekendOrHoliday)}

// DayTypeAxis returns the 96 labels of AverageUsageByDayType: the weekday
// slots followed by the weekend-or-holiday slots.
func DayTypeAxis() []string {
	axis := make([]string, 0, model.DayTypeCount*model.SlotsPerDay)
	for _, dt := range []model.DayType{model.Weekday, model.WeekendOrHoliday} {
		for _, l := range model.SlotLabels() {
			axis = append(axis, dt.String()+" "+l)
		}
	}
	return axis
}

// AverageUsageByDayType returns each household's mean usage per slot for
// weekdays and for weekends and bank holidays, concatenated in that order.
// With normalise set each half is scaled to sum to one independently.
func AverageUsageByDayType(m *model.UsageMatrix, normalise bool) (*model.FeatureTable, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}

	b := newTableBuilder("average_usage_by_daytype", DayTypeAxis())
	households := m.Households()
	for j, p := range byPartition(m, byDayType, model.DayTypeCount) {
		if !p.complete(bothDayTypes) {
			b.exclude(households[j], model.ReasonMissingSlot)
			continue
		}
		weekday := append([]float64(nil), p[model.Weekday][:]...)
		weekend := append([]float64(nil), p[model.WeekendOrHoliday][:]...)
		if normalise && !(scaleToOne(weekday) && scaleToOne(weekend)) {
			b.exclude(households[j], model.ReasonZeroTotal)
			continue
		}
		b.add(households[j], append(weekday, weekend...))
	}
	return b.build(), nil
}

// DayTypeContrast returns, per slot, weekend_or_holiday minus weekday (diff)
// or weekend_or_holiday over weekday (ratio). In ratio mode households with
// a zero weekday mean in any slot are excluded.
func DayTypeContrast(m *model.UsageMatrix, mode ContrastMode) (*model.FeatureTable, error) {
	if mode != ModeDiff && mode != ModeRatio {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, string(mode))
	}
	if m == nil {
		return nil, ErrNilMatrix
	}

	b := newTableBuilder("daytype_"+string(mode), model.SlotLabels())
	households := m.Households()
	for j, p := range byPartition(m, byDayType, model.DayTypeCount) {
		if !p.complete(bothDayTypes) {
			b.exclude(households[j], model.ReasonMissingSlot)
			continue
		}
		weekday := p[model.Weekday][:]
		row := append([]float64(nil), p[model.WeekendOrHoliday][:]...)

		switch mode {
		case ModeDiff:
			floats.Sub(row, weekday)
		case ModeRatio:
			if floats.HasNaN(weekday) || containsZero(weekday) {
				b.exclude(households[j], model.ReasonZeroDenominator)
				continue
			}
			floats.Div(row, weekday)
		}
		if !finite(row) {
			b.exclude(households[j], model.ReasonZeroDenominator)
			continue
		}
		b.add(households[j], row)
	}
	return b.build(), nil
}

func containsZero(row []float64) bool {
	for _, v := range row {
		if v == 0 {
			return true
		}
	}
	return false
}
