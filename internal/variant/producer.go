package variant

import (
	"fmt"
	"strings"

	"smart-meter-exploration/internal/aggregate"
	"smart-meter-exploration/internal/model"
)

// Producer turns a usage matrix into the feature table a variant clusters.
type Producer interface {
	Produce(m *model.UsageMatrix) (*model.FeatureTable, error)
}

// ProducerFunc adapts a function to Producer.
type ProducerFunc func(m *model.UsageMatrix) (*model.FeatureTable, error)

func (f ProducerFunc) Produce(m *model.UsageMatrix) (*model.FeatureTable, error) { return f(m) }

// Kind names an aggregation.
type Kind string

const (
	KindAverage         Kind = "average"
	KindDayTypeContrast Kind = "daytype_contrast"
	KindSeasonContrast  Kind = "season_contrast"
)

// ProducerSpec is the declarative form of a producer, as found in config.
type ProducerSpec struct {
	Kind       Kind
	Normalised bool
	Cumulative bool
	// Mode is diff or ratio for day-type contrasts; empty means diff.
	Mode string
	// Season1 and Season2 default to winter and summer.
	Season1 string
	Season2 string
}

// Build validates the spec and returns its producer.
func (s ProducerSpec) Build() (Producer, error) {
	switch s.Kind {
	case KindAverage:
		opts := aggregate.Options{Normalised: s.Normalised, Cumulative: s.Cumulative}
		return ProducerFunc(func(m *model.UsageMatrix) (*model.FeatureTable, error) {
			return aggregate.AverageUsage(m, opts)
		}), nil

	case KindDayTypeContrast:
		mode := aggregate.ModeDiff
		if s.Mode != "" {
			var err error
			if mode, err = aggregate.ParseContrastMode(s.Mode); err != nil {
				return nil, err
			}
		}
		return ProducerFunc(func(m *model.UsageMatrix) (*model.FeatureTable, error) {
			return aggregate.DayTypeContrast(m, mode)
		}), nil

	case KindSeasonContrast:
		s1, err := model.ParseSeasonSelector(orDefault(s.Season1, "winter"))
		if err != nil {
			return nil, err
		}
		if s1.Composite {
			return nil, fmt.Errorf("%w: %q cannot be the first season", model.ErrInvalidSeason, s1)
		}
		s2, err := model.ParseSeasonSelector(orDefault(s.Season2, "summer"))
		if err != nil {
			return nil, err
		}
		return ProducerFunc(func(m *model.UsageMatrix) (*model.FeatureTable, error) {
			return aggregate.SeasonContrast(m, s1, s2)
		}), nil

	default:
		return nil, fmt.Errorf("%w: unknown producer kind %q", ErrInvalidDescriptor, s.Kind)
	}
}

// String describes the aggregation in a few words.
func (s ProducerSpec) String() string {
	switch s.Kind {
	case KindAverage:
		var parts []string
		if s.Normalised {
			parts = append(parts, "normalised")
		}
		if s.Cumulative {
			parts = append(parts, "cumulative")
		}
		parts = append(parts, "average usage")
		return strings.Join(parts, " ")
	case KindDayTypeContrast:
		return "weekend vs weekday " + orDefault(s.Mode, string(aggregate.ModeDiff))
	case KindSeasonContrast:
		return orDefault(s.Season1, "winter") + " minus " + orDefault(s.Season2, "summer")
	default:
		return string(s.Kind)
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
