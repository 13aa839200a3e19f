package model

import (
	"fmt"
	"strings"
)

// Tariff is the household's electricity tariff type.
type Tariff string

const (
	TariffStandard  Tariff = "Standard"
	TariffTimeOfUse Tariff = "TimeOfUse"
)

// Tariffs lists tariff types in display order.
var Tariffs = []Tariff{TariffStandard, TariffTimeOfUse}

// ParseTariff maps the trial's raw codes ("Std", "ToU") to a Tariff.
func ParseTariff(raw string) (Tariff, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "std", "standard":
		return TariffStandard, nil
	case "tou", "timeofuse", "time of use":
		return TariffTimeOfUse, nil
	default:
		return "", fmt.Errorf("unknown tariff %q", raw)
	}
}

// SocioGroup is the grouped Acorn socioeconomic classification.
type SocioGroup string

const (
	GroupAdversity   SocioGroup = "Adversity"
	GroupComfortable SocioGroup = "Comfortable"
	GroupAffluent    SocioGroup = "Affluent"
	GroupOther       SocioGroup = "Other"
)

// SocioGroups lists groups in display order.
var SocioGroups = []SocioGroup{GroupAdversity, GroupComfortable, GroupAffluent, GroupOther}

// ParseSocioGroup maps an Acorn_grouped value to a SocioGroup. The
// unclassified codes "ACORN-" and "ACORN-U" become Other.
func ParseSocioGroup(raw string) (SocioGroup, error) {
	switch strings.TrimSpace(raw) {
	case "Adversity":
		return GroupAdversity, nil
	case "Comfortable":
		return GroupComfortable, nil
	case "Affluent":
		return GroupAffluent, nil
	case "ACORN-", "ACORN-U", "Other":
		return GroupOther, nil
	default:
		return "", fmt.Errorf("unknown acorn group %q", raw)
	}
}

// Household is the contextual record for one meter.
type Household struct {
	ID     string
	Tariff Tariff
	Group  SocioGroup
}
