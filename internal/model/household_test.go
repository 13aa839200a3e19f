package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTariff(t *testing.T) {
	tr, err := ParseTariff("Std")
	require.NoError(t, err)
	assert.Equal(t, TariffStandard, tr)

	tr, err = ParseTariff("ToU")
	require.NoError(t, err)
	assert.Equal(t, TariffTimeOfUse, tr)

	_, err = ParseTariff("Economy7")
	assert.Error(t, err)
}

func TestParseSocioGroup(t *testing.T) {
	for raw, want := range map[string]SocioGroup{
		"Adversity":   GroupAdversity,
		"Comfortable": GroupComfortable,
		"Affluent":    GroupAffluent,
		"ACORN-":      GroupOther,
		"ACORN-U":     GroupOther,
	} {
		got, err := ParseSocioGroup(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseSocioGroup("ACORN-Q")
	assert.Error(t, err)
}
