package data

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-meter-exploration/internal/model"
)

func TestReadHouseholds(t *testing.T) {
	in := `LCLid,stdorToU,Acorn,Acorn_grouped,file
MAC005492,ToU,ACORN-,ACORN-,block_0
MAC001074,ToU,ACORN-A,Affluent,block_0
MAC000002,Std,ACORN-A,Affluent,block_0
MAC003613,Std,ACORN-U,ACORN-U,block_111
`
	hh, err := ReadHouseholds(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, hh, 4)

	assert.Equal(t, model.Household{ID: "MAC005492", Tariff: model.TariffTimeOfUse, Group: model.GroupOther}, hh["MAC005492"])
	assert.Equal(t, model.TariffStandard, hh["MAC000002"].Tariff)
	assert.Equal(t, model.GroupAffluent, hh["MAC000002"].Group)
	assert.Equal(t, model.GroupOther, hh["MAC003613"].Group)
}

func TestReadHouseholds_Errors(t *testing.T) {
	_, err := ReadHouseholds(strings.NewReader("LCLid,tariff\n"))
	assert.Error(t, err)

	_, err = ReadHouseholds(strings.NewReader("LCLid,stdorToU,Acorn_grouped\nA,Eco7,Affluent\n"))
	assert.Error(t, err)

	_, err = ReadHouseholds(strings.NewReader("LCLid,stdorToU,Acorn_grouped\nA,Std,Affluent\nA,Std,Affluent\n"))
	assert.Error(t, err)
}
