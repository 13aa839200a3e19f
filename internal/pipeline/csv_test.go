package pipeline

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-meter-exploration/internal/cluster"
	"smart-meter-exploration/internal/model"
	"smart-meter-exploration/internal/variant"
)

func sampleOutcome() *Outcome {
	return &Outcome{
		RunID:   "run-1",
		Variant: variant.Descriptor{Name: "total_usage", K: 2},
		Table: &model.FeatureTable{
			Axis:       []string{"00:00", "00:30"},
			Households: []string{"A", "B"},
			Rows:       [][]float64{{0.1, 0.25}, {1, 2}},
			Excluded:   []model.Exclusion{{Household: "C", Reason: model.ReasonMissingSlot}},
		},
		Result: &cluster.Result{
			K:           2,
			Households:  []string{"A", "B"},
			Assignments: []int{0, 1},
		},
	}
}

func TestWriteAssignments(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeAssignments(&buf, sampleOutcome()))
	assert.Equal(t, "run_id,variant,household,cluster\nrun-1,total_usage,A,0\nrun-1,total_usage,B,1\n", buf.String())
}

func TestWriteFeatureTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeFeatureTable(&buf, sampleOutcome().Table))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"household,00:00,00:30",
		"A,0.100000,0.250000",
		"B,1.000000,2.000000",
	}, lines)
}

func TestWriteInertia_SkipsFailedCurves(t *testing.T) {
	var buf bytes.Buffer
	curves := []Curve{
		{RunID: "r", Variant: "a", Points: []cluster.InertiaPoint{{K: 1, Inertia: 4}, {K: 2, Inertia: 1.5}}},
		{RunID: "r", Variant: "b", Err: errors.New("boom")},
	}
	require.NoError(t, writeInertia(&buf, curves))
	assert.Equal(t, "run_id,variant,k,inertia\nr,a,1,4.000000\nr,a,2,1.500000\n", buf.String())
}

func TestWriteExclusionsCSV_CreatesDirectories(t *testing.T) {
	p := filepath.Join(t.TempDir(), "tables", "total_usage_excluded.csv")
	require.NoError(t, WriteExclusionsCSV(p, sampleOutcome()))

	raw, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "variant,household,reason\ntotal_usage,C,missing_slot\n", string(raw))
}
