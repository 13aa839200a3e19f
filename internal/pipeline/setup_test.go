package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-meter-exploration/internal/config"
	"smart-meter-exploration/internal/variant"
)

func TestFromConfig_Defaults(t *testing.T) {
	d := makeSynthetic(t, 8, 2, 14)
	cfg := config.Default()
	cfg.Clustering.Restarts = 3

	r, err := FromConfig(d.Matrix, cfg)
	require.NoError(t, err)
	assert.Equal(t, variant.Defaults().Names(), r.Registry().Names())
	assert.Equal(t, 3, r.engine.Params().Restarts)
	assert.Equal(t, uint64(42), r.engine.Params().Seed)
}

func TestFromConfig_DeclaredVariants(t *testing.T) {
	d := makeSynthetic(t, 8, 2, 14)
	cfg := config.Default()
	cfg.Variants = []config.VariantConfig{
		{Name: "shape", K: 2, Kind: "average", Normalised: true},
	}

	r, err := FromConfig(d.Matrix, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"shape"}, r.Registry().Names())

	o, err := r.Run("shape")
	require.NoError(t, err)
	assert.Equal(t, 2, o.Result.K)
}

func TestFromConfig_BadVariant(t *testing.T) {
	cfg := config.Default()
	cfg.Variants = []config.VariantConfig{{Name: "bad", K: 2, Kind: "nope"}}

	_, err := FromConfig(nil, cfg)
	assert.ErrorIs(t, err, variant.ErrInvalidDescriptor)
}
