package transfer_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/transfer"
)

func TestDefaultStyleWeights(t *testing.T) {
	weights := transfer.DefaultStyleWeights()

	want := transfer.StyleWeights{
		"conv1_1": 1.0,
		"conv2_1": 0.75,
		"conv3_1": 0.2,
		"conv4_1": 0.2,
		"conv5_1": 0.2,
	}
	assert.Equal(t, want, weights)
	assert.NoError(t, weights.Validate())
}

func TestStyleWeights_Validate(t *testing.T) {
	cases := []struct {
		name    string
		weights transfer.StyleWeights
		ok      bool
	}{
		{"valid", transfer.StyleWeights{"conv1_1": 1.0}, true},
		{"zero weight allowed", transfer.StyleWeights{"conv1_1": 0}, true},
		{"empty table", transfer.StyleWeights{}, false},
		{"nil table", nil, false},
		{"negative weight", transfer.StyleWeights{"conv1_1": -0.5}, false},
		{"empty layer name", transfer.StyleWeights{"": 1.0}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.weights.Validate()
			if c.ok {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.ErrorIs(t, err, transfer.ErrConfiguration)
			}
		})
	}
}

func TestParseStyleWeights(t *testing.T) {
	weights, err := transfer.ParseStyleWeights([]byte("conv1_1: 1.0\nconv2_1: 0.75\nconv3_1: 0.2\n"))
	require.NoError(t, err)

	assert.Equal(t, transfer.StyleWeights{
		"conv1_1": 1.0,
		"conv2_1": 0.75,
		"conv3_1": 0.2,
	}, weights)
}

func TestParseStyleWeights_Errors(t *testing.T) {
	t.Run("malformed yaml", func(t *testing.T) {
		_, err := transfer.ParseStyleWeights([]byte("conv1_1: [oops\n"))
		require.Error(t, err)
		assert.ErrorIs(t, err, transfer.ErrConfiguration)
	})

	t.Run("negative weight", func(t *testing.T) {
		_, err := transfer.ParseStyleWeights([]byte("conv1_1: -2\n"))
		require.Error(t, err)
		assert.ErrorIs(t, err, transfer.ErrConfiguration)
	})

	t.Run("empty document", func(t *testing.T) {
		_, err := transfer.ParseStyleWeights([]byte(""))
		require.Error(t, err)
		assert.ErrorIs(t, err, transfer.ErrConfiguration)
	})
}

func TestLoadStyleWeights(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	require.NoError(t, os.WriteFile(path, []byte("conv1_1: 0.9\nconv5_1: 0.1\n"), 0o644))

	weights, err := transfer.LoadStyleWeights(path)
	require.NoError(t, err)
	assert.Equal(t, transfer.StyleWeights{"conv1_1": 0.9, "conv5_1": 0.1}, weights)

	_, err = transfer.LoadStyleWeights(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
