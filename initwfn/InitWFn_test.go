package initwfn

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"
)

func TestJSONRoundTrip(t *testing.T) {
	w, err := NewGaussian(0, 0.01)
	require.NoError(t, err)

	data, err := json.Marshal(w)
	require.NoError(t, err)

	var out InitWFn
	require.NoError(t, json.Unmarshal(data, &out))
	require.Equal(t, Gaussian, out.Type)
	require.Equal(t, GaussianConfig{Mean: 0, StdDev: 0.01}, out.Config)
	require.NotNil(t, out.InitWFn())
}

func TestUnmarshalConfigless(t *testing.T) {
	var out InitWFn
	require.NoError(t, json.Unmarshal([]byte(`{"Type": "Zeroes"}`), &out))
	require.Equal(t, Zeroes, out.Type)

	w := out.InitWFn()(tensor.Float64, 3, 2)
	require.Equal(t, make([]float64, 6), w)
}

func TestUnmarshalUnknownType(t *testing.T) {
	var out InitWFn
	err := json.Unmarshal([]byte(`{"Type": "Orthogonal", "Config": {}}`),
		&out)
	require.Error(t, err)
}
