package solver

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONRoundTrip(t *testing.T) {
	for _, create := range []func() (*Solver, error){
		func() (*Solver, error) { return NewDefaultAdam(1e-3, 32) },
		func() (*Solver, error) { return NewVanilla(0.01, 32, -1) },
		func() (*Solver, error) { return NewDefaultRMSProp(2.5e-4, 32) },
	} {
		s, err := create()
		require.NoError(t, err)

		data, err := json.Marshal(s)
		require.NoError(t, err)

		var out Solver
		require.NoError(t, json.Unmarshal(data, &out))
		require.Equal(t, s.Type, out.Type)
		require.Equal(t, s.Config, out.Config)
		require.NotNil(t, out.Solver)
	}
}

func TestUnknownSolver(t *testing.T) {
	var out Solver
	err := json.Unmarshal([]byte(`{"Type": "Lion", "Config": {}}`), &out)
	require.Error(t, err)
}

func TestRMSPropEta(t *testing.T) {
	_, err := NewRMSProp(1e-3, 1e-8, 0.01, 0.9, 32, -1)
	require.Error(t, err)
}

func TestInvalidHyperparameters(t *testing.T) {
	_, err := NewDefaultAdam(0, 32)
	require.Error(t, err)

	_, err = NewAdam(1e-3, 1e-8, 1, 0.999, 32)
	require.Error(t, err)

	_, err = NewVanilla(0.1, 0, -1)
	require.Error(t, err)

	_, err = NewDefaultRMSProp(-1, 32)
	require.Error(t, err)
}
