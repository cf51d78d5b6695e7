// Package solver wraps Gorgonia Solvers so that they can be JSON
// serialized into configuration files.
package solver

import (
	"encoding/json"
	"fmt"
	"reflect"

	G "gorgonia.org/gorgonia"
)

// Type describes different types of solvers that are available
type Type string

// Available solver types
const (
	Adam    Type = "Adam"
	Vanilla Type = "Vanilla"
	RMSProp Type = "RMSProp"
)

// configTypes maps each Type to the concrete Config that describes it
var configTypes = map[Type]reflect.Type{
	Adam:    reflect.TypeOf(AdamConfig{}),
	Vanilla: reflect.TypeOf(VanillaConfig{}),
	RMSProp: reflect.TypeOf(RMSPropConfig{}),
}

// Config implements a Gorgonia Solver configuration and can be used to
// create Gorgonia Solvers they describe.
type Config interface {
	Create() G.Solver

	// ValidType returns whether a specific Solver type can be created
	// with the Config
	ValidType(Type) bool
}

// Solver wraps Gorgonia Solvers so that they can be JSON marshalled and
// unmarshalled.
type Solver struct {
	G.Solver `json:"-"`
	Type
	Config
}

// newSolver returns a new solver with the given type and configuration.
func newSolver(t Type, c Config) (*Solver, error) {
	if !c.ValidType(t) {
		return nil, fmt.Errorf("newSolver: invalid solver type %v for "+
			"configuration %T", t, c)
	}
	solver := Solver{Type: t, Config: c}
	solver.Solver = solver.Config.Create()

	return &solver, nil
}

// validateCommon checks the hyperparameters shared by all solvers
func validateCommon(stepSize float64, batchSize int) error {
	if stepSize <= 0 {
		return fmt.Errorf("step size must be > 0, have %v", stepSize)
	}
	if batchSize < 1 {
		return fmt.Errorf("batch size must be >= 1, have %v", batchSize)
	}
	return nil
}

// String implements the fmt.Stringer interface
func (s *Solver) String() string {
	return fmt.Sprintf("{%v Solver: %+v}", s.Type, s.Config)
}

// UnmarshalJSON implements the json.Unmarshaller interface
func (s *Solver) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type   Type
		Config json.RawMessage
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshalJSON: %w", err)
	}

	ty, ok := configTypes[raw.Type]
	if !ok {
		return fmt.Errorf("unmarshalJSON: unknown solver type %q", raw.Type)
	}

	value := reflect.New(ty)
	if err := json.Unmarshal(raw.Config, value.Interface()); err != nil {
		return fmt.Errorf("unmarshalJSON: %w", err)
	}

	s.Type = raw.Type
	s.Config = value.Elem().Interface().(Config)
	s.Solver = s.Config.Create()

	return nil
}
