// Package initwfn wraps Gorgonia weight initializers so that they can
// be JSON serialized into configuration files.
package initwfn

import (
	"encoding/json"
	"fmt"
	"reflect"

	G "gorgonia.org/gorgonia"
)

// Type describes different types of InitWFn that are available
type Type string

// Available InitWFn types
const (
	GlorotU  Type = "GlorotU"
	GlorotN  Type = "GlorotN"
	HeU      Type = "HeU"
	HeN      Type = "HeN"
	Zeroes   Type = "Zeroes"
	Ones     Type = "Ones"
	Constant Type = "Constant"
	Gaussian Type = "Gaussian"
	Uniform  Type = "Uniform"
)

// configTypes maps each Type to the concrete Config that describes it
var configTypes = map[Type]reflect.Type{
	GlorotU:  reflect.TypeOf(GlorotUConfig{}),
	GlorotN:  reflect.TypeOf(GlorotNConfig{}),
	HeU:      reflect.TypeOf(HeUConfig{}),
	HeN:      reflect.TypeOf(HeNConfig{}),
	Zeroes:   reflect.TypeOf(ZeroesConfig{}),
	Ones:     reflect.TypeOf(OnesConfig{}),
	Constant: reflect.TypeOf(ConstantConfig{}),
	Gaussian: reflect.TypeOf(GaussianConfig{}),
	Uniform:  reflect.TypeOf(UniformConfig{}),
}

// Config implements a Gorgonia InitWFn configuration and can be used to
// create the described Gorgonia InitWFn's.
type Config interface {
	// Create returns the Gorgonia InitWFn that the Config describes
	Create() G.InitWFn

	// Type returns the type of Gorgonia InitWFn that is returned
	Type() Type
}

// InitWFn wraps Gorgonia InitWFn so that they can be JSON marshalled and
// unmarshalled.
type InitWFn struct {
	initWFn G.InitWFn
	Type
	Config
}

// newInitWFn returns a new InitWFn
func newInitWFn(c Config) (*InitWFn, error) {
	if _, ok := configTypes[c.Type()]; !ok {
		return nil, fmt.Errorf("newInitWFn: unregistered type %v", c.Type())
	}
	return &InitWFn{initWFn: c.Create(), Type: c.Type(), Config: c}, nil
}

// InitWFn returns the wrapped Gorgonia InitWFn
func (i *InitWFn) InitWFn() G.InitWFn {
	return i.initWFn
}

// String implements the fmt.Stringer interface
func (i *InitWFn) String() string {
	return fmt.Sprintf("{%v InitWFn: %v}", i.Type, i.Config)
}

// UnmarshalJSON implements the json.Unmarshaller interface
func (i *InitWFn) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type   Type
		Config json.RawMessage
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshalJSON: %w", err)
	}

	ty, ok := configTypes[raw.Type]
	if !ok {
		return fmt.Errorf("unmarshalJSON: unknown InitWFn type %q", raw.Type)
	}

	value := reflect.New(ty)
	if len(raw.Config) > 0 && string(raw.Config) != "null" {
		if err := json.Unmarshal(raw.Config, value.Interface()); err != nil {
			return fmt.Errorf("unmarshalJSON: %w", err)
		}
	}

	i.Type = raw.Type
	i.Config = value.Elem().Interface().(Config)
	i.initWFn = i.Config.Create()

	return nil
}
