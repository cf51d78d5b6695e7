package agent

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Config represents a configuration for creating an agent
type Config interface {
	// CreateAgent creates the agent that the config describes for
	// states of the given number of features and the given number of
	// actions
	CreateAgent(features, numActions int, seed uint64) (Agent, error)

	// Validate returns an error describing whether or not the
	// configuration is valid or not.
	Validate() error

	// Type returns the type of agent that the Config creates
	Type() Type
}

// Type represents a specific type of an agent Config.
// Config's with this type can create Agents of the corresponding type.
type Type string

const (
	QLearningLinear Type = "QLearning-Linear"
)

// Registered types with the package. Once a Type has been registered
// with this map, a TypedConfig with that type can be deserialized.
//
// Each separate package is in charge of registering its Type with
// the package separately to avoid circular imports.
var registeredTypes = make(map[Type]reflect.Type)

// Register registers an agent's Type with a concrete Config type
// so that upon deserialization of a TypedConfig, Config's of type
// agentType are deserialized into the concrete type.
func Register(agentType Type, config Config) {
	registeredTypes[agentType] = reflect.TypeOf(config)
}

// TypedConfig explicitly stores the Type of a Config so that the
// Config can be deserialized into its concrete type without declaring
// a variable of that type beforehand.
type TypedConfig struct {
	Type
	Config
}

// NewTypedConfig types the argument Config
func NewTypedConfig(c Config) TypedConfig {
	return TypedConfig{Type: c.Type(), Config: c}
}

// UnmarshalJSON implements the json.Unmarshaller interface
func (t *TypedConfig) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type   Type
		Config json.RawMessage
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshalJSON: %w", err)
	}

	ty, ok := registeredTypes[raw.Type]
	if !ok {
		return fmt.Errorf("unmarshalJSON: unregistered agent type %q",
			raw.Type)
	}

	value := reflect.New(ty)
	if err := json.Unmarshal(raw.Config, value.Interface()); err != nil {
		return fmt.Errorf("unmarshalJSON: %w", err)
	}

	t.Type = raw.Type
	t.Config = value.Elem().Interface().(Config)
	return nil
}
