// Package mocks provides testify mocks of the platform evaluator interfaces.
package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/robbyt/go-rulescript/platform/data"
)

// EvaluatorResponse is a mock implementation of platform.EvaluatorResponse.
type EvaluatorResponse struct {
	mock.Mock
}

// Type returns the mocked data.Types, or infers one from a mocked Go value.
func (m *EvaluatorResponse) Type() data.Types {
	args := m.Called()
	val := args.Get(0)

	switch val.(type) {
	case nil:
		return data.NULL
	case bool:
		return data.BOOL
	case int, float64:
		return data.FLOAT
	case map[string]any:
		return data.MAP
	case []any:
		return data.LIST
	case string:
		return data.STRING
	default:
		if t, ok := val.(data.Types); ok {
			return t
		}
		panic("unknown type")
	}
}

func (m *EvaluatorResponse) Inspect() string {
	args := m.Called()
	return args.String(0)
}

// Interface returns a mockable value of "any" type, and must be type asserted to the correct type.
func (m *EvaluatorResponse) Interface() any {
	args := m.Called()
	return args.Get(0)
}

func (m *EvaluatorResponse) GetScriptExeID() string {
	args := m.Called()
	return args.String(0)
}

func (m *EvaluatorResponse) GetEvalID() string {
	args := m.Called()
	return args.String(0)
}

func (m *EvaluatorResponse) GetExecTime() string {
	args := m.Called()
	return args.String(0)
}
