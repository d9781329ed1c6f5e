// Package actions executes the commands bound to pad presses.
package actions

import "github.com/google/uuid"

// ActionType represents the type of action to execute
type ActionType string

const (
	ActionTypeShellCommand ActionType = "shell"
	ActionTypeSleep        ActionType = "sleep"
)

// Action represents an executable action
type Action struct {
	ID   string     `json:"id" yaml:"id" mapstructure:"id"`
	Name string     `json:"name" yaml:"name" mapstructure:"name"`
	Type ActionType `json:"type" yaml:"type" mapstructure:"type"`
	Code string     `json:"code" yaml:"code" mapstructure:"code"`
}

// NewAction creates a new action with a generated ID
func NewAction(name string, actionType ActionType) *Action {
	return &Action{
		ID:   uuid.New().String(),
		Name: name,
		Type: actionType,
	}
}

// Binding ties an action to one pad on the device surface.
type Binding struct {
	Row    uint8  `json:"row" yaml:"row" mapstructure:"row"`
	Col    uint8  `json:"col" yaml:"col" mapstructure:"col"`
	Action Action `json:"action" yaml:"action" mapstructure:"action"`
}

// FindBinding returns the binding for a pad, or nil if none is bound.
func FindBinding(bindings []Binding, row, col uint8) *Binding {
	for i := range bindings {
		if bindings[i].Row == row && bindings[i].Col == col {
			return &bindings[i]
		}
	}
	return nil
}
