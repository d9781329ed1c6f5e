package actions

import "fmt"

// Executor handles action execution with platform-specific logic
type Executor struct {
	handlers map[ActionType]Handler
}

// NewExecutor creates a new action executor
func NewExecutor() *Executor {
	return &Executor{
		handlers: map[ActionType]Handler{
			ActionTypeShellCommand: &ShellHandler{},
			ActionTypeSleep:        &SleepHandler{},
		},
	}
}

// Execute runs an action based on its type
func (e *Executor) Execute(action *Action) (string, error) {
	if action == nil {
		return "", fmt.Errorf("action is nil")
	}

	handler, ok := e.handlers[action.Type]
	if !ok {
		return "", fmt.Errorf("unknown action type: %s", action.Type)
	}
	if !handler.IsSupported() {
		return "", fmt.Errorf("action type %s not supported on this platform", action.Type)
	}

	return handler.Execute(action.Code)
}

// Validate checks an action's code without executing it
func (e *Executor) Validate(action *Action) error {
	if action == nil {
		return fmt.Errorf("action is nil")
	}

	handler, ok := e.handlers[action.Type]
	if !ok {
		return fmt.Errorf("unknown action type: %s", action.Type)
	}
	return handler.Validate(action.Code)
}
