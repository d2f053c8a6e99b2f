package undo

import (
	"fmt"
	"log/slog"
)

var logger = slog.Default()

// SetLogger sets the process-wide logger used for diagnostics that are not
// tied to a Manager, such as the Unimplemented warning. Managers created
// afterwards default to it as well.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	logger = l
}

// Action is a reversible unit of work.
// Undo must restore the state that existed right before Do was called.
type Action interface {
	Do() error
	Undo() error
}

// Describer is implemented by actions that can describe themselves in history listings.
type Describer interface {
	Description() string
}

// Unimplemented reports that action does not implement method and returns nil.
// Variants that only support one direction call it from the other one.
func Unimplemented(action Action, method string) error {
	logger.Warn("method is not implemented", "method", method, "action", typeName(action))
	return nil
}

// Funcs adapts a pair of functions to the Action interface.
// A nil function is reported as unimplemented.
type Funcs struct {
	Name     string
	DoFunc   func() error
	UndoFunc func() error
}

func (f Funcs) Do() error {
	if f.DoFunc == nil {
		return Unimplemented(f, "Do")
	}
	return f.DoFunc()
}

func (f Funcs) Undo() error {
	if f.UndoFunc == nil {
		return Unimplemented(f, "Undo")
	}
	return f.UndoFunc()
}

func (f Funcs) Description() string {
	return f.Name
}

// Describe returns the description of action, falling back to its type name.
func Describe(action Action) string {
	if d, ok := action.(Describer); ok {
		if desc := d.Description(); len(desc) > 0 {
			return desc
		}
	}
	return typeName(action)
}

func typeName(action Action) string {
	if f, ok := action.(Funcs); ok && len(f.Name) > 0 {
		return f.Name
	}
	return fmt.Sprintf("%T", action)
}
