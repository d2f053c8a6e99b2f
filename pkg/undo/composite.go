package undo

import "strings"

// Composite groups several actions into a single history entry.
// Children are applied in the order they were added and undone in reverse.
type Composite struct {
	Name    string
	actions []Action
}

// NewComposite creates a composite from the given actions, in order.
func NewComposite(actions ...Action) *Composite {
	c := &Composite{actions: make([]Action, 0, len(actions))}
	c.actions = append(c.actions, actions...)
	return c
}

// Size returns the number of child actions.
func (c *Composite) Size() int {
	return len(c.actions)
}

// Add appends an action to the end of the composite.
func (c *Composite) Add(action Action) {
	c.actions = append(c.actions, action)
}

// Actions returns a copy of the child actions.
func (c *Composite) Actions() []Action {
	out := make([]Action, len(c.actions))
	copy(out, c.actions)
	return out
}

// Do applies every child in order. The first failing child aborts the sweep;
// children applied before it stay applied.
func (c *Composite) Do() error {
	for _, action := range c.actions {
		if err := action.Do(); err != nil {
			return err
		}
	}
	return nil
}

// Undo reverts every child in reverse order. The first failing child aborts the sweep.
func (c *Composite) Undo() error {
	for i := len(c.actions) - 1; i >= 0; i-- {
		if err := c.actions[i].Undo(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Composite) Description() string {
	if len(c.Name) > 0 {
		return c.Name
	}
	descs := make([]string, 0, len(c.actions))
	for _, action := range c.actions {
		descs = append(descs, Describe(action))
	}
	return strings.Join(descs, ", ")
}
