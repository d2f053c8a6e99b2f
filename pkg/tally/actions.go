package tally

import (
	"fmt"

	"github.com/Zaphoood/rewind/pkg/undo"
)

// Increment adds By to a counter
type Increment struct {
	sheet *Sheet
	name  string
	by    int64
}

func NewIncrement(s *Sheet, name string, by int64) *Increment {
	return &Increment{s, name, by}
}

func (a *Increment) Do() error {
	v, err := a.sheet.Get(a.name)
	if err != nil {
		return err
	}
	return a.sheet.Set(a.name, v+a.by)
}

func (a *Increment) Undo() error {
	v, err := a.sheet.Get(a.name)
	if err != nil {
		return err
	}
	return a.sheet.Set(a.name, v-a.by)
}

func (a *Increment) Description() string {
	if a.by < 0 {
		return fmt.Sprintf("Decrement '%s' by %d", a.name, -a.by)
	}
	return fmt.Sprintf("Increment '%s' by %d", a.name, a.by)
}

// Multiply multiplies a counter. The previous value is kept so that
// undoing a multiplication by zero restores it.
type Multiply struct {
	sheet  *Sheet
	name   string
	factor int64
	before int64
}

func NewMultiply(s *Sheet, name string, factor int64) *Multiply {
	return &Multiply{sheet: s, name: name, factor: factor}
}

func (a *Multiply) Do() error {
	v, err := a.sheet.Get(a.name)
	if err != nil {
		return err
	}
	a.before = v
	return a.sheet.Set(a.name, v*a.factor)
}

func (a *Multiply) Undo() error {
	return a.sheet.Set(a.name, a.before)
}

func (a *Multiply) Description() string {
	return fmt.Sprintf("Multiply '%s' by %d", a.name, a.factor)
}

// SetValue overwrites a counter
type SetValue struct {
	sheet  *Sheet
	name   string
	value  int64
	before int64
}

func NewSetValue(s *Sheet, name string, value int64) *SetValue {
	return &SetValue{sheet: s, name: name, value: value}
}

func (a *SetValue) Do() error {
	v, err := a.sheet.Get(a.name)
	if err != nil {
		return err
	}
	a.before = v
	return a.sheet.Set(a.name, a.value)
}

func (a *SetValue) Undo() error {
	return a.sheet.Set(a.name, a.before)
}

func (a *SetValue) Description() string {
	return fmt.Sprintf("Set '%s' to %d", a.name, a.value)
}

// AddCounter inserts a new counter at a position; a negative index appends
type AddCounter struct {
	sheet   *Sheet
	counter Counter
	index   int
}

func NewAddCounter(s *Sheet, c Counter, index int) *AddCounter {
	return &AddCounter{s, c, index}
}

func (a *AddCounter) Do() error {
	return a.sheet.Insert(a.index, a.counter)
}

func (a *AddCounter) Undo() error {
	_, _, err := a.sheet.Remove(a.counter.Name)
	return err
}

func (a *AddCounter) Description() string {
	return fmt.Sprintf("Add '%s'", a.counter.Name)
}

// RemoveCounter deletes a counter; Undo puts it back where it was
type RemoveCounter struct {
	sheet   *Sheet
	name    string
	removed Counter
	index   int
}

func NewRemoveCounter(s *Sheet, name string) *RemoveCounter {
	return &RemoveCounter{sheet: s, name: name, index: -1}
}

func (a *RemoveCounter) Do() error {
	c, i, err := a.sheet.Remove(a.name)
	if err != nil {
		return err
	}
	a.removed = c
	a.index = i
	return nil
}

func (a *RemoveCounter) Undo() error {
	return a.sheet.Insert(a.index, a.removed)
}

func (a *RemoveCounter) Description() string {
	return fmt.Sprintf("Remove '%s'", a.name)
}

type RenameCounter struct {
	sheet   *Sheet
	oldName string
	newName string
}

func NewRenameCounter(s *Sheet, oldName, newName string) *RenameCounter {
	return &RenameCounter{s, oldName, newName}
}

func (a *RenameCounter) Do() error {
	return a.sheet.Rename(a.oldName, a.newName)
}

func (a *RenameCounter) Undo() error {
	return a.sheet.Rename(a.newName, a.oldName)
}

func (a *RenameCounter) Description() string {
	return fmt.Sprintf("Rename '%s' to '%s'", a.oldName, a.newName)
}

// ResetAll returns a composite setting every non-zero counter to zero.
// The composite is empty if all counters are zero already.
func ResetAll(s *Sheet) *undo.Composite {
	c := undo.NewComposite()
	c.Name = "Zero all counters"
	for _, counter := range s.counters {
		if counter.Value != 0 {
			c.Add(NewSetValue(s, counter.Name, 0))
		}
	}
	return c
}
