package undo

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	value int
	log   []string
}

type add struct {
	c  *counter
	by int
}

func (a add) Do() error {
	a.c.value += a.by
	a.c.log = append(a.c.log, "do add")
	return nil
}

func (a add) Undo() error {
	a.c.value -= a.by
	a.c.log = append(a.c.log, "undo add")
	return nil
}

type mul struct {
	c      *counter
	factor int
	before int
}

func (m *mul) Do() error {
	m.before = m.c.value
	m.c.value *= m.factor
	m.c.log = append(m.c.log, "do mul")
	return nil
}

func (m *mul) Undo() error {
	m.c.value = m.before
	m.c.log = append(m.c.log, "undo mul")
	return nil
}

type failing struct {
	err error
}

func (f failing) Do() error   { return f.err }
func (f failing) Undo() error { return f.err }

type onlyDo struct {
	c *counter
}

func (o onlyDo) Do() error {
	o.c.value++
	return nil
}

func (o onlyDo) Undo() error {
	return Unimplemented(o, "Undo")
}

func captureLogs(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { SetLogger(nil) })
	return &buf
}

func record(m *Manager, a Action) {
	a.Do()
	m.Record(a)
}

func TestRecordKeepsCursorAtEnd(t *testing.T) {
	assert := assert.New(t)
	c := &counter{}
	m := NewManager()

	for i := 1; i <= 5; i++ {
		record(m, add{c, 1})
		assert.Equal(i, m.Cursor())
		assert.Equal(i, m.Len())
	}
	assert.Equal(5, c.value)
}

func TestRecordDoesNotApply(t *testing.T) {
	assert := assert.New(t)
	c := &counter{}
	m := NewManager()

	assert.True(m.Record(add{c, 1}))
	assert.Equal(0, c.value)
	assert.Equal(1, m.Cursor())
	assert.Empty(c.log)
}

func TestUndoRedoRestoresState(t *testing.T) {
	assert := assert.New(t)
	c := &counter{value: 3}
	m := NewManager()

	record(m, add{c, 1})
	record(m, &mul{c: c, factor: 2})
	record(m, add{c, 5})
	assert.Equal(13, c.value)

	for i := 0; i < 3; i++ {
		_, err := m.Backwards()
		assert.Nil(err)
	}
	assert.Equal(3, c.value)
	assert.Equal(0, m.Cursor())

	for i := 0; i < 3; i++ {
		_, err := m.Forwards()
		assert.Nil(err)
	}
	assert.Equal(13, c.value)
	assert.Equal(3, m.Cursor())

	m.Backwards()
	m.Backwards()
	m.Forwards()
	assert.Equal(8, c.value)
	assert.Equal(2, m.Cursor())
}

func TestEmptyCompositeIsNotRecorded(t *testing.T) {
	assert := assert.New(t)
	c := &counter{}
	m := NewManager()
	record(m, add{c, 1})

	assert.False(m.Record(NewComposite()))
	assert.Equal(1, m.Len())
	assert.Equal(1, m.Cursor())

	// The redo branch survives an ignored record
	m.Backwards()
	assert.False(m.Record(NewComposite()))
	assert.Equal(1, m.Len())
	assert.Equal(0, m.Cursor())
}

func TestCompositeIsSingleEntry(t *testing.T) {
	assert := assert.New(t)
	c := &counter{value: 1}
	m := NewManager()

	comp := NewComposite(add{c, 2})
	comp.Add(&mul{c: c, factor: 10})
	assert.Equal(2, comp.Size())

	record(m, comp)
	assert.Equal(30, c.value)
	assert.Equal(1, m.Len())

	c.log = nil
	acted, err := m.Backwards()
	assert.True(acted)
	assert.Nil(err)
	assert.Equal(1, c.value)
	assert.Equal([]string{"undo mul", "undo add"}, c.log)
	assert.Equal(0, m.Cursor())

	c.log = nil
	m.Forwards()
	assert.Equal(30, c.value)
	assert.Equal([]string{"do add", "do mul"}, c.log)
}

func TestBranchTruncation(t *testing.T) {
	assert := assert.New(t)
	c := &counter{}
	m := NewManager()

	a := Funcs{Name: "A", DoFunc: func() error { return nil }, UndoFunc: func() error { return nil }}
	b := a
	b.Name = "B"
	cc := a
	cc.Name = "C"
	d := a
	d.Name = "D"

	m.Record(a)
	m.Record(b)
	m.Record(cc)
	assert.Equal(3, m.Cursor())

	m.Backwards()
	m.Backwards()
	assert.Equal(1, m.Cursor())

	m.Record(d)
	assert.Equal(2, m.Cursor())
	require.Equal(t, 2, m.Len())

	entries := m.Entries()
	assert.Equal("A", entries[0].Description)
	assert.Equal("D", entries[1].Description)
	assert.False(m.CanRedo())

	acted, _ := m.Forwards()
	assert.False(acted)
	assert.Equal(0, c.value)
}

func TestReset(t *testing.T) {
	assert := assert.New(t)
	c := &counter{}
	m := NewManager()

	record(m, add{c, 1})
	record(m, add{c, 10})

	c.log = nil
	m.Reset()
	assert.Equal(0, m.Cursor())
	assert.Equal(2, m.Len())
	assert.Equal(11, c.value)
	assert.Empty(c.log)

	acted, err := m.Forwards()
	assert.True(acted)
	assert.Nil(err)
	assert.Equal(12, c.value)
	assert.Equal(1, m.Cursor())
}

func TestClear(t *testing.T) {
	assert := assert.New(t)
	c := &counter{}
	m := NewManager()

	record(m, add{c, 1})
	record(m, add{c, 1})
	m.Backwards()

	m.Clear()
	assert.Equal(0, m.Cursor())
	assert.Equal(0, m.Len())

	c.log = nil
	acted, _ := m.Backwards()
	assert.False(acted)
	acted, _ = m.Forwards()
	assert.False(acted)
	assert.Empty(c.log)
	assert.Equal(1, c.value)
}

func TestBoundariesAreNoOps(t *testing.T) {
	assert := assert.New(t)
	c := &counter{}
	m := NewManager()

	acted, err := m.Backwards()
	assert.False(acted)
	assert.Nil(err)
	acted, err = m.Forwards()
	assert.False(acted)
	assert.Nil(err)

	record(m, add{c, 1})
	c.log = nil
	acted, err = m.Forwards()
	assert.False(acted)
	assert.Nil(err)
	assert.Empty(c.log)
	assert.Equal(1, m.Cursor())
	assert.Equal(1, c.value)
}

func TestBusyBlocksNavigation(t *testing.T) {
	assert := assert.New(t)
	c := &counter{}
	var busy Flag
	m := NewManager(WithBusy(busy.IsSet))

	record(m, add{c, 1})
	record(m, add{c, 1})

	busy.Set()
	acted, err := m.Backwards()
	assert.False(acted)
	assert.Nil(err)
	assert.Equal(2, m.Cursor())
	assert.Equal(2, c.value)

	// Recording is not guarded
	record(m, add{c, 1})
	assert.Equal(3, m.Cursor())

	busy.Clear()
	acted, _ = m.Backwards()
	assert.True(acted)
	assert.Equal(2, c.value)

	busy.Set()
	acted, _ = m.Forwards()
	assert.False(acted)
	assert.Equal(2, m.Cursor())
}

func TestErrorsPropagate(t *testing.T) {
	assert := assert.New(t)
	boom := errors.New("boom")
	m := NewManager()

	m.Record(failing{boom})
	acted, err := m.Backwards()
	assert.True(acted)
	assert.ErrorIs(err, boom)
	assert.Equal(0, m.Cursor())

	acted, err = m.Forwards()
	assert.True(acted)
	assert.Equal(boom, err)
	assert.Equal(1, m.Cursor())
}

func TestCompositeStopsAtFailingChild(t *testing.T) {
	assert := assert.New(t)
	boom := errors.New("boom")
	c := &counter{}

	comp := NewComposite(add{c, 1}, failing{boom}, add{c, 10})
	assert.Equal(boom, comp.Do())
	assert.Equal(1, c.value)

	c.value = 11
	assert.Equal(boom, comp.Undo())
	assert.Equal(1, c.value)
}

func TestExecute(t *testing.T) {
	assert := assert.New(t)
	boom := errors.New("boom")
	c := &counter{}
	m := NewManager()

	assert.Nil(m.Execute(add{c, 4}))
	assert.Equal(4, c.value)
	assert.Equal(1, m.Len())

	assert.Equal(boom, m.Execute(failing{boom}))
	assert.Equal(1, m.Len())
	assert.Equal(1, m.Cursor())
}

func TestLimit(t *testing.T) {
	assert := assert.New(t)
	c := &counter{}
	m := NewManager(WithLimit(3))

	for i := 0; i < 5; i++ {
		record(m, add{c, 1})
	}
	assert.Equal(3, m.Len())
	assert.Equal(3, m.Cursor())

	for {
		if acted, _ := m.Backwards(); !acted {
			break
		}
	}
	assert.Equal(2, c.value)
	assert.Equal(0, m.Cursor())
}

func TestPeek(t *testing.T) {
	assert := assert.New(t)
	m := NewManager()

	_, ok := m.PeekUndo()
	assert.False(ok)

	m.Record(Funcs{Name: "first"})
	m.Record(Funcs{Name: "second"})
	m.Backwards()

	undoEntry, ok := m.PeekUndo()
	if assert.True(ok) {
		assert.Equal("first", undoEntry.Description)
		assert.True(undoEntry.Applied)
	}
	redoEntry, ok := m.PeekRedo()
	if assert.True(ok) {
		assert.Equal("second", redoEntry.Description)
		assert.Equal(1, redoEntry.Index)
		assert.False(redoEntry.Applied)
	}
}

func TestUnimplementedWarns(t *testing.T) {
	assert := assert.New(t)
	logs := captureLogs(t)
	c := &counter{}
	m := NewManager()

	assert.Nil(m.Execute(onlyDo{c}))
	acted, err := m.Backwards()
	assert.True(acted)
	assert.Nil(err)
	assert.Equal(1, c.value)
	assert.Contains(logs.String(), "undo.onlyDo")
	assert.Contains(logs.String(), "method=Undo")

	logs.Reset()
	assert.Nil(Funcs{Name: "half"}.Do())
	assert.Contains(logs.String(), "action=half")
	assert.Contains(logs.String(), "method=Do")
}

func TestDescribe(t *testing.T) {
	assert := assert.New(t)
	c := &counter{}

	assert.Equal("undo.add", Describe(add{c, 1}))
	assert.Equal("x", Describe(Funcs{Name: "x"}))
	assert.Equal("x, undo.add", Describe(NewComposite(Funcs{Name: "x"}, add{c, 1})))

	named := NewComposite(add{c, 1})
	named.Name = "group"
	assert.Equal("group", Describe(named))
}

func TestScenario(t *testing.T) {
	assert := assert.New(t)
	c := &counter{}
	m := NewManager()

	record(m, add{c, 1})
	assert.Equal(1, c.value)
	assert.Equal(1, m.Cursor())
	assert.Equal(1, m.Len())

	record(m, &mul{c: c, factor: 3})
	assert.Equal(3, c.value)
	assert.Equal(2, m.Cursor())
	assert.Equal(2, m.Len())

	m.Backwards()
	m.Backwards()
	assert.Equal(0, m.Cursor())
	assert.Equal(0, c.value)

	m.Forwards()
	assert.Equal(1, m.Cursor())
	assert.Equal(1, c.value)
}

func TestUnimplementedUsesProcessLogger(t *testing.T) {
	assert := assert.New(t)
	global := captureLogs(t)
	var own bytes.Buffer
	c := &counter{}
	m := NewManager(WithLogger(slog.New(slog.NewTextHandler(&own, nil))))

	assert.Nil(m.Execute(onlyDo{c}))
	m.Backwards()
	assert.Contains(global.String(), "undo.onlyDo")
	assert.NotContains(own.String(), "undo.onlyDo")
}
