package undo

import (
	"log/slog"
	"time"

	"github.com/Zaphoood/rewind/pkg/util"
)

// BusyFunc reports whether the host is in the middle of a transition
// during which undo and redo must be ignored.
type BusyFunc func() bool

type entry struct {
	action   Action
	recorded time.Time
}

// Entry describes one action on the timeline.
type Entry struct {
	Index       int
	Description string
	Recorded    time.Time
	// Applied is true for entries before the cursor
	Applied bool
}

// Manager keeps a linear timeline of recorded actions and a cursor into it.
// Entries [0, cursor) are applied, entries [cursor, len) can be redone.
type Manager struct {
	timeline []entry
	cursor   int

	busy   BusyFunc
	limit  int
	logger *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithBusy sets the predicate consulted by Backwards and Forwards.
func WithBusy(busy BusyFunc) Option {
	return func(m *Manager) {
		m.busy = busy
	}
}

// WithLimit caps the number of entries on the timeline. When the cap is
// exceeded the oldest entries are dropped. A limit <= 0 means no cap.
func WithLimit(limit int) Option {
	return func(m *Manager) {
		m.limit = util.Max(limit, 0)
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates an empty manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		timeline: []entry{},
		logger:   logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Record stores an action that has already been performed by the caller.
// Record does not call Do. Recording after undos discards the redoable
// entries first. Empty composites are ignored; the return value reports
// whether the action was recorded.
func (m *Manager) Record(action Action) bool {
	if action == nil {
		return false
	}
	if c, ok := action.(*Composite); ok && c.Size() == 0 {
		m.logger.Debug("ignoring empty composite")
		return false
	}

	if m.cursor < len(m.timeline) {
		m.logger.Debug("discarding redo entries", "count", len(m.timeline)-m.cursor)
		m.truncate(m.cursor)
	}
	m.timeline = append(m.timeline, entry{action: action, recorded: time.Now()})
	m.cursor++
	m.logger.Debug("recorded action", "action", Describe(action), "cursor", m.cursor)

	m.enforceLimit()
	return true
}

// Execute performs the action and records it if it succeeded.
func (m *Manager) Execute(action Action) error {
	if err := action.Do(); err != nil {
		return err
	}
	m.Record(action)
	return nil
}

// Backwards undoes the entry right before the cursor. It does nothing at the
// start of the timeline or while the host is busy. The returned bool reports
// whether an entry was undone. Errors from the action are returned as is; the
// cursor has already moved when that happens.
func (m *Manager) Backwards() (bool, error) {
	if busy := m.isBusy(); m.cursor == 0 || busy {
		m.logger.Debug("ignoring undo", "cursor", m.cursor, "busy", busy)
		return false, nil
	}
	m.cursor--
	action := m.timeline[m.cursor].action
	m.logger.Debug("undo", "action", Describe(action), "cursor", m.cursor)
	return true, action.Undo()
}

// Forwards redoes the entry at the cursor. It does nothing at the end of the
// timeline or while the host is busy. Errors from the action are returned as
// is; the cursor has already moved when that happens.
func (m *Manager) Forwards() (bool, error) {
	if busy := m.isBusy(); m.cursor == len(m.timeline) || busy {
		m.logger.Debug("ignoring redo", "cursor", m.cursor, "busy", busy)
		return false, nil
	}
	action := m.timeline[m.cursor].action
	m.cursor++
	m.logger.Debug("redo", "action", Describe(action), "cursor", m.cursor)
	return true, action.Do()
}

// Reset moves the cursor to the start of the timeline without undoing
// anything. Callers are responsible for rolling back the effects themselves.
func (m *Manager) Reset() {
	m.cursor = 0
}

// Clear drops the whole timeline.
func (m *Manager) Clear() {
	m.truncate(0)
	m.cursor = 0
}

func (m *Manager) Cursor() int {
	return m.cursor
}

func (m *Manager) Len() int {
	return len(m.timeline)
}

func (m *Manager) CanUndo() bool {
	return m.cursor > 0
}

func (m *Manager) CanRedo() bool {
	return m.cursor < len(m.timeline)
}

// PeekUndo returns the entry Backwards would undo.
func (m *Manager) PeekUndo() (Entry, bool) {
	if !m.CanUndo() {
		return Entry{}, false
	}
	return m.describe(m.cursor - 1), true
}

// PeekRedo returns the entry Forwards would redo.
func (m *Manager) PeekRedo() (Entry, bool) {
	if !m.CanRedo() {
		return Entry{}, false
	}
	return m.describe(m.cursor), true
}

// Entries lists the whole timeline, oldest first.
func (m *Manager) Entries() []Entry {
	result := make([]Entry, len(m.timeline))
	for i := range m.timeline {
		result[i] = m.describe(i)
	}
	return result
}

func (m *Manager) describe(i int) Entry {
	e := m.timeline[i]
	return Entry{
		Index:       i,
		Description: Describe(e.action),
		Recorded:    e.recorded,
		Applied:     i < m.cursor,
	}
}

func (m *Manager) isBusy() bool {
	return m.busy != nil && m.busy()
}

// truncate drops every entry from index n on
func (m *Manager) truncate(n int) {
	for i := n; i < len(m.timeline); i++ {
		m.timeline[i] = entry{}
	}
	m.timeline = m.timeline[:n]
}

func (m *Manager) enforceLimit() {
	if m.limit == 0 || len(m.timeline) <= m.limit {
		return
	}
	excess := len(m.timeline) - m.limit
	m.logger.Debug("dropping oldest entries", "count", excess)
	m.timeline = append(m.timeline[:0:0], m.timeline[excess:]...)
	m.cursor = util.Clamp(m.cursor-excess, 0, len(m.timeline))
}
