// Package undo provides a linear undo/redo history of reversible actions.
//
// An Action knows how to apply itself (Do) and how to revert itself (Undo).
// A Composite groups several actions into one history entry. The Manager
// keeps the recorded actions on a timeline together with a cursor: actions
// before the cursor are applied, actions at or after it can be redone.
//
//	m := undo.NewManager(undo.WithBusy(animating.IsSet))
//
//	// Perform the effect, then record it
//	action.Do()
//	m.Record(action)
//
//	// Or let the manager do both
//	m.Execute(action)
//
//	m.Backwards() // undo
//	m.Forwards()  // redo
//
// Recording a new action after some undos discards the redoable part of the
// timeline. Undo and redo at the ends of the timeline, or while the busy
// predicate reports true, do nothing.
//
// Warnings from Unimplemented go to a logger shared by the whole process,
// set with SetLogger. A Manager logs to its own logger, set with WithLogger.
//
// A Manager is not safe for concurrent use.
package undo
