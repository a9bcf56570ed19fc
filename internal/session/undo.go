package session

import "caddie/internal/shot"

// UndoDepth bounds the undo log. A full putt takes nine accepted inputs, so
// the default never truncates one shot's history.
const UndoDepth = 16

// UndoLog is a bounded LIFO stack of in-progress shot snapshots. It never
// outlives one in-progress shot: cancel, confirm, and every session reset
// discard it wholesale.
type UndoLog struct {
	limit int
	stack []*shot.Shot
}

// NewUndoLog returns a log bounded to limit snapshots. The oldest snapshot
// is dropped once the bound is exceeded.
func NewUndoLog(limit int) *UndoLog {
	if limit <= 0 {
		limit = UndoDepth
	}
	return &UndoLog{limit: limit}
}

// Push records a deep copy of s taken before a mutation.
func (u *UndoLog) Push(s *shot.Shot) {
	if s == nil {
		return
	}
	if len(u.stack) >= u.limit {
		copy(u.stack, u.stack[1:])
		u.stack = u.stack[:len(u.stack)-1]
	}
	u.stack = append(u.stack, s.Clone())
}

// Pop removes and returns the most recent snapshot, reporting false when the
// log is empty.
func (u *UndoLog) Pop() (*shot.Shot, bool) {
	if len(u.stack) == 0 {
		return nil, false
	}
	last := u.stack[len(u.stack)-1]
	u.stack = u.stack[:len(u.stack)-1]
	return last, true
}

// Len returns the number of stored snapshots.
func (u *UndoLog) Len() int { return len(u.stack) }

// Clear drops every snapshot.
func (u *UndoLog) Clear() { u.stack = nil }
