package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"caddie/internal/shot"
)

// swapped out in tests
var (
	newID = uuid.NewString
	now   = time.Now
)

// Sticky holds the practice-mode defaults reused for every new shot until
// changed or cleared.
type Sticky struct {
	Lie  shot.Field
	Club shot.Field
}

// Session is one user's ongoing activity: chosen mode, sticky defaults,
// confirmed shots, and at most one in-progress shot with its undo log.
// A session is mutated by one input at a time, so it carries no lock.
type Session struct {
	UserID  string
	ID      string
	Mode    shot.Mode
	Sticky  Sticky
	Hole    int
	Shots   []*shot.Shot
	Current *shot.Shot
	Undo    *UndoLog
}

func newSession(userID string) *Session {
	return &Session{UserID: userID, ID: newID(), Undo: NewUndoLog(UndoDepth)}
}

// SetMode selects the mode, assigning a fresh session identifier and clearing
// all accumulated state. Practice starts at sticky setup, on-course at hole 1.
func (s *Session) SetMode(m shot.Mode) {
	s.Mode = m
	s.ID = newID()
	s.Shots = nil
	s.Current = nil
	s.Undo.Clear()
	s.Sticky = Sticky{}
	s.Hole = 0
	if m == shot.ModeOnCourse {
		s.Hole = 1
	}
}

// EndSession regenerates the session identifier and drops recorded and
// in-progress shots. The mode is kept; sticky values are cleared and the
// on-course hole counter returns to 1.
func (s *Session) EndSession() {
	s.ID = newID()
	s.Shots = nil
	s.Current = nil
	s.Undo.Clear()
	s.Sticky = Sticky{}
	if s.Mode == shot.ModeOnCourse {
		s.Hole = 1
	}
}

// ResetToMenu clears the mode and everything else, returning the user to
// mode selection.
func (s *Session) ResetToMenu() {
	s.Mode = ""
	s.ID = newID()
	s.Shots = nil
	s.Current = nil
	s.Undo.Clear()
	s.Sticky = Sticky{}
	s.Hole = 0
}

// StartShot begins a new in-progress shot stamped with the session's mode,
// identifier, and hole, pre-filled from sticky values in practice mode. The
// hole is fixed at creation and never rewritten. Any previous undo history
// is dropped.
func (s *Session) StartShot() *shot.Shot {
	cur := &shot.Shot{
		Timestamp: now(),
		Mode:      s.Mode,
		SessionID: s.ID,
	}
	switch s.Mode {
	case shot.ModeOnCourse:
		cur.Hole = s.Hole
	case shot.ModePractice:
		if s.Sticky.Lie.IsSet() {
			cur.Lie.Set(s.Sticky.Lie.Value())
		}
		if s.Sticky.Club.IsSet() {
			cur.Club.Set(s.Sticky.Club.Value())
		}
	}
	s.Current = cur
	s.Undo.Clear()
	return cur
}

// ConfirmShot appends the in-progress shot to the confirmed list and clears
// the in-progress state.
func (s *Session) ConfirmShot() {
	if s.Current == nil {
		return
	}
	s.Shots = append(s.Shots, s.Current)
	s.Current = nil
	s.Undo.Clear()
}

// CancelShot discards the in-progress shot and its undo history.
func (s *Session) CancelShot() {
	s.Current = nil
	s.Undo.Clear()
}

// AdvanceHole bumps the on-course hole counter. Shots already recorded or in
// progress keep the hole they were created on.
func (s *Session) AdvanceHole() int {
	s.Hole++
	return s.Hole
}

// Store maps stable user identifiers to their sessions, creating them on
// first contact. Sessions live until the process exits. Only the map needs
// locking; per-session state is mutated by one input at a time.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Get returns the session for userID, creating it on first contact.
func (st *Store) Get(userID string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.sessions[userID]
	if !ok {
		sess = newSession(userID)
		st.sessions[userID] = sess
	}
	return sess
}

// Len returns the number of known sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
