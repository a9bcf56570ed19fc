package session

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caddie/internal/shot"
)

func stubIdentity(t *testing.T) {
	t.Helper()
	origID, origNow := newID, now
	n := 0
	newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	now = func() time.Time {
		return time.Date(2024, 5, 14, 9, 30, 0, 0, time.Local)
	}
	t.Cleanup(func() {
		newID, now = origID, origNow
	})
}

func TestStoreCreatesLazily(t *testing.T) {
	stubIdentity(t)
	st := NewStore()

	a := st.Get("u1")
	require.NotNil(t, a)
	assert.Equal(t, "u1", a.UserID)
	assert.Equal(t, "id-1", a.ID)
	assert.Equal(t, shot.Mode(""), a.Mode, "no mode until chosen")
	require.NotNil(t, a.Undo)

	assert.Same(t, a, st.Get("u1"), "repeat lookup returns the same session")
	assert.NotSame(t, a, st.Get("u2"))
	assert.Equal(t, 2, st.Len())
}

func TestSetModeResetsEverything(t *testing.T) {
	stubIdentity(t)
	sess := NewStore().Get("u1")

	sess.SetMode(shot.ModePractice)
	sess.Sticky.Lie.Set("mat")
	sess.Sticky.Club.Set("7")
	sess.StartShot()
	sess.Undo.Push(sess.Current)
	sess.ConfirmShot()
	require.Len(t, sess.Shots, 1)

	sess.SetMode(shot.ModeOnCourse)
	assert.Equal(t, "id-3", sess.ID, "mode change regenerates the identifier")
	assert.Empty(t, sess.Shots)
	assert.Nil(t, sess.Current)
	assert.Zero(t, sess.Undo.Len())
	assert.False(t, sess.Sticky.Lie.IsSet())
	assert.Equal(t, 1, sess.Hole)

	sess.SetMode(shot.ModePractice)
	assert.Equal(t, 0, sess.Hole, "practice carries no hole counter")
}

func TestStartShotPracticePrefillsSticky(t *testing.T) {
	stubIdentity(t)
	sess := NewStore().Get("u1")
	sess.SetMode(shot.ModePractice)
	sess.Sticky.Lie.Set("fairway")
	sess.Sticky.Club.Set("7")

	cur := sess.StartShot()
	require.Same(t, cur, sess.Current)
	assert.Equal(t, shot.ModePractice, cur.Mode)
	assert.Equal(t, sess.ID, cur.SessionID)
	assert.Equal(t, "fairway", cur.Lie.Value())
	assert.Equal(t, "7", cur.Club.Value())
	assert.Equal(t, 0, cur.Hole)
	assert.Equal(t, "2024-05-14T09:30:00", cur.Timestamp.Format(shot.TimeLayout))
}

func TestStartShotOnCourseStampsHole(t *testing.T) {
	stubIdentity(t)
	sess := NewStore().Get("u1")
	sess.SetMode(shot.ModeOnCourse)
	sess.AdvanceHole()
	sess.AdvanceHole()

	cur := sess.StartShot()
	assert.Equal(t, 3, cur.Hole)
	assert.False(t, cur.Lie.IsSet())
	assert.False(t, cur.Club.IsSet())
}

func TestStartShotDropsUndoHistory(t *testing.T) {
	stubIdentity(t)
	sess := NewStore().Get("u1")
	sess.SetMode(shot.ModeOnCourse)
	sess.StartShot()
	sess.Undo.Push(sess.Current)
	require.Equal(t, 1, sess.Undo.Len())

	sess.StartShot()
	assert.Zero(t, sess.Undo.Len())
}

func TestConfirmShotMovesCurrentToList(t *testing.T) {
	stubIdentity(t)
	sess := NewStore().Get("u1")
	sess.SetMode(shot.ModeOnCourse)
	cur := sess.StartShot()
	sess.Undo.Push(cur)

	sess.ConfirmShot()
	require.Len(t, sess.Shots, 1)
	assert.Same(t, cur, sess.Shots[0])
	assert.Nil(t, sess.Current)
	assert.Zero(t, sess.Undo.Len())

	sess.ConfirmShot()
	assert.Len(t, sess.Shots, 1, "confirm without an in-progress shot is a no-op")
}

func TestCancelShotDiscards(t *testing.T) {
	stubIdentity(t)
	sess := NewStore().Get("u1")
	sess.SetMode(shot.ModeOnCourse)
	sess.StartShot()
	sess.Undo.Push(sess.Current)

	sess.CancelShot()
	assert.Nil(t, sess.Current)
	assert.Zero(t, sess.Undo.Len())
	assert.Empty(t, sess.Shots)
}

func TestEndSessionKeepsMode(t *testing.T) {
	stubIdentity(t)
	sess := NewStore().Get("u1")

	sess.SetMode(shot.ModePractice)
	sess.Sticky.Lie.Set("mat")
	sess.Sticky.Club.Set("Dr")
	sess.StartShot()
	sess.ConfirmShot()
	prevID := sess.ID

	sess.EndSession()
	assert.Equal(t, shot.ModePractice, sess.Mode)
	assert.NotEqual(t, prevID, sess.ID)
	assert.Empty(t, sess.Shots)
	assert.Nil(t, sess.Current)
	assert.False(t, sess.Sticky.Lie.IsSet(), "practice sticky values are cleared")
	assert.False(t, sess.Sticky.Club.IsSet())

	sess.SetMode(shot.ModeOnCourse)
	sess.AdvanceHole()
	sess.EndSession()
	assert.Equal(t, shot.ModeOnCourse, sess.Mode)
	assert.Equal(t, 1, sess.Hole, "hole counter returns to 1")
}

func TestResetToMenuClearsMode(t *testing.T) {
	stubIdentity(t)
	sess := NewStore().Get("u1")
	sess.SetMode(shot.ModeOnCourse)
	sess.StartShot()
	sess.ConfirmShot()

	sess.ResetToMenu()
	assert.Equal(t, shot.Mode(""), sess.Mode)
	assert.Empty(t, sess.Shots)
	assert.Nil(t, sess.Current)
	assert.Equal(t, 0, sess.Hole)
}

func TestAdvanceHoleLeavesShotsAlone(t *testing.T) {
	stubIdentity(t)
	sess := NewStore().Get("u1")
	sess.SetMode(shot.ModeOnCourse)
	sess.StartShot()
	sess.ConfirmShot()
	inProgress := sess.StartShot()

	sess.AdvanceHole()
	assert.Equal(t, 2, sess.Hole)
	assert.Equal(t, 1, sess.Shots[0].Hole, "confirmed shots keep their hole")
	assert.Equal(t, 1, inProgress.Hole, "in-progress shots keep their hole")
}
