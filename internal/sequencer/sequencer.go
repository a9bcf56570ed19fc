package sequencer

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"caddie/internal/catalog"
	"caddie/internal/session"
	"caddie/internal/shot"
	"caddie/internal/stats"
	"caddie/internal/telemetry"
)

// Attachment is a generated file handed to the transport for delivery.
type Attachment struct {
	Name string
	Data []byte
}

// Reply is the single outcome of handling one input: prompt text plus the
// offered options for the step the session is now parked at. Choices is the
// current step's catalog slice and Controls the applicable control tokens;
// transports render their union. Columns is a keyboard layout hint. An empty
// offered set means the transport should drop any custom keyboard.
type Reply struct {
	Text        string
	Choices     []string
	Columns     int
	Controls    []string
	Attachments []Attachment
}

// Sequencer is the single entry point for user inputs: it derives the
// session's current step, validates the token, mutates the in-progress shot
// or rejects with a re-prompt, and handles the global control tokens. It owns
// no session state itself.
type Sequencer struct {
	catalog *catalog.Catalog
	store   *session.Store
	logger  *slog.Logger
	metrics *telemetry.Metrics
	botName string
}

// New builds a sequencer. A nil logger falls back to slog.Default; nil
// metrics disable instrumentation.
func New(cat *catalog.Catalog, store *session.Store, logger *slog.Logger, m *telemetry.Metrics) *Sequencer {
	if cat == nil {
		cat = catalog.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sequencer{catalog: cat, store: store, logger: logger, metrics: m, botName: "Caddie"}
}

// SetBotName overrides the name used in the greeting.
func (q *Sequencer) SetBotName(name string) {
	if name != "" {
		q.botName = name
	}
}

// Catalog returns the option catalog the sequencer validates against.
func (q *Sequencer) Catalog() *catalog.Catalog { return q.catalog }

// Start greets the user. With no mode chosen it opens mode selection;
// otherwise it re-prompts the current step, so an accidental /start never
// destroys progress.
func (q *Sequencer) Start(userID string) Reply {
	sess := q.store.Get(userID)
	q.metrics.SetSessions(q.store.Len())
	if sess.Mode == "" {
		return q.reply(sess, StepMode, fmt.Sprintf("Hi! This is %s.\nChoose mode:", q.botName))
	}
	q.ensureShot(sess)
	step := stepFor(sess)
	return q.reply(sess, step, fmt.Sprintf("Hi! This is %s.\n%s", q.botName, q.promptText(sess, step)))
}

// Input handles one raw text token for the user's session. Control tokens
// are recognized at every step before step-specific matching.
func (q *Sequencer) Input(userID, text string) Reply {
	sess := q.store.Get(userID)
	q.metrics.SetSessions(q.store.Len())
	q.ensureShot(sess)
	step := stepFor(sess)

	switch text {
	case catalog.MainMenu:
		q.metrics.RecordInput(telemetry.OutcomeControl)
		return q.mainMenu(sess)
	case catalog.EndSession:
		q.metrics.RecordInput(telemetry.OutcomeControl)
		return q.endSession(sess)
	case catalog.Back:
		q.metrics.RecordInput(telemetry.OutcomeControl)
		return q.back(sess, step)
	case catalog.Cancel:
		q.metrics.RecordInput(telemetry.OutcomeControl)
		return q.cancel(sess, step)
	case catalog.Confirm:
		return q.confirm(sess, step)
	}

	switch step {
	case StepMode:
		return q.chooseMode(sess, text)
	case StepSetupLie:
		return q.setupLie(sess, text)
	case StepSetupClub:
		return q.setupClub(sess, text)
	case StepIdle, StepReview:
		q.metrics.RecordInput(telemetry.OutcomeRejected)
		return q.promptFor(sess, step)
	default:
		return q.fieldInput(sess, step, text)
	}
}

// StartShot begins a new on-course shot. An in-progress shot is never
// silently discarded.
func (q *Sequencer) StartShot(userID string) Reply {
	sess := q.store.Get(userID)
	if sess.Mode != shot.ModeOnCourse {
		return q.replyAtCurrent(sess, "You are not in on-course mode. Use /start.")
	}
	if sess.Current != nil {
		step := stepFor(sess)
		return q.reply(sess, step, "A shot is already in progress.\n"+q.promptText(sess, step))
	}
	sess.StartShot()
	q.logger.Debug("Shot started", "user", sess.UserID, "hole", sess.Hole)
	return q.reply(sess, StepType, fmt.Sprintf("Hole %d: choose Type", sess.Hole))
}

// AdvanceHole bumps the on-course hole counter. Shots keep the hole they
// were started on.
func (q *Sequencer) AdvanceHole(userID string) Reply {
	sess := q.store.Get(userID)
	if sess.Mode != shot.ModeOnCourse {
		return q.replyAtCurrent(sess, "You are not in on-course mode.")
	}
	n := sess.AdvanceHole()
	q.logger.Debug("Hole advanced", "user", sess.UserID, "hole", n)
	return q.replyAtCurrent(sess, fmt.Sprintf("Moved to hole %d. Add a shot: /shot", n))
}

// Stats builds the two CSV exports for the current session.
func (q *Sequencer) Stats(userID string) Reply {
	sess := q.store.Get(userID)
	if len(sess.Shots) == 0 {
		return q.replyAtCurrent(sess, "No shots yet in this session.")
	}
	byClub, err := stats.ByClub(q.catalog, sess.Shots).CSV()
	if err != nil {
		q.logger.Error("Stats export failed", "user", sess.UserID, "error", err)
		return q.replyAtCurrent(sess, "Could not build the stats export.")
	}
	raw, err := stats.RawLog(sess.Shots).CSV()
	if err != nil {
		q.logger.Error("Raw export failed", "user", sess.UserID, "error", err)
		return q.replyAtCurrent(sess, "Could not build the stats export.")
	}
	q.metrics.RecordExport()
	q.logger.Info("Stats exported", "user", sess.UserID, "shots", len(sess.Shots))
	r := q.replyAtCurrent(sess, "Statistics are percentages per club within the current session.\nSending two CSVs for Google Sheets:")
	r.Attachments = []Attachment{
		{Name: "stats_by_club.csv", Data: byClub},
		{Name: "raw_shots.csv", Data: raw},
	}
	return r
}

// EndSession resets the session while keeping the chosen mode.
func (q *Sequencer) EndSession(userID string) Reply {
	return q.endSession(q.store.Get(userID))
}

const helpText = `Commands:
/start - greet and choose mode
/shot - start an on-course shot
/next_hole - advance the on-course hole
/stats - current session stats as CSV
/end_session - reset the session, keep the mode
/help - this message

Send back to undo the last step, cancel to drop the shot,
main-menu to return to mode selection, end-session to reset.`

// Help lists the commands and control tokens.
func (q *Sequencer) Help(userID string) Reply {
	return q.replyAtCurrent(q.store.Get(userID), helpText)
}

// ensureShot lazily recreates the practice in-progress shot once sticky
// setup is complete; it mirrors the quick-next behavior after confirm.
func (q *Sequencer) ensureShot(sess *session.Session) {
	if sess.Mode == shot.ModePractice &&
		sess.Sticky.Lie.IsSet() && sess.Sticky.Club.IsSet() &&
		sess.Current == nil {
		sess.StartShot()
	}
}

func (q *Sequencer) mainMenu(sess *session.Session) Reply {
	sess.ResetToMenu()
	q.logger.Debug("Session reset to menu", "user", sess.UserID)
	return q.promptFor(sess, StepMode)
}

func (q *Sequencer) endSession(sess *session.Session) Reply {
	if sess.Mode == "" {
		return q.reply(sess, StepMode, "No active session. Choose mode:")
	}
	mode := sess.Mode
	sess.EndSession()
	q.logger.Info("Session ended", "user", sess.UserID, "mode", mode.Label(), "session", sess.ID)
	if mode == shot.ModePractice {
		return q.reply(sess, StepSetupLie, "Session reset. Practice setup: pick Lie.")
	}
	return q.reply(sess, StepIdle, "Session reset. On-course: Hole = 1. Use /shot.")
}

func (q *Sequencer) back(sess *session.Session, step Step) Reply {
	switch step {
	case StepSetupLie:
		sess.ResetToMenu()
		return q.promptFor(sess, StepMode)
	case StepSetupClub:
		sess.Sticky.Lie.Clear()
		return q.promptFor(sess, StepSetupLie)
	}
	if sess.Current == nil {
		q.metrics.RecordUndo(telemetry.OutcomeEmpty)
		return q.reply(sess, step, "Nothing to go back to.")
	}
	snap, ok := sess.Undo.Pop()
	if !ok {
		q.metrics.RecordUndo(telemetry.OutcomeEmpty)
		return q.reply(sess, step, "Nothing to go back to.")
	}
	sess.Current = snap
	q.metrics.RecordUndo(telemetry.OutcomeRestored)
	q.logger.Debug("Undo applied", "user", sess.UserID, "depth", sess.Undo.Len())
	return q.promptFor(sess, stepFor(sess))
}

func (q *Sequencer) cancel(sess *session.Session, step Step) Reply {
	switch step {
	case StepMode, StepSetupLie, StepSetupClub, StepIdle:
		// nothing in progress to cancel
		return q.promptFor(sess, step)
	}
	sess.CancelShot()
	q.metrics.RecordCancel(string(sess.Mode))
	q.logger.Debug("Shot canceled", "user", sess.UserID)
	if sess.Mode == shot.ModePractice {
		sess.StartShot()
		return q.reply(sess, StepType, "Shot canceled.\nNew shot: choose Type")
	}
	return q.reply(sess, StepIdle, "Shot canceled. Start new with /shot")
}

func (q *Sequencer) confirm(sess *session.Session, step Step) Reply {
	if step != StepReview {
		q.metrics.RecordInput(telemetry.OutcomeRejected)
		return q.promptFor(sess, step)
	}
	q.metrics.RecordInput(telemetry.OutcomeControl)
	cur := sess.Current
	sess.ConfirmShot()
	q.metrics.RecordConfirm(string(cur.Mode), cur.Type.Value())
	q.logger.Info("Shot confirmed", "user", sess.UserID, "session", sess.ID,
		"type", cur.Type.Value(), "club", cur.Club.Value(), "hole", cur.Hole)
	check := q.catalog.Glyphs().Check
	if sess.Mode == shot.ModePractice {
		sess.StartShot()
		return q.reply(sess, StepType, fmt.Sprintf("Saved %s\nNew shot: choose Type", check))
	}
	return q.reply(sess, StepIdle, fmt.Sprintf("Saved %s\nAdd next: /shot", check))
}

func (q *Sequencer) chooseMode(sess *session.Session, text string) Reply {
	switch text {
	case catalog.MenuPractice:
		sess.SetMode(shot.ModePractice)
		q.metrics.RecordInput(telemetry.OutcomeAccepted)
		q.logger.Info("Mode selected", "user", sess.UserID, "mode", "practice", "session", sess.ID)
		return q.reply(sess, StepSetupLie, "Practice mode selected.\nPick Lie:")
	case catalog.MenuOnCourse:
		sess.SetMode(shot.ModeOnCourse)
		q.metrics.RecordInput(telemetry.OutcomeAccepted)
		q.logger.Info("Mode selected", "user", sess.UserID, "mode", "on course", "session", sess.ID)
		return q.reply(sess, StepIdle,
			"On-course mode selected.\nHole = 1.\nStart a shot with /shot\nUse /next_hole to advance hole.")
	}
	q.metrics.RecordInput(telemetry.OutcomeRejected)
	return q.promptFor(sess, StepMode)
}

func (q *Sequencer) setupLie(sess *session.Session, text string) Reply {
	if !q.catalog.Lies.Contains(text) {
		q.metrics.RecordInput(telemetry.OutcomeRejected)
		return q.promptFor(sess, StepSetupLie)
	}
	sess.Sticky.Lie.Set(text)
	q.metrics.RecordInput(telemetry.OutcomeAccepted)
	return q.reply(sess, StepSetupClub, fmt.Sprintf("Lie: %s\nNow pick Club:", text))
}

func (q *Sequencer) setupClub(sess *session.Session, text string) Reply {
	if !q.catalog.Clubs.Contains(text) {
		q.metrics.RecordInput(telemetry.OutcomeRejected)
		return q.promptFor(sess, StepSetupClub)
	}
	sess.Sticky.Club.Set(text)
	sess.StartShot()
	q.metrics.RecordInput(telemetry.OutcomeAccepted)
	q.logger.Debug("Sticky set", "user", sess.UserID, "lie", sess.Sticky.Lie.Value(), "club", text)
	return q.reply(sess, StepType, fmt.Sprintf("Sticky set %s\nLie: %s | Club: %s\nStart a shot: choose Type",
		q.catalog.Glyphs().Check, sess.Sticky.Lie.Value(), text))
}

func (q *Sequencer) fieldInput(sess *session.Session, step Step, text string) Reply {
	set, _ := q.choiceSet(sess, step)
	if !set.Contains(text) {
		q.metrics.RecordInput(telemetry.OutcomeRejected)
		q.logger.Debug("Input rejected", "user", sess.UserID, "step", step.String(), "token", text)
		return q.promptFor(sess, step)
	}
	sess.Undo.Push(sess.Current)
	setField(sess.Current, step, text)
	q.metrics.RecordInput(telemetry.OutcomeAccepted)
	q.logger.Debug("Field set", "user", sess.UserID, "step", step.String(), "value", text)
	return q.promptFor(sess, stepFor(sess))
}

// setField writes an accepted token into the in-progress shot. Choosing the
// type allocates exactly one branch, which fixes the field group for good.
func setField(cur *shot.Shot, step Step, text string) {
	switch step {
	case StepType:
		cur.Type.Set(text)
		if text == catalog.TypePutt {
			cur.Putt = &shot.PuttDetail{}
		} else {
			cur.Swing = &shot.SwingDetail{}
		}
	case StepDistance:
		cur.Putt.Distance.Set(text)
	case StepLie:
		cur.Lie.Set(text)
	case StepClub:
		cur.Club.Set(text)
	case StepResult:
		if cur.IsPutt() {
			cur.Putt.Result.Set(text)
		} else {
			cur.Swing.Result.Set(text)
		}
	case StepContact:
		if cur.IsPutt() {
			cur.Putt.Contact.Set(text)
		} else {
			cur.Swing.Contact.Set(text)
		}
	case StepPlan:
		if cur.IsPutt() {
			cur.Putt.PlanBefore.Set(text)
		} else {
			cur.Swing.Plan.Set(text)
		}
	case StepLag:
		cur.Putt.Lag.Set(text)
	case StepPlanAfter:
		cur.Putt.PlanAfter.Set(text)
	}
}

func (q *Sequencer) choiceSet(sess *session.Session, step Step) (catalog.OptionSet, bool) {
	putt := sess.Current != nil && sess.Current.IsPutt()
	switch step {
	case StepMode:
		return q.catalog.Modes, true
	case StepSetupLie, StepLie:
		return q.catalog.Lies, true
	case StepSetupClub, StepClub:
		return q.catalog.Clubs, true
	case StepType:
		return q.catalog.ShotTypes, true
	case StepDistance:
		return q.catalog.PuttDistances, true
	case StepResult:
		return q.catalog.Results(putt), true
	case StepContact:
		return q.catalog.Contacts(putt), true
	case StepPlan, StepPlanAfter:
		return q.catalog.Plans, true
	case StepLag:
		return q.catalog.Lags, true
	}
	return catalog.OptionSet{}, false
}

func (q *Sequencer) reply(sess *session.Session, step Step, text string) Reply {
	r := Reply{Text: text, Controls: controlsFor(step)}
	if set, ok := q.choiceSet(sess, step); ok {
		r.Choices = set.Values()
		r.Columns = set.Columns()
	}
	return r
}

func (q *Sequencer) replyAtCurrent(sess *session.Session, text string) Reply {
	q.ensureShot(sess)
	return q.reply(sess, stepFor(sess), text)
}

func (q *Sequencer) promptFor(sess *session.Session, step Step) Reply {
	return q.reply(sess, step, q.promptText(sess, step))
}

func (q *Sequencer) promptText(sess *session.Session, step Step) string {
	switch step {
	case StepMode:
		return "Choose mode:"
	case StepSetupLie:
		return "Pick Lie:"
	case StepSetupClub:
		return "Pick Club:"
	case StepIdle:
		return "Start a shot with /shot"
	case StepType:
		return "Choose Type:"
	case StepDistance:
		return "Distance?"
	case StepLie:
		return "Lie?"
	case StepClub:
		return "Club?"
	case StepResult:
		return "Result?"
	case StepContact:
		return "Contact?"
	case StepPlan:
		return "Plan?"
	case StepLag:
		return "Lag putt reading?"
	case StepPlanAfter:
		return "Plan (after lag)?"
	case StepReview:
		return "Review:\n" + summarize(sess.Current)
	}
	return ""
}

// summarize renders the review text: one line per populated field.
func summarize(s *shot.Shot) string {
	lines := []string{"Mode: " + s.Mode.Label()}
	if s.Hole > 0 {
		lines = append(lines, "Hole: "+strconv.Itoa(s.Hole))
	}
	if s.Lie.IsSet() {
		lines = append(lines, "Lie: "+s.Lie.Value())
	}
	if s.Club.IsSet() {
		lines = append(lines, "Club: "+s.Club.Value())
	}
	if s.Type.IsSet() {
		lines = append(lines, "Type: "+s.Type.Value())
	}

	var fields []struct {
		label string
		f     shot.Field
	}
	switch {
	case s.Putt != nil:
		p := s.Putt
		fields = []struct {
			label string
			f     shot.Field
		}{
			{"Distance", p.Distance},
			{"Result", p.Result},
			{"Contact", p.Contact},
			{"Plan #1", p.PlanBefore},
			{"Lag", p.Lag},
			{"Plan #2", p.PlanAfter},
		}
	case s.Swing != nil:
		sw := s.Swing
		fields = []struct {
			label string
			f     shot.Field
		}{
			{"Result", sw.Result},
			{"Contact", sw.Contact},
			{"Plan", sw.Plan},
		}
	}
	for _, e := range fields {
		if e.f.IsSet() {
			lines = append(lines, e.label+": "+e.f.Value())
		}
	}
	return strings.Join(lines, "\n")
}
