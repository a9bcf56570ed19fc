package sequencer

import (
	"caddie/internal/catalog"
	"caddie/internal/session"
	"caddie/internal/shot"
)

// Step identifies the wizard position a session is parked at. It is always
// derived from session state, never stored, so prompting and input handling
// can not drift apart.
type Step int

const (
	StepMode Step = iota
	StepSetupLie
	StepSetupClub
	StepIdle
	StepType
	StepDistance
	StepLie
	StepClub
	StepResult
	StepContact
	StepPlan
	StepLag
	StepPlanAfter
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepMode:
		return "mode"
	case StepSetupLie:
		return "setup-lie"
	case StepSetupClub:
		return "setup-club"
	case StepIdle:
		return "idle"
	case StepType:
		return "type"
	case StepDistance:
		return "distance"
	case StepLie:
		return "lie"
	case StepClub:
		return "club"
	case StepResult:
		return "result"
	case StepContact:
		return "contact"
	case StepPlan:
		return "plan"
	case StepLag:
		return "lag"
	case StepPlanAfter:
		return "plan-after"
	case StepReview:
		return "review"
	}
	return "unknown"
}

// stepFor derives the current step from session state: first unfilled field
// in the branch order, setup states before that, mode selection before
// anything.
func stepFor(sess *session.Session) Step {
	if sess.Mode == "" {
		return StepMode
	}
	if sess.Mode == shot.ModePractice {
		if !sess.Sticky.Lie.IsSet() {
			return StepSetupLie
		}
		if !sess.Sticky.Club.IsSet() {
			return StepSetupClub
		}
	}
	cur := sess.Current
	if cur == nil {
		return StepIdle
	}
	if !cur.Type.IsSet() {
		return StepType
	}
	if cur.IsPutt() {
		p := cur.Putt
		switch {
		case !p.Distance.IsSet():
			return StepDistance
		case !cur.Lie.IsSet():
			return StepLie
		case !cur.Club.IsSet():
			return StepClub
		case !p.Result.IsSet():
			return StepResult
		case !p.Contact.IsSet():
			return StepContact
		case !p.PlanBefore.IsSet():
			return StepPlan
		case !p.Lag.IsSet():
			return StepLag
		case !p.PlanAfter.IsSet():
			return StepPlanAfter
		}
		return StepReview
	}
	sw := cur.Swing
	switch {
	case !cur.Lie.IsSet():
		return StepLie
	case !cur.Club.IsSet():
		return StepClub
	case !sw.Result.IsSet():
		return StepResult
	case !sw.Contact.IsSet():
		return StepContact
	case !sw.Plan.IsSet():
		return StepPlan
	}
	return StepReview
}

// controlsFor lists the control tokens offered alongside a step's choices.
// Every control is still recognized everywhere; this is the advertised set.
func controlsFor(step Step) []string {
	switch step {
	case StepMode:
		return nil
	case StepSetupLie, StepSetupClub:
		return []string{catalog.Back, catalog.MainMenu, catalog.EndSession}
	case StepIdle:
		return []string{catalog.MainMenu, catalog.EndSession}
	case StepReview:
		return []string{catalog.Confirm, catalog.Cancel, catalog.Back, catalog.MainMenu, catalog.EndSession}
	default:
		return []string{catalog.Back, catalog.Cancel, catalog.MainMenu, catalog.EndSession}
	}
}
