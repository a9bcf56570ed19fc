package shot

import (
	"strconv"
	"time"
)

// TimeLayout is the timestamp format used in exports, local time to the second.
const TimeLayout = "2006-01-02T15:04:05"

// Mode distinguishes practice sessions from on-course rounds.
type Mode string

const (
	ModePractice Mode = "practice"
	ModeOnCourse Mode = "oncourse"
)

// Label returns the display form of the mode.
func (m Mode) Label() string {
	if m == ModeOnCourse {
		return "on course"
	}
	return string(m)
}

// Field is an optional string value. The zero Field is unset, which is
// distinct from a set empty string.
type Field struct {
	value string
	set   bool
}

// Set assigns v and marks the field present.
func (f *Field) Set(v string) {
	f.value = v
	f.set = true
}

// Clear resets the field to unset.
func (f *Field) Clear() {
	f.value = ""
	f.set = false
}

// IsSet reports whether the field holds a value.
func (f Field) IsSet() bool { return f.set }

// Value returns the held value, empty when unset.
func (f Field) Value() string { return f.value }

// SwingDetail holds the branch fields of a non-putt shot.
type SwingDetail struct {
	Result  Field
	Contact Field
	Plan    Field
}

// PuttDetail holds the branch fields of a putt.
type PuttDetail struct {
	Distance   Field
	Result     Field
	Contact    Field
	PlanBefore Field
	Lag        Field
	PlanAfter  Field
}

// Shot is one recorded stroke. Exactly one of Swing or Putt is non-nil once
// the type has been chosen; both are nil before that.
type Shot struct {
	Timestamp time.Time
	Mode      Mode
	SessionID string
	Hole      int // 1-based on course, 0 in practice
	Lie       Field
	Club      Field
	Type      Field
	Swing     *SwingDetail
	Putt      *PuttDetail
}

// IsPutt reports whether the shot is on the putt branch.
func (s *Shot) IsPutt() bool { return s.Putt != nil }

// Clone returns a deep copy. Mutating the copy never touches the original.
func (s *Shot) Clone() *Shot {
	if s == nil {
		return nil
	}
	out := *s
	if s.Swing != nil {
		sw := *s.Swing
		out.Swing = &sw
	}
	if s.Putt != nil {
		pt := *s.Putt
		out.Putt = &pt
	}
	return &out
}

var rawHeader = []string{
	"timestamp", "mode", "session_id", "hole",
	"lie", "club", "shot_type",
	"result", "contact", "plan",
	"putt_distance", "putt_result", "putt_contact",
	"putt_plan_1", "lag_reading", "putt_plan_2",
}

// RawHeader returns the export column names in order.
func RawHeader() []string {
	out := make([]string, len(rawHeader))
	copy(out, rawHeader)
	return out
}

// Row renders the shot as one export row matching RawHeader. Unset fields and
// the inactive branch render as empty cells.
func (s *Shot) Row() []string {
	hole := ""
	if s.Hole > 0 {
		hole = strconv.Itoa(s.Hole)
	}
	var sw SwingDetail
	if s.Swing != nil {
		sw = *s.Swing
	}
	var pt PuttDetail
	if s.Putt != nil {
		pt = *s.Putt
	}
	return []string{
		s.Timestamp.Format(TimeLayout),
		string(s.Mode),
		s.SessionID,
		hole,
		s.Lie.Value(),
		s.Club.Value(),
		s.Type.Value(),
		sw.Result.Value(),
		sw.Contact.Value(),
		sw.Plan.Value(),
		pt.Distance.Value(),
		pt.Result.Value(),
		pt.Contact.Value(),
		pt.PlanBefore.Value(),
		pt.Lag.Value(),
		pt.PlanAfter.Value(),
	}
}
