package catalog

// Glyphs holds the presentation symbols embedded in option labels. The check
// glyph differs between deployments, so it is injected rather than hardcoded.
type Glyphs struct {
	Up    string
	Down  string
	Right string
	Left  string
	Check string
	Cross string
}

// DefaultGlyphs returns the stock emoji set.
func DefaultGlyphs() Glyphs {
	return Glyphs{
		Up:    "⬆️",
		Down:  "⬇️",
		Right: "➡️",
		Left:  "⬅️",
		Check: "✅",
		Cross: "❌",
	}
}

// Reserved control tokens, matched before any step-specific option.
const (
	Back       = "back"
	Cancel     = "cancel"
	Confirm    = "confirm"
	MainMenu   = "main-menu"
	EndSession = "end-session"
)

// Mode menu tokens.
const (
	MenuPractice = "practice"
	MenuOnCourse = "on course"
)

// TypePutt is the shot type that selects the putt branch.
const TypePutt = "putt"

// OptionSet is a closed, ordered set of choices for one wizard step.
// Membership checks are hash-based; Values preserves declaration order.
type OptionSet struct {
	name    string
	columns int
	values  []string
	members map[string]struct{}
}

func newSet(name string, columns int, values ...string) OptionSet {
	members := make(map[string]struct{}, len(values))
	for _, v := range values {
		members[v] = struct{}{}
	}
	return OptionSet{name: name, columns: columns, values: values, members: members}
}

// Name identifies the set in logs and errors.
func (s OptionSet) Name() string { return s.name }

// Columns is the keyboard layout hint for transports.
func (s OptionSet) Columns() int { return s.columns }

// Contains reports whether v is a member. Matching is literal.
func (s OptionSet) Contains(v string) bool {
	_, ok := s.members[v]
	return ok
}

// Values returns the options in declaration order. The slice is a copy.
func (s OptionSet) Values() []string {
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}

// Len returns the number of options.
func (s OptionSet) Len() int { return len(s.values) }

// Catalog enumerates every option set the wizard offers. It is immutable
// after construction.
type Catalog struct {
	glyphs Glyphs

	Modes         OptionSet
	Lies          OptionSet
	Clubs         OptionSet
	ShotTypes     OptionSet
	PuttDistances OptionSet
	ResultsSwing  OptionSet
	ResultsPutt   OptionSet
	ContactsSwing OptionSet
	ContactsPutt  OptionSet
	Plans         OptionSet
	Lags          OptionSet
}

// New builds the catalog with the given glyph set.
func New(g Glyphs) *Catalog {
	arrows := []string{g.Up, g.Down, g.Right, g.Left, g.Check}
	return &Catalog{
		glyphs: g,
		Modes:  newSet("mode", 2, MenuPractice, MenuOnCourse),
		Lies: newSet("lie", 3,
			"tee", "fairway", "rough", "deep rough", "fringe",
			"green", "sand", "mat", "bare lie", "divot"),
		Clubs: newSet("club", 5,
			"Dr", "3w", "5w", "7w", "3h", "3", "4", "5", "6", "7", "8", "9",
			"GW", "PW", "SW", "LW", "54", "56", "58", "60", "Putter"),
		ShotTypes: newSet("shot type", 3,
			"full swing", "3/4", "half swing",
			"pitch shot", "bunker shot", "chip shot",
			"bump and run", "flop shot", TypePutt),
		PuttDistances: newSet("putt distance", 2, "Long putt", "Short putt"),
		ResultsSwing:  newSet("result", 3, arrows...),
		ResultsPutt:   newSet("putt result", 3, arrows...),
		ContactsSwing: newSet("contact", 3,
			"thin", "fat", "toe", "heel", "shank",
			"high on face", "low on face", "good "+g.Check),
		ContactsPutt: newSet("putt contact", 3, "toe", "heel", "good "+g.Check),
		Plans: newSet("plan", 2,
			"shot as planned "+g.Check, "not as planned "+g.Cross),
		Lags: newSet("lag reading", 2, "good reading", "poor reading"),
	}
}

// Default builds the catalog with DefaultGlyphs.
func Default() *Catalog { return New(DefaultGlyphs()) }

// Glyphs returns the glyph set the catalog was built with.
func (c *Catalog) Glyphs() Glyphs { return c.glyphs }

// Results returns the result set for the given branch.
func (c *Catalog) Results(putt bool) OptionSet {
	if putt {
		return c.ResultsPutt
	}
	return c.ResultsSwing
}

// Contacts returns the contact set for the given branch.
func (c *Catalog) Contacts(putt bool) OptionSet {
	if putt {
		return c.ContactsPutt
	}
	return c.ContactsSwing
}

// ResultKeys returns the stats vocabulary for the result category: the swing
// and putt result sets merged, duplicates collapsed, first-seen order kept.
func (c *Catalog) ResultKeys() []string {
	return mergeKeys(c.ResultsSwing.Values(), c.ResultsPutt.Values())
}

// ContactKeys returns the merged contact vocabulary.
func (c *Catalog) ContactKeys() []string {
	return mergeKeys(c.ContactsSwing.Values(), c.ContactsPutt.Values())
}

// PlanKeys returns the plan-adherence vocabulary.
func (c *Catalog) PlanKeys() []string { return c.Plans.Values() }

// LagKeys returns the lag-quality vocabulary.
func (c *Catalog) LagKeys() []string { return c.Lags.Values() }

func mergeKeys(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, k := range list {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	return out
}
