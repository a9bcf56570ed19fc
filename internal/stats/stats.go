package stats

import (
	"bytes"
	"encoding/csv"
	"math"
	"strconv"

	"caddie/internal/catalog"
	"caddie/internal/shot"
)

// NoClubLabel groups shots recorded without a club.
const NoClubLabel = "—"

// Table is a header row plus data rows, ready for CSV encoding.
type Table struct {
	Header []string
	Rows   [][]string
}

// CSV renders the table as UTF-8 CSV bytes.
func (t Table) CSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Header); err != nil {
		return nil, err
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ByClub aggregates confirmed shots into per-club percentage columns over the
// merged category vocabularies. It is a pure function of its inputs: clubs
// appear in first-encounter order and repeated calls yield identical output.
func ByClub(cat *catalog.Catalog, shots []*shot.Shot) Table {
	resultKeys := cat.ResultKeys()
	contactKeys := cat.ContactKeys()
	planKeys := cat.PlanKeys()
	lagKeys := cat.LagKeys()

	header := []string{"Club", "n"}
	for _, k := range resultKeys {
		header = append(header, "Result % "+k)
	}
	for _, k := range contactKeys {
		header = append(header, "Contact % "+k)
	}
	for _, k := range planKeys {
		header = append(header, "Plan % "+k)
	}
	for _, k := range lagKeys {
		header = append(header, "Lag % "+k)
	}

	var order []string
	groups := make(map[string][]*shot.Shot)
	for _, s := range shots {
		club := NoClubLabel
		if s.Club.IsSet() {
			club = s.Club.Value()
		}
		if _, ok := groups[club]; !ok {
			order = append(order, club)
		}
		groups[club] = append(groups[club], s)
	}

	t := Table{Header: header}
	for _, club := range order {
		group := groups[club]
		n := len(group)

		res := make(map[string]int)
		con := make(map[string]int)
		plan := make(map[string]int)
		lag := make(map[string]int)
		for _, s := range group {
			switch {
			case s.Putt != nil:
				tally(res, s.Putt.Result)
				tally(con, s.Putt.Contact)
				tally(plan, s.Putt.PlanBefore)
				tally(plan, s.Putt.PlanAfter)
				tally(lag, s.Putt.Lag)
			case s.Swing != nil:
				tally(res, s.Swing.Result)
				tally(con, s.Swing.Contact)
				tally(plan, s.Swing.Plan)
			}
		}

		row := []string{club, strconv.Itoa(n)}
		row = appendPcts(row, res, resultKeys, n)
		row = appendPcts(row, con, contactKeys, n)
		row = appendPcts(row, plan, planKeys, n)
		row = appendPcts(row, lag, lagKeys, n)
		t.Rows = append(t.Rows, row)
	}
	return t
}

// RawLog renders every confirmed shot as one row in the fixed column order.
func RawLog(shots []*shot.Shot) Table {
	t := Table{Header: shot.RawHeader()}
	for _, s := range shots {
		t.Rows = append(t.Rows, s.Row())
	}
	return t
}

func tally(counts map[string]int, f shot.Field) {
	if f.IsSet() {
		counts[f.Value()]++
	}
}

func appendPcts(row []string, counts map[string]int, keys []string, n int) []string {
	for _, k := range keys {
		row = append(row, formatPct(pct(counts[k], n)))
	}
	return row
}

// pct is round(100*count/n, 1 decimal), 0.0 when n is 0.
func pct(count, n int) float64 {
	if n == 0 {
		return 0
	}
	return math.Round(float64(count)*1000/float64(n)) / 10
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
