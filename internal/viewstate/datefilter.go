package viewstate

import (
	"sort"
	"strings"
)

// MenuState is the explicit state of the two-stage year -> month dropdown.
// The control stays open after a year is picked; it only closes once a month
// is chosen (or the selection is reset).
type MenuState int

const (
	Closed MenuState = iota
	YearMenu
	MonthMenu
)

// DateFilter filters canonical yyyy-mm-dd values by "all", a year, or a
// year+month, driven by the menu state machine above.
type DateFilter struct {
	Field string

	state MenuState
	year  string
	month string
}

func (f *DateFilter) State() MenuState { return f.state }
func (f *DateFilter) Year() string     { return f.year }
func (f *DateFilter) Month() string    { return f.month }

// Open moves a closed control to the year menu.
func (f *DateFilter) Open() {
	if f.state == Closed {
		f.state = YearMenu
	}
}

// SelectYear picks a year and advances to the month menu. The control does
// not close here; that is the transition guard replacing the original
// stay-open timing hack.
func (f *DateFilter) SelectYear(year string) {
	if f.state != YearMenu {
		return
	}
	f.year = year
	f.month = ""
	f.state = MonthMenu
}

// SelectMonth picks a month ("01".."12") within the selected year and closes
// the control.
func (f *DateFilter) SelectMonth(month string) {
	if f.state != MonthMenu {
		return
	}
	f.month = month
	f.state = Closed
}

// Back returns from the month menu to the year menu, dropping the year.
func (f *DateFilter) Back() {
	if f.state == MonthMenu {
		f.year = ""
		f.month = ""
		f.state = YearMenu
	}
}

// Reset clears the whole selection and closes the control.
func (f *DateFilter) Reset() {
	f.year = ""
	f.month = ""
	f.state = Closed
}

// Set applies an already-decided selection, as list endpoints receive it in
// query params. Empty year means "all".
func (f *DateFilter) Set(year, month string) {
	f.year = year
	f.month = month
	f.state = Closed
}

// Matches reports whether a yyyy-mm-dd value passes the current selection.
func (f *DateFilter) Matches(date string) bool {
	if f.year == "" {
		return true
	}
	if !strings.HasPrefix(date, f.year) {
		return false
	}
	if f.month == "" {
		return true
	}
	return len(date) >= 7 && date[5:7] == f.month
}

// Years lists the distinct years present in a record set, descending.
func Years(rows []Row, field string) []string {
	seen := map[string]struct{}{}
	for _, row := range rows {
		v := asString(row[field])
		if len(v) >= 4 {
			seen[v[:4]] = struct{}{}
		}
	}
	years := make([]string, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))
	return years
}

// MonthsFor lists the distinct months ("01".."12") present for a year.
func MonthsFor(rows []Row, field, year string) []string {
	seen := map[string]struct{}{}
	for _, row := range rows {
		v := asString(row[field])
		if len(v) >= 7 && strings.HasPrefix(v, year) {
			seen[v[5:7]] = struct{}{}
		}
	}
	months := make([]string, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Strings(months)
	return months
}
