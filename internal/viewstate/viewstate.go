package viewstate

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Row is one table record as the list endpoints serve it: column name to
// display value. The controller never mutates rows, it only derives views.
type Row map[string]any

// Page is the derived, render-ready slice of a record set.
type Page struct {
	Rows       []Row `json:"rows"`
	Total      int   `json:"total"`
	TotalPages int   `json:"total_pages"`
	Page       int   `json:"page"`
}

// Controller holds the filter/sort/pagination state for one dashboard table.
// Every state change re-derives filter -> sort -> slice over the full
// in-memory record set; nothing is computed incrementally.
type Controller struct {
	PageSize    int
	StatusField string

	Filters  map[string]string
	Status   string
	SortKey  string
	SortDesc bool
	Page     int

	Date DateFilter
}

func NewController(pageSize int, statusField string) *Controller {
	return &Controller{PageSize: pageSize, StatusField: statusField, Filters: map[string]string{}, Page: 1}
}

// SetFilter sets a per-column case-insensitive substring filter and resets
// to the first page.
func (c *Controller) SetFilter(column, needle string) {
	if c.Filters == nil {
		c.Filters = map[string]string{}
	}
	if strings.TrimSpace(needle) == "" {
		delete(c.Filters, column)
	} else {
		c.Filters[column] = needle
	}
	c.Page = 1
}

// SetStatus sets the enumerated status filter and resets to the first page.
func (c *Controller) SetStatus(status string) {
	c.Status = status
	c.Page = 1
}

// ToggleSort sorts by the given column ascending, or flips the direction if
// the column is already the active sort key.
func (c *Controller) ToggleSort(column string) {
	if c.SortKey == column {
		c.SortDesc = !c.SortDesc
		return
	}
	c.SortKey = column
	c.SortDesc = false
}

// Derive applies filter -> sort -> slice to the full record set.
func (c *Controller) Derive(rows []Row) Page {
	filtered := make([]Row, 0, len(rows))
	for _, row := range rows {
		if c.matches(row) {
			filtered = append(filtered, row)
		}
	}

	if c.SortKey != "" {
		key, desc := c.SortKey, c.SortDesc
		sort.SliceStable(filtered, func(i, j int) bool {
			cmp := compareValues(filtered[i][key], filtered[j][key])
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
	}

	size := c.PageSize
	if size <= 0 {
		size = 10
	}
	total := len(filtered)
	totalPages := (total + size - 1) / size
	page := c.Page
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return Page{Rows: filtered[start:end], Total: total, TotalPages: totalPages, Page: page}
}

func (c *Controller) matches(row Row) bool {
	for column, needle := range c.Filters {
		hay := strings.ToLower(asString(row[column]))
		if !strings.Contains(hay, strings.ToLower(needle)) {
			return false
		}
	}
	if c.Status != "" && c.StatusField != "" {
		if !strings.EqualFold(asString(row[c.StatusField]), c.Status) {
			return false
		}
	}
	if c.Date.Field != "" {
		if !c.Date.Matches(asString(row[c.Date.Field])) {
			return false
		}
	}
	return true
}

var collator = collate.New(language.English, collate.Loose)

// compareValues orders two cell values: strings via locale-aware collation,
// numbers by subtraction. Non-homogeneous types compare equal, so they carry
// no ordering guarantee.
func compareValues(a, b any) int {
	if as, aok := a.(string); aok {
		if bs, bok := b.(string); bok {
			return collator.CompareString(as, bs)
		}
		return 0
	}
	af, aok := asNumber(a)
	bf, bok := asNumber(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
		return 0
	}
	return 0
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case decimal.Decimal:
		f, _ := n.Float64()
		return f, true
	}
	return 0, false
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case decimal.Decimal:
		return s.String()
	}
	return ""
}

// VisiblePages returns the page buttons to render: all pages when there are
// three or fewer, otherwise a window of three centered on the current page
// and clamped at both ends.
func VisiblePages(totalPages, currentPage int) []int {
	if totalPages <= 0 {
		return nil
	}
	if totalPages <= 3 {
		pages := make([]int, totalPages)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	}
	start := currentPage - 1
	if start < 1 {
		start = 1
	}
	if start > totalPages-2 {
		start = totalPages - 2
	}
	return []int{start, start + 1, start + 2}
}
