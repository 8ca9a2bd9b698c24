// Package table provides a sortable, paginated view over an ordered record set.
//
// A Table owns its SortState and PageState; it is not safe for concurrent
// use. Build one per viewer (or per request) over a shared, read-only slice.
package table

import (
	"fmt"
	"slices"
	"strings"

	"github.com/okian/mintboard/internal/domain/types"
)

// Direction is a sort direction.
type Direction string

// Sort directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection accepts "asc" or "desc" (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrInvalidSort)
	}
}

// SortState is the active sort column and direction.
type SortState struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

// Column describes how to read, sort and render one field of R.
type Column[R any] struct {
	Key      string
	Label    string
	Sortable bool
	// Value extracts the field used for sorting and default rendering.
	Value func(row R) any
	// Render optionally formats the cell; fmt.Sprint(value) otherwise.
	Render func(value any, row R) string
}

// Row is a record on the current page with its positional rank.
type Row[R any] struct {
	Rank   int      `json:"rank"`
	Record R        `json:"record"`
	Cells  []string `json:"cells"`
}

// View is the rendered state of one page.
type View[R any] struct {
	Columns    []types.ColumnDef     `json:"columns"`
	Rows       []Row[R]              `json:"rows"`
	Sort       *SortState            `json:"sort,omitempty"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
	Total      int                   `json:"total"`
	Start      int                   `json:"start"`
	End        int                   `json:"end"`
	HasPrev    bool                  `json:"has_prev"`
	HasNext    bool                  `json:"has_next"`
	Pages      []types.PageIndicator `json:"pages"`
}

// Table is a sortable, paginated view over records.
type Table[R any] struct {
	columns  []Column[R]
	byKey    map[string]int
	records  []R
	sorted   []R
	pageSize int
	sort     *SortState
	page     int
}

// New creates a table over records, which are read but never modified.
func New[R any](records []R, columns []Column[R], opts ...Option) (*Table[R], error) {
	s := settings{pageSize: DefaultPageSize}
	for _, opt := range opts {
		opt(&s)
	}
	if s.pageSize < 1 {
		return nil, fmt.Errorf("%d: %w", s.pageSize, ErrInvalidPageSize)
	}

	t := &Table[R]{
		columns:  columns,
		byKey:    make(map[string]int, len(columns)),
		records:  records,
		sorted:   records,
		pageSize: s.pageSize,
		page:     1,
	}
	for i, c := range columns {
		if c.Key == "" || c.Value == nil {
			return nil, fmt.Errorf("column %d: %w", i, ErrInvalidColumn)
		}
		if _, dup := t.byKey[c.Key]; dup {
			return nil, fmt.Errorf("duplicate key %q: %w", c.Key, ErrInvalidColumn)
		}
		t.byKey[c.Key] = i
	}
	if s.sort != nil {
		if err := t.SetSort(*s.sort); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// ToggleSort sorts by key ascending, or flips to descending when key is
// already sorted ascending. A different key replaces the current sort.
// The current page is kept.
func (t *Table[R]) ToggleSort(key string) error {
	dir := Asc
	if t.sort != nil && t.sort.Key == key && t.sort.Direction == Asc {
		dir = Desc
	}
	return t.SetSort(SortState{Key: key, Direction: dir})
}

// SetSort applies an explicit sort state to the whole data set.
func (t *Table[R]) SetSort(state SortState) error {
	i, ok := t.byKey[state.Key]
	if !ok {
		return fmt.Errorf("%q: %w", state.Key, ErrUnknownColumn)
	}
	col := t.columns[i]
	if !col.Sortable {
		return fmt.Errorf("%q: %w", state.Key, ErrNotSortable)
	}
	if state.Direction != Asc && state.Direction != Desc {
		return fmt.Errorf("%q: %w", state.Direction, ErrInvalidSort)
	}

	sign := 1
	if state.Direction == Desc {
		sign = -1
	}
	sorted := slices.Clone(t.records)
	slices.SortStableFunc(sorted, func(a, b R) int {
		return sign * compareValues(col.Value(a), col.Value(b))
	})

	st := state
	t.sort = &st
	t.sorted = sorted
	return nil
}

// ClearSort restores the original record order.
func (t *Table[R]) ClearSort() {
	t.sort = nil
	t.sorted = t.records
}

// Sort returns the active sort, if any.
func (t *Table[R]) Sort() (SortState, bool) {
	if t.sort == nil {
		return SortState{}, false
	}
	return *t.sort, true
}

// Len is the number of records.
func (t *Table[R]) Len() int { return len(t.records) }

// PageSize is the fixed page size.
func (t *Table[R]) PageSize() int { return t.pageSize }

// TotalPages is ceil(Len / PageSize); 0 for an empty table.
func (t *Table[R]) TotalPages() int {
	return (len(t.records) + t.pageSize - 1) / t.pageSize
}

// Page is the current 1-based page.
func (t *Table[R]) Page() int { return t.page }

// SetPage moves to page n, clamped to [1, TotalPages].
func (t *Table[R]) SetPage(n int) {
	last := max(t.TotalPages(), 1)
	t.page = min(max(n, 1), last)
}

// HasPrev reports whether Prev would move.
func (t *Table[R]) HasPrev() bool { return t.page > 1 }

// HasNext reports whether Next would move.
func (t *Table[R]) HasNext() bool { return t.page < t.TotalPages() }

// Prev moves one page back unless on the first page.
func (t *Table[R]) Prev() {
	if t.HasPrev() {
		t.page--
	}
}

// Next moves one page forward unless on the last page.
func (t *Table[R]) Next() {
	if t.HasNext() {
		t.page++
	}
}

// Rows returns every record in the current sort order with its rank.
func (t *Table[R]) Rows() []Row[R] {
	return t.rows(0, len(t.sorted))
}

// View renders the current page.
func (t *Table[R]) View() View[R] {
	start := (t.page - 1) * t.pageSize
	end := min(start+t.pageSize, len(t.sorted))
	start = min(start, end)

	v := View[R]{
		Columns:    t.ColumnDefs(),
		Rows:       t.rows(start, end),
		Page:       t.page,
		PageSize:   t.pageSize,
		TotalPages: t.TotalPages(),
		Total:      len(t.sorted),
		End:        end,
		HasPrev:    t.HasPrev(),
		HasNext:    t.HasNext(),
		Pages:      PageNumbers(t.page, t.TotalPages()),
	}
	if end > start {
		v.Start = start + 1
	}
	if t.sort != nil {
		st := *t.sort
		v.Sort = &st
	}
	return v
}

// ColumnDefs describes the columns to a renderer.
func (t *Table[R]) ColumnDefs() []types.ColumnDef {
	defs := make([]types.ColumnDef, len(t.columns))
	for i, c := range t.columns {
		defs[i] = types.ColumnDef{Key: c.Key, Label: c.Label, Sortable: c.Sortable}
	}
	return defs
}

func (t *Table[R]) rows(start, end int) []Row[R] {
	out := make([]Row[R], 0, end-start)
	for i := start; i < end; i++ {
		rec := t.sorted[i]
		cells := make([]string, len(t.columns))
		for j, c := range t.columns {
			v := c.Value(rec)
			if c.Render != nil {
				cells[j] = c.Render(v, rec)
			} else {
				cells[j] = fmt.Sprint(v)
			}
		}
		out = append(out, Row[R]{Rank: i + 1, Record: rec, Cells: cells})
	}
	return out
}
