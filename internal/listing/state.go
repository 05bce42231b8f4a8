package listing

import (
	"github.com/tmorrell/cruxlog/internal/domain/climb"
)

// State is the full list-view state. It is replaced wholesale on each event;
// nothing merges.
type State struct {
	Query
	Items []climb.Log
	Total int
}

// NewState returns the initial state for a fresh load.
func NewState() State {
	return State{Query: NewQuery()}
}

// Event is a list-state input: a user interaction or a completed request.
type Event interface{ isEvent() }

// SetPage navigates to a page.
type SetPage struct{ Page int }

// SetPageSize changes the page size and resets to page 1.
type SetPageSize struct{ Size int }

// SetSearch changes the search text and resets to page 1.
type SetSearch struct{ Text string }

// SetFilters replaces the active filter sets and resets to page 1.
type SetFilters struct {
	Environments []string
	Types        []string
	Progress     []string
}

// SetSort changes the sort key and resets to page 1.
type SetSort struct{ Sort string }

// Loaded applies a completed list response. The store is authoritative: the
// state takes the response's page rather than keeping its own guess.
type Loaded struct{ Result climb.ListResult }

// Deleted records a completed delete so the state can step back a page when
// the deleted entry was the last item on the final page.
type Deleted struct{}

func (SetPage) isEvent()     {}
func (SetPageSize) isEvent() {}
func (SetSearch) isEvent()   {}
func (SetFilters) isEvent()  {}
func (SetSort) isEvent()     {}
func (Loaded) isEvent()      {}
func (Deleted) isEvent()     {}

// Apply is the pure list-state reducer.
func Apply(s State, e Event) State {
	switch e := e.(type) {
	case SetPage:
		if e.Page >= 1 {
			s.Page = e.Page
		}
	case SetPageSize:
		if ValidPageSize(e.Size) {
			s.PageSize = e.Size
		}
		s.Page = 1
	case SetSearch:
		s.Search = e.Text
		s.Page = 1
	case SetFilters:
		s.Environments = e.Environments
		s.Types = e.Types
		s.Progress = e.Progress
		s.Page = 1
		if isGradeSort(s.Sort) && !GradeSortAllowed(s.Types) {
			s.Sort = DefaultSort
		}
	case SetSort:
		if validSorts[e.Sort] && (!isGradeSort(e.Sort) || GradeSortAllowed(s.Types)) {
			s.Sort = e.Sort
		}
		s.Page = 1
	case Loaded:
		s.Items = e.Result.Items
		s.Total = e.Result.Total
		s.Page = e.Result.Page
		s.PageSize = e.Result.PageSize
	case Deleted:
		s.Page = stepBackPage(s.Page, s.Total, s.PageSize)
	}
	return s
}

// GradeSortAllowed reports whether grade sorting is meaningful for the active
// type filter: the selection must be non-empty and either exclusively boulder
// or exclusively roped types, since the two grade scales are not comparable.
func GradeSortAllowed(types []string) bool {
	if len(types) == 0 {
		return false
	}
	boulder := 0
	for _, t := range types {
		if t == string(climb.TypeBoulder) {
			boulder++
		}
	}
	return boulder == 0 || boulder == len(types)
}

// AvailableSorts returns the sort keys currently offered, dropping the grade
// sorts whenever GradeSortAllowed says they are off.
func AvailableSorts(types []string) []string {
	sorts := []string{
		string(climb.SortDateDesc),
		string(climb.SortDateAsc),
		string(climb.SortLocationAsc),
		string(climb.SortLocationDesc),
		string(climb.SortRouteAsc),
		string(climb.SortRouteDesc),
	}
	if GradeSortAllowed(types) {
		sorts = append(sorts, string(climb.SortGradeAsc), string(climb.SortGradeDesc))
	}
	return sorts
}

func isGradeSort(sort string) bool {
	return sort == string(climb.SortGradeAsc) || sort == string(climb.SortGradeDesc)
}

// stepBackPage recomputes the current page after one record was removed:
// min(page, ceil((total-1)/pageSize)), never below 1. total is the count
// before the delete.
func stepBackPage(page, total, pageSize int) int {
	if pageSize < 1 {
		return 1
	}
	last := (total - 1 + pageSize - 1) / pageSize
	if page > last {
		page = last
	}
	if page < 1 {
		page = 1
	}
	return page
}
