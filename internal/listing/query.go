// Package listing holds the client-side list state: the query descriptor sent
// to the list endpoint and the reducer that reacts to paging, filter, sort,
// and mutation events.
package listing

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/tmorrell/cruxlog/internal/domain/climb"
)

// DefaultSort is used whenever the sort key is unset or invalid.
const DefaultSort = string(climb.SortDateDesc)

// PageSizes are the selectable page sizes. The default is restored on every
// fresh load; it is deliberately never persisted.
var PageSizes = []int{10, 20, 50}

var validSorts = map[string]bool{
	string(climb.SortDateAsc):      true,
	string(climb.SortDateDesc):     true,
	string(climb.SortGradeAsc):     true,
	string(climb.SortGradeDesc):    true,
	string(climb.SortLocationAsc):  true,
	string(climb.SortLocationDesc): true,
	string(climb.SortRouteAsc):     true,
	string(climb.SortRouteDesc):    true,
}

// Query is the UI-side list state that maps onto a list request.
type Query struct {
	Page         int
	PageSize     int
	Search       string
	Environments []string
	Types        []string
	Progress     []string
	Sort         string
}

// NewQuery returns the default query: page 1, default page size, date
// descending.
func NewQuery() Query {
	return Query{
		Page:     1,
		PageSize: climb.DefaultPageSize,
		Sort:     DefaultSort,
	}
}

// Values renders the query as parameters for the list endpoint. Empty filter
// sets are omitted entirely, multi-valued filters are comma-joined, search
// text is trimmed, and an unset or invalid sort falls back to the default.
func (q Query) Values() url.Values {
	v := url.Values{}

	page := q.Page
	if page < 1 {
		page = 1
	}
	v.Set("page", strconv.Itoa(page))

	size := q.PageSize
	if !ValidPageSize(size) {
		size = climb.DefaultPageSize
	}
	v.Set("pageSize", strconv.Itoa(size))

	if search := strings.TrimSpace(q.Search); search != "" {
		v.Set("q", search)
	}
	if len(q.Environments) > 0 {
		v.Set("env", strings.Join(q.Environments, ","))
	}
	if len(q.Types) > 0 {
		v.Set("type", strings.Join(q.Types, ","))
	}
	if len(q.Progress) > 0 {
		v.Set("progress", strings.Join(q.Progress, ","))
	}

	sort := q.Sort
	if !validSorts[sort] {
		sort = DefaultSort
	}
	v.Set("sort", sort)

	return v
}

// QueryFromValues parses URL parameters back into a query, applying the same
// defaults as Values. Unknown or invalid values fall back rather than error.
func QueryFromValues(v url.Values) Query {
	q := NewQuery()

	if page, err := strconv.Atoi(v.Get("page")); err == nil && page >= 1 {
		q.Page = page
	}
	if size, err := strconv.Atoi(v.Get("pageSize")); err == nil && ValidPageSize(size) {
		q.PageSize = size
	}
	q.Search = strings.TrimSpace(v.Get("q"))
	q.Environments = splitAll(v["env"])
	q.Types = splitAll(v["type"])
	q.Progress = splitAll(v["progress"])
	if sort := v.Get("sort"); validSorts[sort] {
		q.Sort = sort
	}
	return q
}

// ValidPageSize reports whether size is one of the selectable page sizes.
func ValidPageSize(size int) bool {
	for _, s := range PageSizes {
		if s == size {
			return true
		}
	}
	return false
}

// Options converts the query into repository list options.
func (q Query) Options() climb.ListOptions {
	opts := climb.ListOptions{
		Page:     q.Page,
		PageSize: q.PageSize,
		Search:   strings.TrimSpace(q.Search),
		Sort:     climb.SortKey(q.Sort),
	}
	if !validSorts[q.Sort] {
		opts.Sort = climb.SortKey(DefaultSort)
	}
	for _, e := range q.Environments {
		opts.Environments = append(opts.Environments, climb.Environment(e))
	}
	for _, t := range q.Types {
		opts.Types = append(opts.Types, climb.ClimbType(t))
	}
	for _, p := range q.Progress {
		opts.Progress = append(opts.Progress, climb.Progress(p))
	}
	return opts
}

// splitAll accepts filters both comma-joined and as repeated parameters.
func splitAll(vals []string) []string {
	var out []string
	for _, v := range vals {
		out = append(out, splitCSV(v)...)
	}
	return out
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
