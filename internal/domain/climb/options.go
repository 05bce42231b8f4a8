package climb

// SortKey selects the ordering of a list request.
type SortKey string

const (
	SortDateDesc     SortKey = "date_desc"
	SortDateAsc      SortKey = "date_asc"
	SortGradeAsc     SortKey = "grade_asc"
	SortGradeDesc    SortKey = "grade_desc"
	SortLocationAsc  SortKey = "location_asc"
	SortLocationDesc SortKey = "location_desc"
	SortRouteAsc     SortKey = "route_asc"
	SortRouteDesc    SortKey = "route_desc"
)

// Paging limits.
const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// ListOptions provides filtering, sorting, and paging for listing logs.
type ListOptions struct {
	Page         int
	PageSize     int
	Search       string
	Environments []Environment
	Types        []ClimbType
	Progress     []Progress
	Sort         SortKey
}
