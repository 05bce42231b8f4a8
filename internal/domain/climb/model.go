package climb

import "time"

// DateLayout is the calendar date format used throughout the API.
const DateLayout = "2006-01-02"

// Environment is where a climb took place.
type Environment string

const (
	EnvGym     Environment = "gym"
	EnvOutdoor Environment = "outdoor"
)

// ClimbType is the style of a climb.
type ClimbType string

const (
	TypeBoulder ClimbType = "boulder"
	TypeTopRope ClimbType = "top-rope"
	TypeSport   ClimbType = "sport"
	TypeTrad    ClimbType = "trad"
)

// GradeSystem identifies which grading scale a grade belongs to.
type GradeSystem string

const (
	SystemV   GradeSystem = "V"
	SystemYDS GradeSystem = "YDS"
)

// Progress records whether the route attempt was completed.
type Progress string

const (
	ProgressComplete   Progress = "complete"
	ProgressIncomplete Progress = "incomplete"
)

// Log represents a single climbing-log entry
type Log struct {
	ID          string      `json:"id"`
	Date        string      `json:"date"`
	Environment Environment `json:"environment"`
	Location    string      `json:"location"`
	RouteName   string      `json:"routeName"`
	ClimbType   ClimbType   `json:"climbType"`
	GradeSystem GradeSystem `json:"gradeSystem"`
	Grade       string      `json:"grade"`
	Progress    Progress    `json:"progress"`
	HasImage    bool        `json:"hasImage"`
	CreatedAt   time.Time   `json:"-"`
}

// Image is a photo attached to a log entry.
type Image struct {
	LogID       string
	ContentType string
	Size        int64
	Data        []byte
}

// Stats is the aggregate view over the whole collection.
type Stats struct {
	Total          int            `json:"total"`
	CompletionRate int            `json:"completionRate"`
	ByType         map[string]int `json:"byType"`
}

// ListResult is one page of logs plus the paging state the store settled on.
// Page may differ from the requested page when the store clamps past-the-end
// requests.
type ListResult struct {
	Items    []Log `json:"items"`
	Total    int   `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}
