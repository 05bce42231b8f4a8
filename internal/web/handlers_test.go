package web_test

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tmorrell/cruxlog/internal/domain/climb"
	"github.com/tmorrell/cruxlog/internal/testserver"
)

// noRedirectClient stops at the first response so redirects can be asserted.
var noRedirectClient = &http.Client{
	CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

func seedLog(t *testing.T, ts *testserver.TestServer, routeName string) *climb.Log {
	t.Helper()

	log, err := ts.Service.Create(context.Background(), climb.Input{
		Date:        "2025-06-01",
		Environment: "gym",
		Location:    "Summit Bouldering",
		RouteName:   routeName,
		ClimbType:   "boulder",
		GradeSystem: "V",
		Grade:       "V4",
		Progress:    "complete",
	}, nil)
	require.NoError(t, err)
	return log
}

func getPage(t *testing.T, url string) (int, string) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestListPage(t *testing.T) {
	ts := testserver.New(t)
	seedLog(t, ts, "Crimp City")
	seedLog(t, ts, "Slab Happy")

	status, body := getPage(t, ts.Server.URL+"/")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "Crimp City")
	require.Contains(t, body, "Slab Happy")
	require.Contains(t, body, "Date (newest first)")
}

func TestListPage_EscapesUserText(t *testing.T) {
	ts := testserver.New(t)
	seedLog(t, ts, `<script>alert("xss")</script>`)

	status, body := getPage(t, ts.Server.URL+"/")
	require.Equal(t, http.StatusOK, status)
	require.NotContains(t, body, `<script>alert`)
	require.Contains(t, body, "&lt;script&gt;")
}

func TestListPage_FilterGatesGradeSort(t *testing.T) {
	ts := testserver.New(t)
	seedLog(t, ts, "Crimp City")

	// Unfiltered lists mix grade systems, so grade sorts are not offered.
	status, body := getPage(t, ts.Server.URL+"/")
	require.Equal(t, http.StatusOK, status)
	require.NotContains(t, body, "Grade (easiest first)")

	status, body = getPage(t, ts.Server.URL+"/?type=boulder")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "Grade (easiest first)")
}

func TestNewForm(t *testing.T) {
	ts := testserver.New(t)

	status, body := getPage(t, ts.Server.URL+"/logs/new")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, `action="/logs"`)
	require.Contains(t, body, "V17")
	require.Contains(t, body, "5.15")
}

func TestCreateForm(t *testing.T) {
	ts := testserver.New(t)

	form := url.Values{
		"date":        {"2025-06-01"},
		"environment": {"gym"},
		"location":    {"Summit Bouldering"},
		"routeName":   {"Crimp City"},
		"climbType":   {"boulder"},
		"gradeSystem": {"V"},
		"grade":       {"V4"},
		"progress":    {"complete"},
	}
	resp, err := noRedirectClient.PostForm(ts.Server.URL+"/logs", form)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))

	result, err := ts.Service.List(context.Background(), climb.ListOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
}

func TestCreateForm_ValidationErrors(t *testing.T) {
	ts := testserver.New(t)

	form := url.Values{
		"date":        {"2025-06-01"},
		"environment": {"gym"},
		"location":    {"Summit Bouldering"},
		"routeName":   {"Crimp City"},
		"climbType":   {"boulder"},
		"gradeSystem": {"YDS"},
		"grade":       {"5.9"},
		"progress":    {"complete"},
	}
	resp, err := noRedirectClient.PostForm(ts.Server.URL+"/logs", form)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "Bouldering should use V-Scale.")
	// The submitted values are preserved for correction.
	require.Contains(t, string(body), "Crimp City")
}

func TestEditForm(t *testing.T) {
	ts := testserver.New(t)
	log := seedLog(t, ts, "Crimp City")

	status, body := getPage(t, ts.Server.URL+"/logs/"+log.ID+"/edit")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "Crimp City")
	require.Contains(t, body, `action="/logs/`+log.ID+`"`)
}

func TestEditForm_NotFound(t *testing.T) {
	ts := testserver.New(t)

	status, _ := getPage(t, ts.Server.URL+"/logs/missing/edit")
	require.Equal(t, http.StatusNotFound, status)
}

func TestUpdateForm(t *testing.T) {
	ts := testserver.New(t)
	log := seedLog(t, ts, "Crimp City")

	form := url.Values{
		"date":        {"2025-06-01"},
		"environment": {"outdoor"},
		"location":    {"Horse Pens 40"},
		"routeName":   {"Crimp City Direct"},
		"climbType":   {"boulder"},
		"gradeSystem": {"V"},
		"grade":       {"V5"},
		"progress":    {"incomplete"},
	}
	resp, err := noRedirectClient.PostForm(ts.Server.URL+"/logs/"+log.ID, form)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	updated, err := ts.Service.Get(context.Background(), log.ID)
	require.NoError(t, err)
	require.Equal(t, "Crimp City Direct", updated.RouteName)
	require.Equal(t, climb.EnvOutdoor, updated.Environment)
}

func TestConfirmDeletePage(t *testing.T) {
	ts := testserver.New(t)
	log := seedLog(t, ts, "Crimp City")

	status, body := getPage(t, ts.Server.URL+"/logs/"+log.ID+"/delete?back=page%3D2")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "Crimp City")
	require.Contains(t, body, "page=2")
}

func TestDelete_StepsBackFromEmptiedLastPage(t *testing.T) {
	ts := testserver.New(t)

	var last *climb.Log
	for i := 0; i < 11; i++ {
		last = seedLog(t, ts, "Problem "+strings.Repeat("I", i+1))
	}

	// Deleting the only item on page 2 of 11 sends the user back to page 1.
	form := url.Values{"back": {"page=2&pageSize=10"}}
	resp, err := noRedirectClient.PostForm(ts.Server.URL+"/logs/"+last.ID+"/delete", form)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "1", loc.Query().Get("page"))

	result, err := ts.Service.List(context.Background(), climb.ListOptions{})
	require.NoError(t, err)
	require.Equal(t, 10, result.Total)
}

func TestDelete_KeepsPageWhenItemsRemain(t *testing.T) {
	ts := testserver.New(t)

	var victim *climb.Log
	for i := 0; i < 15; i++ {
		victim = seedLog(t, ts, "Problem "+strings.Repeat("I", i+1))
	}

	form := url.Values{"back": {"page=2&pageSize=10"}}
	resp, err := noRedirectClient.PostForm(ts.Server.URL+"/logs/"+victim.ID+"/delete", form)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "2", loc.Query().Get("page"))
}
