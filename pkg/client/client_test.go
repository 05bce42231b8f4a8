package client_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tmorrell/cruxlog/internal/domain/climb"
	"github.com/tmorrell/cruxlog/internal/listing"
	"github.com/tmorrell/cruxlog/internal/testserver"
	"github.com/tmorrell/cruxlog/pkg/client"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newClient(t *testing.T) *client.Client {
	t.Helper()
	ts := testserver.New(t)
	return client.New(ts.Server.URL, ts.Server.Client())
}

func boulderInput(route string) climb.Input {
	return climb.Input{
		Date:        "2025-06-01",
		Environment: "gym",
		Location:    "Summit Bouldering",
		RouteName:   route,
		ClimbType:   "boulder",
		GradeSystem: "V",
		Grade:       "V4",
		Progress:    "complete",
	}
}

func TestClient_CRUD(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	created, err := c.Create(ctx, boulderInput("Crimp City"), nil)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.False(t, created.HasImage)

	got, err := c.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)

	in := boulderInput("Crimp City Direct")
	in.Grade = "V5"
	updated, err := c.Update(ctx, created.ID, in, nil, false)
	require.NoError(t, err)
	require.Equal(t, "Crimp City Direct", updated.RouteName)
	require.Equal(t, "V5", updated.Grade)

	require.NoError(t, c.Delete(ctx, created.ID))

	_, err = c.Get(ctx, created.ID)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 404, apiErr.StatusCode)
}

func TestClient_ValidationErrorFields(t *testing.T) {
	c := newClient(t)

	in := boulderInput("Crimp City")
	in.GradeSystem = "YDS"
	in.Grade = "5.9"

	_, err := c.Create(context.Background(), in, nil)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 400, apiErr.StatusCode)
	require.Equal(t, "Validation failed", apiErr.Message)
	require.Equal(t, "Bouldering should use V-Scale.", apiErr.Fields["gradeSystem"])
}

func TestClient_ImageRoundTrip(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	created, err := c.Create(ctx, boulderInput("Crimp City"), &client.Upload{
		Filename:    "climb.png",
		ContentType: "image/png",
		Data:        pngBytes,
	})
	require.NoError(t, err)
	require.True(t, created.HasImage)

	contentType, data, err := c.Image(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "image/png", contentType)
	require.Equal(t, pngBytes, data)

	// removeImage clears the photo without touching the record.
	updated, err := c.Update(ctx, created.ID, boulderInput("Crimp City"), nil, true)
	require.NoError(t, err)
	require.False(t, updated.HasImage)

	_, _, err = c.Image(ctx, created.ID)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 404, apiErr.StatusCode)
}

func TestClient_ListWithQuery(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		in := boulderInput(fmt.Sprintf("Problem %d", i))
		in.Date = fmt.Sprintf("2025-06-%02d", i)
		_, err := c.Create(ctx, in, nil)
		require.NoError(t, err)
	}
	roped := boulderInput("Rope Burn")
	roped.ClimbType = "sport"
	roped.GradeSystem = "YDS"
	roped.Grade = "5.11"
	_, err := c.Create(ctx, roped, nil)
	require.NoError(t, err)

	q := listing.NewQuery()
	q.Types = []string{"boulder"}
	q.Sort = "date_asc"

	result, err := c.List(ctx, q)
	require.NoError(t, err)
	require.Equal(t, 3, result.Total)
	require.Equal(t, "Problem 1", result.Items[0].RouteName)
}

func TestClient_DeleteNotFound(t *testing.T) {
	c := newClient(t)

	err := c.Delete(context.Background(), "missing")
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, 404, apiErr.StatusCode)
	require.Equal(t, "Not found", apiErr.Message)
}
