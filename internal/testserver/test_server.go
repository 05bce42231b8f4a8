// Package testserver spins up a full climb-log server over an in-memory
// database for integration-style tests.
package testserver

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tmorrell/cruxlog/internal/domain/climb"
	"github.com/tmorrell/cruxlog/internal/sqlite"
	"github.com/tmorrell/cruxlog/internal/transport"
	"github.com/tmorrell/cruxlog/internal/web"
)

type TestServer struct {
	Server  *httptest.Server
	DB      *sqlite.DB
	Service *climb.Service
}

func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	logRepo := sqlite.NewLogRepository(db)
	imageRepo := sqlite.NewImageRepository(db)
	statsRepo := sqlite.NewStatsRepository(db)

	svc := climb.NewService(logRepo, imageRepo, statsRepo, nil)

	ui, err := web.NewHandler(svc, nil)
	require.NoError(t, err)

	server := httptest.NewServer(transport.NewRouter(svc, nil, ui))

	ts := &TestServer{
		Server:  server,
		DB:      db,
		Service: svc,
	}

	t.Cleanup(func() {
		server.Close()
		db.Close()
	})

	return ts
}
