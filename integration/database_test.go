//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// runHistoryLifecycle drives a report run plus history status/clear against
// whatever backend the environment selects.
func runHistoryLifecycle(t *testing.T) {
	repo := makeModelRepo(t)

	out, err := runArchstat(t, repo, "history", "clear")
	require.NoError(t, err, out)

	out, err = runArchstat(t, repo, "report", "--rev", "v1", "--output", "json")
	require.NoError(t, err, out)

	out, err = runArchstat(t, repo, "compare", "--base-rev", "v1", "--rev", "v2", "--output", "json")
	require.NoError(t, err, out)

	out, err = runArchstat(t, repo, "history", "status")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Total Runs: 2", "report and compare each record one run")

	out, err = runArchstat(t, repo, "history", "clear")
	require.NoError(t, err, out)

	out, err = runArchstat(t, repo, "history", "status")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Total Runs: 0")
}

// TestArchstatWithMySQL tests the archstat CLI with a MySQL history backend.
func TestArchstatWithMySQL(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "archstat",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/archstat?parseTime=true", host, port.Port())

	_ = os.Setenv("ARCHSTAT_HISTORY_BACKEND", "mysql")
	_ = os.Setenv("ARCHSTAT_HISTORY_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("ARCHSTAT_HISTORY_BACKEND") }()
	defer func() { _ = os.Unsetenv("ARCHSTAT_HISTORY_DB_CONNECT") }()

	runHistoryLifecycle(t)
}

// TestArchstatWithPostgres tests the archstat CLI with a PostgreSQL history backend.
func TestArchstatWithPostgres(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())

	_ = os.Setenv("ARCHSTAT_HISTORY_BACKEND", "postgresql")
	_ = os.Setenv("ARCHSTAT_HISTORY_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("ARCHSTAT_HISTORY_BACKEND") }()
	defer func() { _ = os.Unsetenv("ARCHSTAT_HISTORY_DB_CONNECT") }()

	runHistoryLifecycle(t)
}
