// Package history persists evaluated metric reports per (model, revision)
// so runs can be tracked and exported over time.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/archstat/archstat/internal/contract"
	"github.com/archstat/archstat/schema"
	_ "github.com/go-sql-driver/mysql"  // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib"  // PostgreSQL driver
	_ "modernc.org/sqlite"              // SQLite driver
)

// StoreManager manages the report store instance.
type StoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	reports      contract.ReportStore
}

var _ contract.HistoryManager = &StoreManager{} // Compile-time check

// Manager is the global history manager instance.
var Manager = &StoreManager{}

// GetReportStore returns the report store.
func (mgr *StoreManager) GetReportStore() contract.ReportStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.reports
}

// InitStores initializes the global history manager with validated config.
func InitStores(backend schema.HistoryBackend, connStr string) error {
	store, err := NewReportStore(backend, connStr)
	if err != nil {
		return err
	}
	Manager.Lock()
	defer Manager.Unlock()
	Manager.reports = store
	return nil
}

// GetDBFilePath returns the default SQLite database location under the user
// cache directory.
func GetDBFilePath() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	dir := filepath.Join(cacheDir, "archstat")
	_ = os.MkdirAll(dir, 0o755)
	return filepath.Join(dir, "history.db")
}

// ReportStoreImpl handles durable report storage using various database backends.
type ReportStoreImpl struct {
	db      *sql.DB
	backend schema.HistoryBackend
	connStr string
}

var _ contract.ReportStore = &ReportStoreImpl{} // Compile-time check

// NewReportStore initializes and returns a new report store based on the
// backend type.
func NewReportStore(backend schema.HistoryBackend, connStr string) (contract.ReportStore, error) {
	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetDBFilePath()
		}
		connStr = dbPath
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite history at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL history: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL history: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled history
		return &ReportStoreImpl{db: nil, backend: backend, connStr: connStr}, nil

	default:
		return nil, fmt.Errorf("unsupported history backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	for _, query := range createTableQueries() {
		if _, err := db.Exec(query); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create history tables: %w", err)
		}
	}

	return &ReportStoreImpl{db: db, backend: backend, connStr: connStr}, nil
}

// createTableQueries returns portable DDL shared by all three backends.
func createTableQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS archstat_runs (
			run_id BIGINT PRIMARY KEY,
			model VARCHAR(255) NOT NULL,
			revision VARCHAR(255) NOT NULL,
			created_at BIGINT NOT NULL,
			duration_ms BIGINT NOT NULL,
			total_metrics INT NOT NULL,
			failed_metrics INT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS archstat_metric_values (
			run_id BIGINT NOT NULL,
			metric VARCHAR(255) NOT NULL,
			kind VARCHAR(32) NOT NULL,
			num_value DOUBLE PRECISION NOT NULL,
			cat_value VARCHAR(255) NOT NULL,
			error_text VARCHAR(1024) NOT NULL,
			elements INT NOT NULL
		);`,
	}
}

// rebind converts '?' placeholders to the backend's parameter style.
func (ps *ReportStoreImpl) rebind(query string) string {
	if ps.backend != schema.PostgreSQLBackend {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// RecordReport stores one evaluated report and returns its run id.
// Run ids are generated in Go (nanosecond timestamps) so the same insert
// works across all backends.
func (ps *ReportStoreImpl) RecordReport(modelPath string, report *schema.MetricReport, duration time.Duration) (int64, error) {
	if ps.backend == schema.NoneBackend || ps.db == nil {
		return 0, nil
	}

	runID := time.Now().UnixNano()
	tx, err := ps.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	insertRun := ps.rebind(`INSERT INTO archstat_runs
		(run_id, model, revision, created_at, duration_ms, total_metrics, failed_metrics)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if _, err := tx.Exec(insertRun, runID, modelPath, report.Revision, time.Now().Unix(),
		duration.Milliseconds(), len(report.Results), report.FailureCount()); err != nil {
		return 0, err
	}

	insertValue := ps.rebind(`INSERT INTO archstat_metric_values
		(run_id, metric, kind, num_value, cat_value, error_text, elements)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	for _, name := range report.Names() {
		result := report.Results[name]
		if _, err := tx.Exec(insertValue, runID, name, string(result.Value.Kind),
			result.Value.Number, result.Value.Category, result.Error, len(result.Elements)); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// GetStatus returns status information about the history store.
func (ps *ReportStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    ps.backend,
		TableSizes: make(map[string]int64),
	}
	if ps.backend == schema.SQLiteBackend {
		status.Location = ps.connStr
	}
	if ps.backend == schema.NoneBackend || ps.db == nil {
		return status, nil
	}

	if err := ps.db.QueryRow(`SELECT COUNT(*) FROM archstat_runs`).Scan(&status.TotalRuns); err != nil {
		return status, err
	}
	status.TableSizes["archstat_runs"] = status.TotalRuns

	var valueRows int64
	if err := ps.db.QueryRow(`SELECT COUNT(*) FROM archstat_metric_values`).Scan(&valueRows); err != nil {
		return status, err
	}
	status.TableSizes["archstat_metric_values"] = valueRows

	return status, nil
}

// GetAllRuns returns every recorded run, newest first.
func (ps *ReportStoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	if ps.backend == schema.NoneBackend || ps.db == nil {
		return nil, nil
	}
	rows, err := ps.db.Query(`SELECT run_id, model, revision, created_at, duration_ms, total_metrics, failed_metrics
		FROM archstat_runs ORDER BY run_id DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []schema.RunRecord
	for rows.Next() {
		var r schema.RunRecord
		if err := rows.Scan(&r.RunID, &r.Model, &r.Revision, &r.CreatedAt, &r.DurationMs, &r.TotalMetrics, &r.FailedMetrics); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetAllMetricValues returns every recorded metric value row.
func (ps *ReportStoreImpl) GetAllMetricValues() ([]schema.MetricValueRecord, error) {
	if ps.backend == schema.NoneBackend || ps.db == nil {
		return nil, nil
	}
	rows, err := ps.db.Query(`SELECT run_id, metric, kind, num_value, cat_value, error_text, elements
		FROM archstat_metric_values ORDER BY run_id DESC, metric ASC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var values []schema.MetricValueRecord
	for rows.Next() {
		var v schema.MetricValueRecord
		if err := rows.Scan(&v.RunID, &v.Metric, &v.Kind, &v.Number, &v.Category, &v.Error, &v.Elements); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// Clear removes all recorded history.
func (ps *ReportStoreImpl) Clear() error {
	if ps.backend == schema.NoneBackend || ps.db == nil {
		return nil
	}
	if _, err := ps.db.Exec(`DELETE FROM archstat_metric_values`); err != nil {
		return err
	}
	_, err := ps.db.Exec(`DELETE FROM archstat_runs`)
	return err
}

// Close closes the underlying connection.
func (ps *ReportStoreImpl) Close() error {
	if ps.db == nil {
		return nil
	}
	return ps.db.Close()
}
