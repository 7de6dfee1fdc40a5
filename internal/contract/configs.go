package contract

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/archstat/archstat/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 50
	MaxResultLimit     = 1000
	DefaultPrecision   = 2
	MaxPrecision       = 4
	DefaultModelPath   = "model.yaml"
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Config holds the runtime configuration for an archstat invocation.
// This struct remains the "final, validated" config.
type Config struct {
	RepoPath  string // Absolute path to the git repository holding the model
	ModelPath string // Path of the model manifest within the repository

	Revision     string // Current revision label; empty means working tree
	BaseRevision string // Baseline revision label; empty disables delta mode
	CompareMode  bool   // True when a baseline revision is configured

	ResultLimit int               // Maximum number of drill-down ids shown per metric
	Workers     int               // Number of concurrent metric evaluations
	Precision   int               // Decimal precision for numeric columns
	Output      schema.OutputMode // Output format: text, csv or json
	OutputFile  string            // Optional path to write output directly

	IgnoreRelationOrder bool // Treat reordered relation sequences with equal membership as unchanged

	HistoryBackend   schema.HistoryBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored deltas in table output
	Width     int  // Terminal width override (0 = auto-detect)
}

// Clone returns a copy of the config, for callers that need to adjust
// parameters per request without racing the shared base config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ConfigRawInput holds the raw, unvalidated configuration from all sources
// (file, env, flags). Viper unmarshals into this struct.
type ConfigRawInput struct {
	ModelPath           string `mapstructure:"model"`
	Revision            string `mapstructure:"rev"`
	BaseRevision        string `mapstructure:"base-rev"`
	Limit               int    `mapstructure:"limit"`
	Workers             int    `mapstructure:"workers"`
	Precision           int    `mapstructure:"precision"`
	Output              string `mapstructure:"output"`
	OutputFile          string `mapstructure:"output-file"`
	IgnoreRelationOrder bool   `mapstructure:"ignore-relation-order"`
	HistoryBackend      string `mapstructure:"history-backend"`
	HistoryDBConnect    string `mapstructure:"history-db-connect"`
	Emoji               string `mapstructure:"emoji"`
	Color               string `mapstructure:"color"`
	Width               int    `mapstructure:"width"`

	// RepoPathStr is the positional repository path argument.
	RepoPathStr string `mapstructure:"-"`
}

// ProcessAndValidate turns raw input into a validated Config.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	repoPath, err := filepath.Abs(input.RepoPathStr)
	if err != nil {
		return fmt.Errorf("invalid repository path %q: %w", input.RepoPathStr, err)
	}
	cfg.RepoPath = repoPath

	cfg.ModelPath = strings.TrimSpace(input.ModelPath)
	if cfg.ModelPath == "" {
		cfg.ModelPath = DefaultModelPath
	}
	if filepath.IsAbs(cfg.ModelPath) {
		return fmt.Errorf("model path %q must be relative to the repository root", cfg.ModelPath)
	}

	cfg.Revision = strings.TrimSpace(input.Revision)
	cfg.BaseRevision = strings.TrimSpace(input.BaseRevision)
	cfg.CompareMode = cfg.BaseRevision != ""

	if input.Limit < 1 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 1 and %d, got %d", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.Workers < 1 {
		cfg.Workers = DefaultWorkers
	} else {
		cfg.Workers = input.Workers
	}

	cfg.Precision = input.Precision
	if cfg.Precision < 0 {
		cfg.Precision = 0
	}
	if cfg.Precision > MaxPrecision {
		cfg.Precision = MaxPrecision
	}

	switch out := schema.OutputMode(strings.ToLower(input.Output)); out {
	case schema.TextOut, schema.CSVOut, schema.JSONOut:
		cfg.Output = out
	case "":
		cfg.Output = schema.TextOut
	default:
		return fmt.Errorf("unsupported output mode: %s. Must be text, csv or json", input.Output)
	}
	cfg.OutputFile = input.OutputFile

	cfg.IgnoreRelationOrder = input.IgnoreRelationOrder

	switch backend := schema.HistoryBackend(strings.ToLower(input.HistoryBackend)); backend {
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend, schema.NoneBackend:
		cfg.HistoryBackend = backend
	case "":
		cfg.HistoryBackend = schema.SQLiteBackend
	default:
		return fmt.Errorf("unsupported history backend: %s. Must be sqlite, mysql, postgresql, or none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateHistoryConnection(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	cfg.UseEmojis = parseYesNo(input.Emoji, true)
	cfg.UseColors = parseYesNo(input.Color, true)
	cfg.Width = input.Width

	return nil
}

// ValidateHistoryConnection checks that server-based history backends carry
// a connection string. SQLite and none need nothing.
func ValidateHistoryConnection(backend schema.HistoryBackend, connStr string) error {
	switch backend {
	case schema.MySQLBackend, schema.PostgreSQLBackend:
		if strings.TrimSpace(connStr) == "" {
			return fmt.Errorf("history backend %s requires a connection string", backend)
		}
	}
	return nil
}

// RevalidateCompare checks comparison parameters adjusted after the initial
// validation pass, e.g. by MCP tool calls.
func RevalidateCompare(cfg *Config) error {
	if cfg.BaseRevision == "" {
		return fmt.Errorf("base revision is required for comparison")
	}
	if cfg.BaseRevision == cfg.Revision && cfg.Revision != "" {
		return fmt.Errorf("base and current revisions are identical: %s", cfg.Revision)
	}
	cfg.CompareMode = true
	return nil
}

// parseYesNo interprets yes/no style toggles, falling back to a default.
func parseYesNo(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "true", "on", "1":
		return true
	case "no", "false", "off", "0":
		return false
	default:
		return fallback
	}
}
