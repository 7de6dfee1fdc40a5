package contract

import (
	"fmt"
	"os"
)

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "❌ %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarning logs a warning.
func LogWarning(msg string) {
	fmt.Fprintf(os.Stderr, "⚠️  %s\n", msg)
}

// LogReportHeader prints the header for a single-revision evaluation.
func LogReportHeader(cfg *Config) {
	rev := cfg.Revision
	if rev == "" {
		rev = "worktree"
	}
	if cfg.UseEmojis {
		fmt.Printf("🧮 archstat: Evaluating %s (%s) at %s\n\n", cfg.RepoPath, cfg.ModelPath, rev)
	} else {
		fmt.Printf("archstat: Evaluating %s (%s) at %s\n\n", cfg.RepoPath, cfg.ModelPath, rev)
	}
}

// LogCompareHeader prints the header for a two-revision comparison.
func LogCompareHeader(cfg *Config) {
	rev := cfg.Revision
	if rev == "" {
		rev = "worktree"
	}
	if cfg.UseEmojis {
		fmt.Printf("🧮 archstat: Comparing %s (%s): %s → %s\n\n", cfg.RepoPath, cfg.ModelPath, cfg.BaseRevision, rev)
	} else {
		fmt.Printf("archstat: Comparing %s (%s): %s -> %s\n\n", cfg.RepoPath, cfg.ModelPath, cfg.BaseRevision, rev)
	}
}

// TruncatePath truncates a path or id to a maximum width with ellipsis prefix.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// CreateFormatters returns a float formatter and an int format string for
// the given decimal precision.
func CreateFormatters(precision int) (func(float64) string, string) {
	fmtFloat := func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
	return fmtFloat, "%d"
}
