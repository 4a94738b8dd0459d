// Package logs queries the systemd journal and tails plain log files.
package logs

import (
	"context"
	"strconv"
	"strings"

	"github.com/lexcodex/sysdiag/config"
	"github.com/lexcodex/sysdiag/diag"
	"github.com/lexcodex/sysdiag/readers/service"
	"github.com/lexcodex/sysdiag/runner"
)

const maxLines = 10000

var priorityNames = map[string]bool{
	"emerg": true, "alert": true, "crit": true, "err": true,
	"warning": true, "notice": true, "info": true, "debug": true,
}

// Journal returns the most recent system journal entries, optionally
// filtered by syslog priority.
func Journal(ctx context.Context, cfg *config.Config, lines int, priority string) (*diag.Record, error) {
	lines, err := clampLines("logs journal", lines)
	if err != nil {
		return nil, err
	}
	args := []string{"-n", strconv.Itoa(lines), "--no-pager", "-o", "short-iso"}
	if priority != "" {
		if err := validatePriority(priority); err != nil {
			return nil, err
		}
		args = append(args, "-p", priority)
	}
	res, err := runner.Run(ctx, runner.Spec{
		Program: "journalctl",
		Args:    args,
		Timeout: cfg.CommandTimeout("logs"),
	})
	if err != nil {
		return nil, err
	}
	rows := service.ParseJournal(res.Stdout)

	rec := diag.NewRecord("logs journal", diag.CategoryLogs)
	if priority != "" {
		rec.Set("priority", priority)
	} else {
		rec.Set("priority", diag.Unknown)
	}
	rec.Set("entries", rows)
	rec.Set("entry_count", len(rows))
	return rec, nil
}

// Audit returns recent kernel audit records from the journal.
func Audit(ctx context.Context, cfg *config.Config, lines int) (*diag.Record, error) {
	lines, err := clampLines("logs audit", lines)
	if err != nil {
		return nil, err
	}
	res, err := runner.Run(ctx, runner.Spec{
		Program: "journalctl",
		Args:    []string{"-n", strconv.Itoa(lines), "--no-pager", "-o", "short-iso", "_TRANSPORT=audit"},
		Timeout: cfg.CommandTimeout("logs"),
	})
	if err != nil {
		return nil, err
	}
	rows := service.ParseJournal(res.Stdout)

	rec := diag.NewRecord("logs audit", diag.CategoryLogs)
	rec.Set("entries", rows)
	rec.Set("entry_count", len(rows))
	return rec, nil
}

// Read tails a plain log file: the last N lines, newest last.
func Read(ctx context.Context, cfg *config.Config, path string, lines int) (*diag.Record, error) {
	if strings.TrimSpace(path) == "" {
		return nil, diag.InvalidArgumentf("logs read", "path required")
	}
	lines, err := clampLines("logs read", lines)
	if err != nil {
		return nil, err
	}
	raw, err := runner.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tail, total := lastLines(raw, lines)
	rows := make([]diag.Fields, 0, len(tail))
	for _, line := range tail {
		row := diag.Fields{}
		row.Set("line", line)
		rows = append(rows, row)
	}

	rec := diag.NewRecord("logs read", diag.CategoryLogs)
	rec.Set("path", path)
	rec.Set("entries", rows)
	rec.Set("entry_count", len(rows))
	rec.Set("total_lines", total)
	return rec, nil
}

func clampLines(op string, lines int) (int, error) {
	if lines <= 0 {
		return 0, diag.InvalidArgumentf(op, "lines must be positive, got %d", lines)
	}
	if lines > maxLines {
		return maxLines, nil
	}
	return lines, nil
}

func validatePriority(p string) error {
	if priorityNames[p] {
		return nil
	}
	if n, err := strconv.Atoi(p); err == nil && n >= 0 && n <= 7 {
		return nil
	}
	return diag.InvalidArgumentf("logs journal", "invalid priority %q (use emerg..debug or 0-7)", p)
}

func lastLines(raw string, n int) ([]string, int) {
	all := strings.Split(strings.TrimRight(raw, "\n"), "\n")
	if len(all) == 1 && all[0] == "" {
		return nil, 0
	}
	total := len(all)
	if total > n {
		all = all[total-n:]
	}
	return all, total
}
