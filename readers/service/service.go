// Package service queries systemd units through systemctl and journalctl.
package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/lexcodex/sysdiag/config"
	"github.com/lexcodex/sysdiag/diag"
	"github.com/lexcodex/sysdiag/runner"
)

const maxLogLines = 10000

// List lists all systemd services with load/active/sub states.
func List(ctx context.Context, cfg *config.Config) (*diag.Record, error) {
	res, err := runner.Run(ctx, runner.Spec{
		Program: "systemctl",
		Args:    []string{"list-units", "--type=service", "--all", "--plain", "--no-legend", "--no-pager"},
		Timeout: cfg.CommandTimeout(string(diag.CategoryService)),
	})
	if err != nil {
		return nil, err
	}
	rows, running := parseUnits(res.Stdout)

	rec := diag.NewRecord("service list", diag.CategoryService)
	rec.Set("services", rows)
	rec.Set("total_count", len(rows))
	rec.Set("running_count", running)
	return rec, nil
}

// Status reports the state of one unit via systemctl show, whose key=value
// output is stable across locales unlike the status prose.
func Status(ctx context.Context, cfg *config.Config, name string) (*diag.Record, error) {
	unit, err := normalizeUnit(name)
	if err != nil {
		return nil, err
	}
	props, err := showUnit(ctx, cfg, unit)
	if err != nil {
		return nil, err
	}
	if props["LoadState"] == "not-found" {
		return nil, diag.NotFoundf("service status", "unit %s could not be found", unit)
	}

	rec := diag.NewRecord("service status", diag.CategoryService)
	rec.Set("unit", props["Id"])
	rec.Set("description", valueOrUnknown(props["Description"]))
	rec.Set("status", valueOrUnknown(props["ActiveState"]))
	rec.Set("sub_state", valueOrUnknown(props["SubState"]))
	rec.Set("load_state", valueOrUnknown(props["LoadState"]))
	rec.Set("unit_file_state", valueOrUnknown(props["UnitFileState"]))
	rec.Set("main_pid", pidOrUnknown(props["MainPID"]))
	rec.Set("started", valueOrUnknown(props["ExecMainStartTimestamp"]))
	rec.Set("fragment_path", valueOrUnknown(props["FragmentPath"]))
	return rec, nil
}

// Logs returns the most recent journal entries for one unit.
func Logs(ctx context.Context, cfg *config.Config, name string, lines int) (*diag.Record, error) {
	unit, err := normalizeUnit(name)
	if err != nil {
		return nil, err
	}
	if lines <= 0 {
		return nil, diag.InvalidArgumentf("service logs", "lines must be positive, got %d", lines)
	}
	if lines > maxLogLines {
		lines = maxLogLines
	}
	// confirm the unit exists before querying the journal; journalctl
	// exits zero for unknown units
	props, err := showUnit(ctx, cfg, unit)
	if err != nil {
		return nil, err
	}
	if props["LoadState"] == "not-found" {
		return nil, diag.NotFoundf("service logs", "unit %s could not be found", unit)
	}

	res, err := runner.Run(ctx, runner.Spec{
		Program: "journalctl",
		Args:    []string{"-u", unit, "-n", strconv.Itoa(lines), "--no-pager", "-o", "short-iso"},
		Timeout: cfg.CommandTimeout("logs"),
	})
	if err != nil {
		return nil, err
	}
	rows := ParseJournal(res.Stdout)

	rec := diag.NewRecord("service logs", diag.CategoryService)
	rec.Set("unit", unit)
	rec.Set("entries", rows)
	rec.Set("entry_count", len(rows))
	return rec, nil
}

func showUnit(ctx context.Context, cfg *config.Config, unit string) (map[string]string, error) {
	res, err := runner.Run(ctx, runner.Spec{
		Program: "systemctl",
		Args: []string{"show", unit, "--no-pager",
			"--property=Id,Description,LoadState,ActiveState,SubState,UnitFileState,MainPID,ExecMainStartTimestamp,FragmentPath"},
		Timeout: cfg.CommandTimeout(string(diag.CategoryService)),
	})
	if err != nil {
		return nil, err
	}
	props := parseShow(res.Stdout)
	if props["Id"] == "" {
		return nil, diag.Parsef("systemctl show", "no Id property for %s", unit)
	}
	return props, nil
}

func normalizeUnit(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", diag.InvalidArgumentf("service", "service name required")
	}
	if !strings.Contains(name, ".") {
		name += ".service"
	}
	return name, nil
}

// parseUnits turns plain list-units output into rows. Columns are
// UNIT LOAD ACTIVE SUB DESCRIPTION with the description free-form.
func parseUnits(raw string) ([]diag.Fields, int) {
	var rows []diag.Fields
	running := 0
	for _, line := range strings.Split(raw, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 || !strings.Contains(fields[0], ".") {
			continue
		}
		row := diag.Fields{}
		row.Set("unit", fields[0])
		row.Set("load", fields[1])
		row.Set("active", fields[2])
		row.Set("sub", fields[3])
		if len(fields) > 4 {
			row.Set("description", strings.Join(fields[4:], " "))
		} else {
			row.Set("description", diag.Unknown)
		}
		if fields[3] == "running" {
			running++
		}
		rows = append(rows, row)
	}
	return rows, running
}

func parseShow(raw string) map[string]string {
	props := map[string]string{}
	for _, line := range strings.Split(raw, "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		props[key] = strings.TrimSpace(value)
	}
	return props
}

// ParseJournal splits short-iso journal lines into timestamp, host, and
// message columns. Marker lines ("-- No entries --") are dropped.
func ParseJournal(raw string) []diag.Fields {
	var rows []diag.Fields
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, " \t")
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		row := diag.Fields{}
		parts := strings.SplitN(line, " ", 3)
		if len(parts) == 3 {
			row.Set("timestamp", parts[0])
			row.Set("host", parts[1])
			row.Set("message", parts[2])
		} else {
			row.Set("timestamp", diag.Unknown)
			row.Set("host", diag.Unknown)
			row.Set("message", line)
		}
		rows = append(rows, row)
	}
	return rows
}

func valueOrUnknown(s string) any {
	if s == "" {
		return diag.Unknown
	}
	return s
}

func pidOrUnknown(s string) any {
	n, err := strconv.Atoi(s)
	if err != nil {
		return diag.Unknown
	}
	return n
}
