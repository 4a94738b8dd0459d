// Package process reads process diagnostics from ps and /proc.
package process

import (
	"context"
	"fmt"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lexcodex/sysdiag/config"
	"github.com/lexcodex/sysdiag/diag"
	"github.com/lexcodex/sysdiag/runner"
)

// clockTicksPerSecond is USER_HZ, fixed at 100 on every supported kernel.
const clockTicksPerSecond = 100

// List lists running processes sorted by CPU usage descending.
func List(ctx context.Context, cfg *config.Config, top int) (*diag.Record, error) {
	if top <= 0 {
		return nil, diag.InvalidArgumentf("process list", "top must be positive, got %d", top)
	}
	res, err := runner.Run(ctx, runner.Spec{
		Program: "ps",
		Args:    []string{"-eo", "pid=,user:32=,pcpu=,pmem=,stat=,args=", "--sort=-pcpu"},
		Timeout: cfg.CommandTimeout(string(diag.CategoryProcess)),
	})
	if err != nil {
		return nil, err
	}
	rows, err := parsePS(res.Stdout)
	if err != nil {
		return nil, err
	}
	total := len(rows)
	if len(rows) > top {
		rows = rows[:top]
	}

	rec := diag.NewRecord("process list", diag.CategoryProcess)
	rec.Set("processes", rows)
	rec.Set("total_count", total)
	return rec, nil
}

// Info reports details for one pid from /proc.
func Info(ctx context.Context, cfg *config.Config, pid int) (*diag.Record, error) {
	if pid < 1 {
		return nil, diag.InvalidArgumentf("process info", "pid must be a positive integer, got %d", pid)
	}
	procDir := fmt.Sprintf("/proc/%d", pid)

	raw, err := runner.ReadFile(filepath.Join(procDir, "status"))
	if err != nil {
		if diag.IsKind(err, diag.KindNotFound) {
			return nil, diag.NotFoundf("process info", "process %d not found", pid)
		}
		return nil, err
	}
	status := parseStatus(raw)

	rec := diag.NewRecord("process info", diag.CategoryProcess)
	rec.Set("pid", pid)
	rec.Set("name", valueOrUnknown(status["Name"]))
	rec.Set("state", valueOrUnknown(status["State"]))
	rec.Set("user", usernameOrUnknown(status["Uid"]))
	rec.Set("ppid", intOrUnknown(status["PPid"]))

	cmdline := readCmdline(procDir)
	if cmdline == "" && status["Name"] != "" {
		cmdline = "[" + status["Name"] + "]"
	}
	rec.Set("command", valueOrUnknown(cmdline))

	if exe, err := runner.Readlink(filepath.Join(procDir, "exe")); err == nil {
		rec.Set("exe", exe)
	} else {
		rec.Set("exe", diag.Unknown)
	}

	rec.Set("memory_rss", kbFieldOrUnknown(status["VmRSS"]))
	rec.Set("memory_vms", kbFieldOrUnknown(status["VmSize"]))
	rec.Set("threads", intOrUnknown(status["Threads"]))

	if statRaw, err := runner.ReadFile(filepath.Join(procDir, "stat")); err == nil {
		if st, perr := parseStat(statRaw); perr == nil {
			rec.Set("cpu_time_user", st.UserSeconds)
			rec.Set("cpu_time_system", st.SystemSeconds)
			rec.Set("started", startTime(st.StartTicks))
		} else {
			return nil, perr
		}
	} else {
		rec.Set("cpu_time_user", diag.Unknown)
		rec.Set("cpu_time_system", diag.Unknown)
		rec.Set("started", diag.Unknown)
	}
	return rec, nil
}

// Limits reports the resource limits of one pid from /proc/PID/limits.
func Limits(ctx context.Context, cfg *config.Config, pid int) (*diag.Record, error) {
	if pid < 1 {
		return nil, diag.InvalidArgumentf("process limits", "pid must be a positive integer, got %d", pid)
	}
	raw, err := runner.ReadFile(fmt.Sprintf("/proc/%d/limits", pid))
	if err != nil {
		if diag.IsKind(err, diag.KindNotFound) {
			return nil, diag.NotFoundf("process limits", "process %d not found", pid)
		}
		return nil, err
	}
	rows, err := parseLimits(raw)
	if err != nil {
		return nil, err
	}

	rec := diag.NewRecord("process limits", diag.CategoryProcess)
	rec.Set("pid", pid)
	rec.Set("limits", rows)
	rec.Set("limit_count", len(rows))
	return rec, nil
}

// parsePS parses "pid user pcpu pmem stat args..." rows.
func parsePS(raw string) ([]diag.Fields, error) {
	var rows []diag.Fields
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 6 {
			return nil, diag.Parsef("ps", "short row %q", line)
		}
		pid, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, diag.Parsef("ps", "bad pid %q", fields[0])
		}
		cpu, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, diag.Parsef("ps", "bad cpu percent %q", fields[2])
		}
		mem, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, diag.Parsef("ps", "bad memory percent %q", fields[3])
		}
		command := strings.Join(fields[5:], " ")
		row := diag.Fields{}
		row.Set("pid", pid)
		row.Set("user", fields[1])
		row.Set("cpu_percent", cpu)
		row.Set("memory_percent", mem)
		row.Set("status", fields[4])
		row.Set("name", processName(command))
		row.Set("command", command)
		rows = append(rows, row)
	}
	return rows, nil
}

// processName derives a short name from an args string; kernel threads
// appear bracketed and are kept as-is.
func processName(command string) string {
	first := command
	if i := strings.IndexByte(command, ' '); i >= 0 {
		first = command[:i]
	}
	if strings.HasPrefix(first, "[") {
		return first
	}
	return filepath.Base(first)
}

func parseStatus(raw string) map[string]string {
	out := map[string]string{}
	for _, line := range strings.Split(raw, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		out[key] = strings.TrimSpace(value)
	}
	return out
}

type statInfo struct {
	UserSeconds   float64
	SystemSeconds float64
	StartTicks    int64
}

// parseStat reads /proc/PID/stat. The comm field may contain spaces and
// parentheses, so fields are taken after the last ')'.
func parseStat(raw string) (statInfo, error) {
	closing := strings.LastIndexByte(raw, ')')
	if closing < 0 {
		return statInfo{}, diag.Parsef("/proc/<pid>/stat", "missing comm field")
	}
	fields := strings.Fields(raw[closing+1:])
	// fields[0] is stat field 3 (state); utime/stime/starttime are stat
	// fields 14, 15, and 22
	if len(fields) < 20 {
		return statInfo{}, diag.Parsef("/proc/<pid>/stat", "expected at least 22 fields, got %d", len(fields)+2)
	}
	utime, err := strconv.ParseInt(fields[11], 10, 64)
	if err != nil {
		return statInfo{}, diag.Parsef("/proc/<pid>/stat", "bad utime %q", fields[11])
	}
	stime, err := strconv.ParseInt(fields[12], 10, 64)
	if err != nil {
		return statInfo{}, diag.Parsef("/proc/<pid>/stat", "bad stime %q", fields[12])
	}
	start, err := strconv.ParseInt(fields[19], 10, 64)
	if err != nil {
		return statInfo{}, diag.Parsef("/proc/<pid>/stat", "bad starttime %q", fields[19])
	}
	return statInfo{
		UserSeconds:   float64(utime) / clockTicksPerSecond,
		SystemSeconds: float64(stime) / clockTicksPerSecond,
		StartTicks:    start,
	}, nil
}

// parseLimits splits /proc/PID/limits rows on runs of two or more spaces.
func parseLimits(raw string) ([]diag.Fields, error) {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	if len(lines) < 2 {
		return nil, diag.Parsef("/proc/<pid>/limits", "empty table")
	}
	var rows []diag.Fields
	for _, line := range lines[1:] {
		cols := splitColumns(line)
		if len(cols) < 3 {
			return nil, diag.Parsef("/proc/<pid>/limits", "short row %q", line)
		}
		row := diag.Fields{}
		row.Set("limit", cols[0])
		row.Set("soft", cols[1])
		row.Set("hard", cols[2])
		if len(cols) > 3 {
			row.Set("units", cols[3])
		} else {
			row.Set("units", diag.Unknown)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func splitColumns(line string) []string {
	var cols []string
	for _, part := range strings.Split(line, "  ") {
		part = strings.TrimSpace(part)
		if part != "" {
			cols = append(cols, part)
		}
	}
	return cols
}

func readCmdline(procDir string) string {
	raw, err := runner.ReadFile(filepath.Join(procDir, "cmdline"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(strings.ReplaceAll(raw, "\x00", " "))
}

// startTime converts a starttime tick count into a wall-clock timestamp
// using the kernel boot time from /proc/stat.
func startTime(ticks int64) any {
	raw, err := runner.ReadFile("/proc/stat")
	if err != nil {
		return diag.Unknown
	}
	for _, line := range strings.Split(raw, "\n") {
		if !strings.HasPrefix(line, "btime ") {
			continue
		}
		btime, err := strconv.ParseInt(strings.TrimSpace(strings.TrimPrefix(line, "btime ")), 10, 64)
		if err != nil {
			return diag.Unknown
		}
		return time.Unix(btime+ticks/clockTicksPerSecond, 0).Format("2006-01-02 15:04:05")
	}
	return diag.Unknown
}

func usernameOrUnknown(uidField string) any {
	fields := strings.Fields(uidField)
	if len(fields) == 0 {
		return diag.Unknown
	}
	if u, err := user.LookupId(fields[0]); err == nil {
		return u.Username
	}
	return fields[0]
}

func valueOrUnknown(s string) any {
	if s == "" {
		return diag.Unknown
	}
	return s
}

func intOrUnknown(s string) any {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return diag.Unknown
	}
	return n
}

// kbFieldOrUnknown converts a "1234 kB" status value to bytes.
func kbFieldOrUnknown(s string) any {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return diag.Unknown
	}
	kb, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return diag.Unknown
	}
	return kb * 1024
}
