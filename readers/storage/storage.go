// Package storage reads block device inventory and directory usage.
package storage

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/lexcodex/sysdiag/config"
	"github.com/lexcodex/sysdiag/diag"
	"github.com/lexcodex/sysdiag/readers/system"
	"github.com/lexcodex/sysdiag/runner"
)

// Sort keys accepted by ListDir.
const (
	SortSize     = "size"
	SortName     = "name"
	SortModified = "modified"
)

// Devices lists block devices via lsblk pair output, which survives values
// containing spaces (device models, mount points).
func Devices(ctx context.Context, cfg *config.Config) (*diag.Record, error) {
	res, err := runner.Run(ctx, runner.Spec{
		Program: "lsblk",
		Args:    []string{"-Pno", "NAME,TYPE,SIZE,RO,FSTYPE,MOUNTPOINT,MODEL"},
		Timeout: cfg.CommandTimeout(string(diag.CategoryStorage)),
	})
	if err != nil {
		return nil, err
	}
	rows, err := parseLsblk(res.Stdout)
	if err != nil {
		return nil, err
	}

	rec := diag.NewRecord("storage devices", diag.CategoryStorage)
	rec.Set("devices", rows)
	rec.Set("device_count", len(rows))
	return rec, nil
}

// ListDir lists the entries of a directory sorted by the given key,
// truncated to the top N after the full sort. Ties always break by name
// ascending so repeated calls are stable.
func ListDir(ctx context.Context, cfg *config.Config, path, sortKey string, top int) (*diag.Record, error) {
	if strings.TrimSpace(path) == "" {
		return nil, diag.InvalidArgumentf("storage list-dir", "path required")
	}
	if sortKey != SortSize && sortKey != SortName && sortKey != SortModified {
		return nil, diag.InvalidArgumentf("storage list-dir",
			"invalid sort key %q (use size, name, or modified)", sortKey)
	}
	if top <= 0 {
		return nil, diag.InvalidArgumentf("storage list-dir", "top must be positive, got %d", top)
	}

	dirEntries, err := runner.ReadDir(path)
	if err != nil {
		return nil, err
	}

	type entry struct {
		name     string
		kind     string
		size     int64
		modified int64
		modText  any
	}
	entries := make([]entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		e := entry{name: de.Name(), kind: entryKind(de), modText: diag.Unknown}
		if info, err := de.Info(); err == nil {
			e.size = info.Size()
			e.modified = info.ModTime().Unix()
			e.modText = info.ModTime().Format("2006-01-02 15:04:05")
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch sortKey {
		case SortSize:
			if a.size != b.size {
				return a.size > b.size
			}
		case SortModified:
			if a.modified != b.modified {
				return a.modified > b.modified
			}
		}
		return a.name < b.name
	})

	total := len(entries)
	if len(entries) > top {
		entries = entries[:top]
	}
	rows := make([]diag.Fields, 0, len(entries))
	for _, e := range entries {
		row := diag.Fields{}
		row.Set("name", e.name)
		row.Set("type", e.kind)
		row.Set("size", e.size)
		row.Set("size_human", system.HumanSize(e.size))
		row.Set("modified", e.modText)
		rows = append(rows, row)
	}

	rec := diag.NewRecord("storage list-dir", diag.CategoryStorage)
	rec.Set("path", path)
	rec.Set("sorted_by", sortKey)
	rec.Set("entries", rows)
	rec.Set("entry_count", total)
	return rec, nil
}

// parseLsblk parses KEY="VALUE" pair rows.
func parseLsblk(raw string) ([]diag.Fields, error) {
	var rows []diag.Fields
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		pairs, err := parsePairs(line)
		if err != nil {
			return nil, err
		}
		row := diag.Fields{}
		row.Set("name", pairs["NAME"])
		row.Set("type", pairs["TYPE"])
		row.Set("size", pairs["SIZE"])
		row.Set("read_only", pairs["RO"] == "1")
		row.Set("fstype", valueOrUnknown(pairs["FSTYPE"]))
		row.Set("mountpoint", valueOrUnknown(pairs["MOUNTPOINT"]))
		row.Set("model", valueOrUnknown(pairs["MODEL"]))
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, diag.Parsef("lsblk", "no devices in output")
	}
	return rows, nil
}

// parsePairs scans one lsblk -P line of KEY="VALUE" tokens.
func parsePairs(line string) (map[string]string, error) {
	pairs := map[string]string{}
	rest := strings.TrimSpace(line)
	for rest != "" {
		eq := strings.IndexByte(rest, '=')
		if eq < 0 || eq+1 >= len(rest) || rest[eq+1] != '"' {
			return nil, diag.Parsef("lsblk", "malformed pair row %q", line)
		}
		key := rest[:eq]
		end := strings.IndexByte(rest[eq+2:], '"')
		if end < 0 {
			return nil, diag.Parsef("lsblk", "unterminated value in %q", line)
		}
		pairs[key] = rest[eq+2 : eq+2+end]
		rest = strings.TrimSpace(rest[eq+2+end+1:])
	}
	return pairs, nil
}

func entryKind(de os.DirEntry) string {
	switch {
	case de.IsDir():
		return "dir"
	case de.Type()&os.ModeSymlink != 0:
		return "symlink"
	case de.Type().IsRegular():
		return "file"
	default:
		return "other"
	}
}

func valueOrUnknown(s string) any {
	if s == "" {
		return diag.Unknown
	}
	return s
}
