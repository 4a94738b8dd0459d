// Package render serializes diagnostic records as JSON or as bordered
// text tables.
package render

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lexcodex/sysdiag/diag"
)

// Format selects the output rendering.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatText:
		return FormatText, nil
	default:
		return "", diag.InvalidArgumentf("format", "invalid format %q (use json or text)", s)
	}
}

// Render serializes a record in the requested format.
func Render(rec *diag.Record, format Format) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode record: %w", err)
		}
		return string(data), nil
	case FormatText:
		return renderText(rec), nil
	default:
		return "", diag.InvalidArgumentf("format", "invalid format %q", string(format))
	}
}

var headerStyle = lipgloss.NewStyle().Bold(true)

// renderText picks a layout from the record shape: the first row-list field
// becomes a table with one row per entity, remaining scalars trail as
// key/value lines; records without a row list render as a Field/Value table.
func renderText(rec *diag.Record) string {
	rowsName := ""
	var rows []diag.Fields
	for _, fld := range rec.Fields {
		if rl, ok := fld.Value.([]diag.Fields); ok {
			rowsName = fld.Name
			rows = rl
			break
		}
	}
	if rowsName == "" {
		return renderPairs(rec.Fields)
	}

	var b strings.Builder
	b.WriteString(renderRows(rows))
	for _, fld := range rec.Fields {
		if fld.Name == rowsName {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", titleCase(fld.Name), CellText(fld.Value))
	}
	return b.String()
}

func renderPairs(fields diag.Fields) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle()
		}).
		Headers("Field", "Value")
	for _, fld := range fields {
		t.Row(titleCase(fld.Name), CellText(fld.Value))
	}
	return t.Render() + "\n"
}

func renderRows(rows []diag.Fields) string {
	if len(rows) == 0 {
		return "(no entries)\n"
	}
	names := rows[0].Names()
	headers := make([]string, len(names))
	for i, n := range names {
		headers[i] = titleCase(n)
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle()
		}).
		Headers(headers...)
	for _, row := range rows {
		cells := make([]string, len(names))
		for i, n := range names {
			v, _ := row.Get(n)
			cells[i] = CellText(v)
		}
		t.Row(cells...)
	}
	return t.Render() + "\n"
}

// CellText renders one field value for table output. The unknown marker
// becomes the literal "unknown"; the JSON rendering keeps it null.
func CellText(v any) string {
	switch val := v.(type) {
	case nil:
		return "unknown"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []string:
		if len(val) == 0 {
			return "-"
		}
		return strings.Join(val, ", ")
	case diag.Fields:
		parts := make([]string, 0, len(val))
		for _, fld := range val {
			parts = append(parts, fld.Name+"="+CellText(fld.Value))
		}
		return strings.Join(parts, " ")
	default:
		if diag.IsUnknown(v) {
			return "unknown"
		}
		return fmt.Sprint(v)
	}
}

// titleCase turns snake_case field names into table headers.
func titleCase(name string) string {
	parts := strings.Split(name, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
