package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexcodex/sysdiag/diag"
)

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("text")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	_, err = ParseFormat("yaml")
	assert.True(t, diag.IsKind(err, diag.KindInvalidArgument))
}

func TestRenderJSONKeyOrder(t *testing.T) {
	rec := diag.NewRecord("system info", diag.CategorySystem)
	rec.Set("hostname", "web01")
	rec.Set("kernel", "6.8.0")
	rec.Set("uptime_seconds", int64(4711))
	rec.Set("virtualization", diag.Unknown)

	out, err := Render(rec, FormatJSON)
	require.NoError(t, err)

	// insertion order survives serialization
	hi := strings.Index(out, `"hostname"`)
	ki := strings.Index(out, `"kernel"`)
	ui := strings.Index(out, `"uptime_seconds"`)
	assert.True(t, hi >= 0 && hi < ki && ki < ui)
	assert.Contains(t, out, `"virtualization": null`)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "web01", decoded["hostname"])
	assert.Nil(t, decoded["virtualization"])
}

func TestRenderTextPairs(t *testing.T) {
	rec := diag.NewRecord("system info", diag.CategorySystem)
	rec.Set("hostname", "web01")
	rec.Set("load_average", diag.Unknown)

	out, err := Render(rec, FormatText)
	require.NoError(t, err)
	assert.Contains(t, out, "Field")
	assert.Contains(t, out, "Hostname")
	assert.Contains(t, out, "web01")
	assert.Contains(t, out, "Load Average")
	assert.Contains(t, out, "unknown")
}

func TestRenderTextRows(t *testing.T) {
	rows := []diag.Fields{}
	row := diag.Fields{}
	row.Set("unit", "sshd.service")
	row.Set("active", "active")
	rows = append(rows, row)

	rec := diag.NewRecord("service list", diag.CategoryService)
	rec.Set("units", rows)
	rec.Set("running_count", 1)

	out, err := Render(rec, FormatText)
	require.NoError(t, err)
	assert.Contains(t, out, "Unit")
	assert.Contains(t, out, "sshd.service")
	// scalar fields trail the table as key/value lines
	assert.Contains(t, out, "Running Count: 1")
}

func TestRenderTextEmptyRows(t *testing.T) {
	rec := diag.NewRecord("service list", diag.CategoryService)
	rec.Set("units", []diag.Fields{})

	out, err := Render(rec, FormatText)
	require.NoError(t, err)
	assert.Contains(t, out, "(no entries)")
}

func TestCellText(t *testing.T) {
	assert.Equal(t, "unknown", CellText(diag.Unknown))
	assert.Equal(t, "unknown", CellText(nil))
	assert.Equal(t, "true", CellText(true))
	assert.Equal(t, "42", CellText(42))
	assert.Equal(t, "1.5", CellText(1.5))
	assert.Equal(t, "-", CellText([]string{}))
	assert.Equal(t, "a, b", CellText([]string{"a", "b"}))

	nested := diag.Fields{}
	nested.Set("soft", "1024")
	nested.Set("hard", "4096")
	assert.Equal(t, "soft=1024 hard=4096", CellText(nested))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Cpu Percent", titleCase("cpu_percent"))
	assert.Equal(t, "Name", titleCase("name"))
}
