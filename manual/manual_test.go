package manual

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexcodex/sysdiag/config"
	"github.com/lexcodex/sysdiag/ops"
)

func TestBuildDescribesEveryOperation(t *testing.T) {
	cfg := config.Default()
	doc := Build(cfg)

	assert.Equal(t, "sysdiag", doc.Name)
	assert.Equal(t, Version, doc.ManualVersion)
	assert.NotEmpty(t, doc.Description)
	assert.Len(t, doc.Tools, len(ops.All(cfg)))
	require.NoError(t, Verify(cfg, doc))
}

func TestBuildInputSchemas(t *testing.T) {
	doc := Build(config.Default())

	byName := map[string]Descriptor{}
	for _, tool := range doc.Tools {
		byName[tool.Name] = tool
	}

	logs, ok := byName["get_service_logs"]
	require.True(t, ok)
	assert.Equal(t, "object", logs.Inputs["type"])

	props, ok := logs.Inputs["properties"].(map[string]any)
	require.True(t, ok)
	name, ok := props["service_name"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", name["type"])
	lines, ok := props["lines"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 50, lines["default"])

	required, ok := logs.Inputs["required"].([]string)
	require.True(t, ok)
	assert.Equal(t, []string{"service_name"}, required)

	// no params means no required list
	info, ok := byName["get_system_info"]
	require.True(t, ok)
	_, hasRequired := info.Inputs["required"]
	assert.False(t, hasRequired)
}

func TestCallCommands(t *testing.T) {
	doc := Build(config.Default())
	byName := map[string]string{}
	for _, tool := range doc.Tools {
		byName[tool.Name] = tool.Call.Command
	}

	assert.Equal(t, "sysdiag system info --format json", byName["get_system_info"])
	assert.Equal(t, "sysdiag service logs <service_name> [--lines <integer>] --format json",
		byName["get_service_logs"])
	assert.Equal(t, "sysdiag process info <pid> --format json", byName["get_process_info"])
}

func TestVerifyDetectsDrift(t *testing.T) {
	cfg := config.Default()
	doc := Build(cfg)

	extra := doc
	extra.Tools = append(append([]Descriptor{}, doc.Tools...), Descriptor{Name: "reboot_host"})
	err := Verify(cfg, extra)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reboot_host")

	truncated := doc
	truncated.Tools = doc.Tools[:len(doc.Tools)-1]
	err = Verify(cfg, truncated)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not described")

	duplicated := doc
	duplicated.Tools = append(append([]Descriptor{}, doc.Tools...), doc.Tools[0])
	err = Verify(cfg, duplicated)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestWriteRead(t *testing.T) {
	cfg := config.Default()
	doc := Build(cfg)
	path := filepath.Join(t.TempDir(), "manuals", "sysdiag.json")

	require.NoError(t, Write(doc, path))

	loaded, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Name, loaded.Name)
	assert.Equal(t, doc.ManualVersion, loaded.ManualVersion)
	require.Len(t, loaded.Tools, len(doc.Tools))
	assert.Equal(t, doc.Tools[0].Name, loaded.Tools[0].Name)
	require.NoError(t, Verify(cfg, loaded))
}
