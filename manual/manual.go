// Package manual builds the declarative tool manifest consumed by external
// tool-calling agent frameworks. The manifest is generated offline from the
// same operation registry the CLI dispatches on, and Verify enforces the
// 1:1 correspondence between the two.
package manual

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lexcodex/sysdiag/config"
	"github.com/lexcodex/sysdiag/diag"
	"github.com/lexcodex/sysdiag/ops"
)

// Version is the manifest document version.
const Version = "1.0.0"

// CallTemplate tells an agent how to invoke one tool.
type CallTemplate struct {
	Command string `json:"command"`
}

// Descriptor is one manifest entry.
type Descriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Tags        []string       `json:"tags"`
	Inputs      map[string]any `json:"inputs"`
	Call        CallTemplate   `json:"call"`
}

// Document is the whole manifest.
type Document struct {
	Name          string       `json:"name"`
	ManualVersion string       `json:"manual_version"`
	Description   string       `json:"description"`
	Tools         []Descriptor `json:"tools"`
}

// Build walks the operation registry and produces the manifest document.
func Build(cfg *config.Config) Document {
	operations := ops.All(cfg)
	tools := make([]Descriptor, 0, len(operations))
	for _, op := range operations {
		tools = append(tools, Descriptor{
			Name:        op.Tool,
			Description: op.Description,
			Tags:        op.Tags,
			Inputs:      inputSchema(op.Params),
			Call:        CallTemplate{Command: callCommand(op)},
		})
	}
	return Document{
		Name:          "sysdiag",
		ManualVersion: Version,
		Description:   "Linux system diagnostics toolkit providing read-only diagnostic tools for system administration and troubleshooting",
		Tools:         tools,
	}
}

// inputSchema converts parameter metadata into a JSON-schema object.
func inputSchema(params []diag.Param) map[string]any {
	properties := map[string]any{}
	var required []string
	for _, p := range params {
		prop := map[string]any{
			"type":        p.Type,
			"description": p.Description,
		}
		if p.Default != nil {
			prop["default"] = p.Default
		}
		properties[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// callCommand renders the CLI invocation template for one operation.
func callCommand(op diag.Operation) string {
	var b strings.Builder
	b.WriteString("sysdiag ")
	b.WriteString(op.Name)
	for _, p := range op.Params {
		if p.Positional {
			fmt.Fprintf(&b, " <%s>", p.Name)
		}
	}
	for _, p := range op.Params {
		if !p.Positional {
			fmt.Fprintf(&b, " [--%s <%s>]", p.Name, p.Type)
		}
	}
	b.WriteString(" --format json")
	return b.String()
}

// Verify checks that the document and the operation registry are in 1:1
// correspondence: every operation described, nothing extra, no duplicates.
func Verify(cfg *config.Config, doc Document) error {
	want := map[string]bool{}
	for _, op := range ops.All(cfg) {
		want[op.Tool] = true
	}
	seen := map[string]bool{}
	for _, tool := range doc.Tools {
		if seen[tool.Name] {
			return fmt.Errorf("manual: duplicate tool %q", tool.Name)
		}
		seen[tool.Name] = true
		if !want[tool.Name] {
			return fmt.Errorf("manual: tool %q has no implemented operation", tool.Name)
		}
	}
	var missing []string
	for name := range want {
		if !seen[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("manual: operations not described: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Write serializes the document to path, creating parent directories.
func Write(doc Document, path string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manual: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create manual directory: %w", err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write manual: %w", err)
	}
	return nil
}

// Read loads a manifest document from disk.
func Read(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read manual: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("parse manual: %w", err)
	}
	return doc, nil
}
