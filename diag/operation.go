package diag

import (
	"context"
	"fmt"
	"strconv"
)

// Param describes one caller-supplied argument of an operation. The metadata
// doubles as the input schema exported in the tool manual.
type Param struct {
	Name        string
	Type        string // "string" or "integer"
	Description string
	Required    bool
	Default     any
	Positional  bool // rendered as a CLI argument instead of a flag
}

// RunFunc invokes a reader with loosely typed arguments. Implementations
// validate every argument before use.
type RunFunc func(ctx context.Context, args map[string]any) (*Record, error)

// Operation is one entry of the closed diagnostic set: CLI path, manual
// metadata, parameter schema, and the reader that implements it.
type Operation struct {
	Name        string // CLI path, e.g. "system info"
	Tool        string // manual tool name, e.g. "get_system_info"
	Category    Category
	Description string
	Tags        []string
	Params      []Param
	Run         RunFunc
}

// StringArg extracts a string argument.
func StringArg(args map[string]any, name string) (string, bool) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return "", false
	}
	s, ok := raw.(string)
	if !ok {
		return fmt.Sprint(raw), true
	}
	return s, true
}

// IntArg extracts an integer argument, accepting the numeric shapes JSON
// decoding and CLI parsing produce.
func IntArg(args map[string]any, name string) (int, bool, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case int:
		return v, true, nil
	case int64:
		return int(v), true, nil
	case float64:
		if v != float64(int(v)) {
			return 0, true, InvalidArgumentf(name, "expected an integer, got %v", v)
		}
		return int(v), true, nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, true, InvalidArgumentf(name, "expected an integer, got %q", v)
		}
		return n, true, nil
	default:
		return 0, true, InvalidArgumentf(name, "expected an integer, got %T", raw)
	}
}
