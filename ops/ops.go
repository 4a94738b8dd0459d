// Package ops aggregates the closed diagnostic operation set. The manual
// generator and the interactive shell both discover operations here, so the
// registry and the CLI can never drift apart silently.
package ops

import (
	"github.com/lexcodex/sysdiag/config"
	"github.com/lexcodex/sysdiag/diag"
	"github.com/lexcodex/sysdiag/readers/logs"
	"github.com/lexcodex/sysdiag/readers/network"
	"github.com/lexcodex/sysdiag/readers/process"
	"github.com/lexcodex/sysdiag/readers/service"
	"github.com/lexcodex/sysdiag/readers/storage"
	"github.com/lexcodex/sysdiag/readers/system"
)

// All returns every diagnostic operation in category order.
func All(cfg *config.Config) []diag.Operation {
	var out []diag.Operation
	out = append(out, system.Operations(cfg)...)
	out = append(out, service.Operations(cfg)...)
	out = append(out, process.Operations(cfg)...)
	out = append(out, network.Operations(cfg)...)
	out = append(out, logs.Operations(cfg)...)
	out = append(out, storage.Operations(cfg)...)
	return out
}

// Find looks up one operation by CLI path (e.g. "system info").
func Find(cfg *config.Config, name string) (diag.Operation, bool) {
	for _, op := range All(cfg) {
		if op.Name == name {
			return op, true
		}
	}
	return diag.Operation{}, false
}
