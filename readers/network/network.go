// Package network reads interface, socket, and routing diagnostics from
// the ip and ss utilities.
package network

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/lexcodex/sysdiag/config"
	"github.com/lexcodex/sysdiag/diag"
	"github.com/lexcodex/sysdiag/runner"
)

// Interfaces lists network interfaces with state, MTU, MAC, and addresses.
func Interfaces(ctx context.Context, cfg *config.Config) (*diag.Record, error) {
	timeout := cfg.CommandTimeout(string(diag.CategoryNetwork))
	linkRes, err := runner.Run(ctx, runner.Spec{
		Program: "ip", Args: []string{"-o", "link", "show"}, Timeout: timeout,
	})
	if err != nil {
		return nil, err
	}
	addrRes, err := runner.Run(ctx, runner.Spec{
		Program: "ip", Args: []string{"-o", "addr", "show"}, Timeout: timeout,
	})
	if err != nil {
		return nil, err
	}
	rows, err := parseInterfaces(linkRes.Stdout, addrRes.Stdout)
	if err != nil {
		return nil, err
	}

	rec := diag.NewRecord("network interfaces", diag.CategoryNetwork)
	rec.Set("interfaces", rows)
	rec.Set("interface_count", len(rows))
	return rec, nil
}

// Ports lists listening TCP and UDP sockets. Sockets whose owning process
// cannot be resolved (usually a permissions issue) keep an unknown process.
func Ports(ctx context.Context, cfg *config.Config) (*diag.Record, error) {
	res, err := runner.Run(ctx, runner.Spec{
		Program: "ss",
		Args:    []string{"-H", "-tulnp"},
		Timeout: cfg.CommandTimeout(string(diag.CategoryNetwork)),
	})
	if err != nil {
		return nil, err
	}
	rows, err := parsePorts(res.Stdout)
	if err != nil {
		return nil, err
	}

	rec := diag.NewRecord("network ports", diag.CategoryNetwork)
	rec.Set("listening_ports", rows)
	rec.Set("total_count", len(rows))
	return rec, nil
}

// Routes lists the kernel routing table.
func Routes(ctx context.Context, cfg *config.Config) (*diag.Record, error) {
	res, err := runner.Run(ctx, runner.Spec{
		Program: "ip",
		Args:    []string{"-o", "route", "show"},
		Timeout: cfg.CommandTimeout(string(diag.CategoryNetwork)),
	})
	if err != nil {
		return nil, err
	}
	rows := parseRoutes(res.Stdout)

	rec := diag.NewRecord("network routes", diag.CategoryNetwork)
	rec.Set("routes", rows)
	rec.Set("route_count", len(rows))
	return rec, nil
}

// Connections lists established TCP connections.
func Connections(ctx context.Context, cfg *config.Config) (*diag.Record, error) {
	res, err := runner.Run(ctx, runner.Spec{
		Program: "ss",
		Args:    []string{"-H", "-tan"},
		Timeout: cfg.CommandTimeout(string(diag.CategoryNetwork)),
	})
	if err != nil {
		return nil, err
	}
	rows, err := parseConnections(res.Stdout)
	if err != nil {
		return nil, err
	}

	rec := diag.NewRecord("network connections", diag.CategoryNetwork)
	rec.Set("connections", rows)
	rec.Set("connection_count", len(rows))
	return rec, nil
}

type ifaceEntry struct {
	fields diag.Fields
	v4     []string
	v6     []string
}

// parseInterfaces merges one-line ip link and ip addr output.
func parseInterfaces(linkRaw, addrRaw string) ([]diag.Fields, error) {
	var order []string
	entries := map[string]*ifaceEntry{}

	for _, line := range strings.Split(linkRaw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		name := strings.TrimSuffix(fields[1], ":")
		if i := strings.IndexByte(name, '@'); i >= 0 {
			name = name[:i]
		}
		entry := &ifaceEntry{fields: diag.Fields{}}
		entry.fields.Set("name", name)
		entry.fields.Set("state", tokenAfter(fields, "state"))
		entry.fields.Set("mtu", intTokenAfter(fields, "mtu"))
		macSet := false
		for i, f := range fields {
			if strings.HasPrefix(f, "link/") && i+1 < len(fields) {
				if addr := fields[i+1]; strings.Contains(addr, ":") {
					entry.fields.Set("mac", addr)
					macSet = true
				}
				break
			}
		}
		if !macSet {
			entry.fields.Set("mac", diag.Unknown)
		}
		entries[name] = entry
		order = append(order, name)
	}
	if len(order) == 0 {
		return nil, diag.Parsef("ip link", "no interfaces in output")
	}

	for _, line := range strings.Split(addrRaw, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		name := fields[1]
		if i := strings.IndexByte(name, '@'); i >= 0 {
			name = name[:i]
		}
		entry, ok := entries[name]
		if !ok {
			continue
		}
		switch fields[2] {
		case "inet":
			entry.v4 = append(entry.v4, fields[3])
		case "inet6":
			entry.v6 = append(entry.v6, fields[3])
		}
	}

	rows := make([]diag.Fields, 0, len(order))
	for _, name := range order {
		entry := entries[name]
		entry.fields.Set("ipv4_addresses", entry.v4)
		entry.fields.Set("ipv6_addresses", entry.v6)
		rows = append(rows, entry.fields)
	}
	return rows, nil
}

var processRe = regexp.MustCompile(`\("([^"]+)",pid=(\d+)`)

// parsePorts parses ss -tulnp rows: netid, state, queues, local, peer, and
// an optional users:(...) process column.
func parsePorts(raw string) ([]diag.Fields, error) {
	var rows []diag.Fields
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 5 {
			return nil, diag.Parsef("ss", "short row %q", line)
		}
		proto := strings.ToLower(fields[0])
		address, port, err := splitHostPort(fields[4])
		if err != nil {
			return nil, err
		}
		row := diag.Fields{}
		row.Set("protocol", proto)
		row.Set("state", fields[1])
		row.Set("address", address)
		row.Set("port", port)
		var process, pid any = diag.Unknown, diag.Unknown
		if m := processRe.FindStringSubmatch(line); m != nil {
			process = m[1]
			if n, err := strconv.Atoi(m[2]); err == nil {
				pid = n
			}
		}
		row.Set("pid", pid)
		row.Set("process", process)
		rows = append(rows, row)
	}
	return rows, nil
}

// parseRoutes parses one-line ip route output: a destination followed by
// key/value attribute pairs.
func parseRoutes(raw string) []diag.Fields {
	var rows []diag.Fields
	for _, line := range strings.Split(raw, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		attrs := map[string]string{}
		for i := 1; i+1 < len(fields); i += 2 {
			attrs[fields[i]] = fields[i+1]
		}
		row := diag.Fields{}
		row.Set("destination", fields[0])
		row.Set("gateway", attrOrUnknown(attrs, "via"))
		row.Set("device", attrOrUnknown(attrs, "dev"))
		row.Set("protocol", attrOrUnknown(attrs, "proto"))
		row.Set("scope", attrOrUnknown(attrs, "scope"))
		row.Set("source", attrOrUnknown(attrs, "src"))
		if v, ok := attrs["metric"]; ok {
			if n, err := strconv.Atoi(v); err == nil {
				row.Set("metric", n)
			} else {
				row.Set("metric", diag.Unknown)
			}
		} else {
			row.Set("metric", diag.Unknown)
		}
		rows = append(rows, row)
	}
	return rows
}

// parseConnections keeps established rows of ss -tan output.
func parseConnections(raw string) ([]diag.Fields, error) {
	var rows []diag.Fields
	for _, line := range strings.Split(raw, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 5 || fields[0] != "ESTAB" {
			continue
		}
		recvQ, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, diag.Parsef("ss", "bad recv queue %q", fields[1])
		}
		sendQ, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, diag.Parsef("ss", "bad send queue %q", fields[2])
		}
		localAddr, localPort, err := splitHostPort(fields[3])
		if err != nil {
			return nil, err
		}
		peerAddr, peerPort, err := splitHostPort(fields[4])
		if err != nil {
			return nil, err
		}
		row := diag.Fields{}
		row.Set("state", "established")
		row.Set("recv_queue", recvQ)
		row.Set("send_queue", sendQ)
		row.Set("local_address", localAddr)
		row.Set("local_port", localPort)
		row.Set("peer_address", peerAddr)
		row.Set("peer_port", peerPort)
		rows = append(rows, row)
	}
	return rows, nil
}

// splitHostPort splits an ss address on the last colon, keeping IPv6
// bracket/wildcard forms intact on the host side.
func splitHostPort(s string) (string, int, error) {
	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		return "", 0, diag.Parsef("ss", "address without port %q", s)
	}
	port, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return "", 0, diag.Parsef("ss", "bad port in %q", s)
	}
	return s[:i], port, nil
}

func tokenAfter(fields []string, key string) any {
	for i, f := range fields {
		if f == key && i+1 < len(fields) {
			return fields[i+1]
		}
	}
	return diag.Unknown
}

func intTokenAfter(fields []string, key string) any {
	v := tokenAfter(fields, key)
	s, ok := v.(string)
	if !ok {
		return diag.Unknown
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return diag.Unknown
	}
	return n
}

func attrOrUnknown(attrs map[string]string, key string) any {
	if v, ok := attrs[key]; ok && v != "" {
		return v
	}
	return diag.Unknown
}
