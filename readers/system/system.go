// Package system reads host-level diagnostics: identity, CPU, memory,
// filesystem usage, and hardware inventory.
package system

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lexcodex/sysdiag/config"
	"github.com/lexcodex/sysdiag/diag"
	"github.com/lexcodex/sysdiag/runner"
)

// Info reports OS identity, kernel, architecture, and uptime.
func Info(ctx context.Context, cfg *config.Config) (*diag.Record, error) {
	rec := diag.NewRecord("system info", diag.CategorySystem)
	timeout := cfg.CommandTimeout(string(diag.CategorySystem))

	rec.Set("hostname", fileLineOrUnknown("/proc/sys/kernel/hostname"))

	var name, version any = diag.Unknown, diag.Unknown
	if raw, err := runner.ReadFile("/etc/os-release"); err == nil {
		osRelease := parseOSRelease(raw)
		if v, ok := osRelease["NAME"]; ok {
			name = v
		}
		if v, ok := osRelease["VERSION"]; ok {
			version = v
		}
	}
	rec.Set("os", name)
	rec.Set("os_version", version)

	rec.Set("kernel", fileLineOrUnknown("/proc/sys/kernel/osrelease"))
	rec.Set("architecture", commandLineOrUnknown(ctx, "uname", []string{"-m"}, timeout))
	rec.Set("uptime", commandLineOrUnknown(ctx, "uptime", []string{"-p"}, timeout))
	rec.Set("boot_time", commandLineOrUnknown(ctx, "uptime", []string{"-s"}, timeout))
	return rec, nil
}

// CPU reports model, core counts, frequency, and load averages.
func CPU(ctx context.Context, cfg *config.Config) (*diag.Record, error) {
	raw, err := runner.ReadFile("/proc/cpuinfo")
	if err != nil {
		return nil, err
	}
	info := parseCPUInfo(raw)

	rec := diag.NewRecord("system cpu", diag.CategorySystem)
	rec.Set("cpu_model", info.Model)
	rec.Set("physical_cores", info.PhysicalCores)
	rec.Set("logical_cores", info.LogicalCores)
	if info.FreqMHz > 0 {
		rec.Set("cpu_freq_current", info.FreqMHz)
	} else {
		rec.Set("cpu_freq_current", diag.Unknown)
	}
	rec.Set("cpu_freq_min", cpufreqMHzOrUnknown("/sys/devices/system/cpu/cpu0/cpufreq/cpuinfo_min_freq"))
	rec.Set("cpu_freq_max", cpufreqMHzOrUnknown("/sys/devices/system/cpu/cpu0/cpufreq/cpuinfo_max_freq"))

	loadRaw, err := runner.ReadFile("/proc/loadavg")
	if err != nil {
		return nil, err
	}
	load1, load5, load15, err := parseLoadAvg(loadRaw)
	if err != nil {
		return nil, err
	}
	rec.Set("load_average_1m", load1)
	rec.Set("load_average_5m", load5)
	rec.Set("load_average_15m", load15)
	return rec, nil
}

// Memory reports RAM and swap usage from /proc/meminfo.
func Memory(ctx context.Context, cfg *config.Config) (*diag.Record, error) {
	raw, err := runner.ReadFile("/proc/meminfo")
	if err != nil {
		return nil, err
	}
	mem, err := parseMeminfo(raw)
	if err != nil {
		return nil, err
	}

	ramUsed := mem.Total - mem.Available
	swapUsed := mem.SwapTotal - mem.SwapFree

	rec := diag.NewRecord("system memory", diag.CategorySystem)
	rec.Set("ram_total", mem.Total)
	rec.Set("ram_available", mem.Available)
	rec.Set("ram_used", ramUsed)
	rec.Set("ram_used_percent", percent(ramUsed, mem.Total))
	rec.Set("ram_free", mem.Free)
	rec.Set("swap_total", mem.SwapTotal)
	rec.Set("swap_used", swapUsed)
	rec.Set("swap_used_percent", percent(swapUsed, mem.SwapTotal))
	rec.Set("swap_free", mem.SwapFree)
	return rec, nil
}

// Disk reports filesystem usage and mount points via df.
func Disk(ctx context.Context, cfg *config.Config) (*diag.Record, error) {
	res, err := runner.Run(ctx, runner.Spec{
		Program: "df",
		Args:    []string{"-kP"},
		Timeout: cfg.CommandTimeout(string(diag.CategorySystem)),
	})
	if err != nil {
		return nil, err
	}
	rows, err := parseDF(res.Stdout)
	if err != nil {
		return nil, err
	}
	rec := diag.NewRecord("system disk", diag.CategorySystem)
	rec.Set("filesystems", rows)
	rec.Set("filesystem_count", len(rows))
	return rec, nil
}

// Hardware reports CPU topology from lscpu plus DMI vendor strings.
func Hardware(ctx context.Context, cfg *config.Config) (*diag.Record, error) {
	res, err := runner.Run(ctx, runner.Spec{
		Program: "lscpu",
		Timeout: cfg.CommandTimeout(string(diag.CategorySystem)),
	})
	if err != nil {
		return nil, err
	}
	lscpu := parseKeyValueColon(res.Stdout)

	rec := diag.NewRecord("system hardware", diag.CategorySystem)
	rec.Set("system_vendor", fileLineOrUnknown("/sys/class/dmi/id/sys_vendor"))
	rec.Set("product_name", fileLineOrUnknown("/sys/class/dmi/id/product_name"))
	rec.Set("bios_version", fileLineOrUnknown("/sys/class/dmi/id/bios_version"))
	rec.Set("architecture", stringOrUnknown(lscpu["Architecture"]))
	rec.Set("cpu_model", stringOrUnknown(lscpu["Model name"]))
	rec.Set("cpu_vendor", stringOrUnknown(lscpu["Vendor ID"]))
	rec.Set("cpu_count", intOrUnknown(lscpu["CPU(s)"]))
	rec.Set("sockets", intOrUnknown(lscpu["Socket(s)"]))
	rec.Set("threads_per_core", intOrUnknown(lscpu["Thread(s) per core"]))
	rec.Set("virtualization", stringOrUnknown(lscpu["Virtualization"]))
	return rec, nil
}

type cpuInfo struct {
	Model         string
	PhysicalCores int
	LogicalCores  int
	FreqMHz       float64
}

func parseCPUInfo(raw string) cpuInfo {
	info := cpuInfo{Model: "unknown"}
	cores := map[string]bool{}
	physicalID, coreID := "", ""
	flush := func() {
		if physicalID != "" || coreID != "" {
			cores[physicalID+"/"+coreID] = true
		}
		physicalID, coreID = "", ""
	}
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "processor":
			info.LogicalCores++
		case "model name":
			if info.Model == "unknown" {
				info.Model = value
			}
		case "cpu MHz":
			if info.FreqMHz == 0 {
				if f, err := strconv.ParseFloat(value, 64); err == nil {
					info.FreqMHz = round2(f)
				}
			}
		case "physical id":
			physicalID = value
		case "core id":
			coreID = value
		}
	}
	flush()
	info.PhysicalCores = len(cores)
	if info.PhysicalCores == 0 {
		info.PhysicalCores = info.LogicalCores
	}
	return info
}

func parseLoadAvg(raw string) (float64, float64, float64, error) {
	fields := strings.Fields(raw)
	if len(fields) < 3 {
		return 0, 0, 0, diag.Parsef("/proc/loadavg", "expected 3 load averages, got %q", strings.TrimSpace(raw))
	}
	var loads [3]float64
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return 0, 0, 0, diag.Parsef("/proc/loadavg", "bad load average %q", fields[i])
		}
		loads[i] = f
	}
	return loads[0], loads[1], loads[2], nil
}

type meminfo struct {
	Total     int64
	Available int64
	Free      int64
	SwapTotal int64
	SwapFree  int64
}

func parseMeminfo(raw string) (meminfo, error) {
	values := map[string]int64{}
	for _, line := range strings.Split(raw, "\n") {
		key, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		kb, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			continue
		}
		values[strings.TrimSpace(key)] = kb * 1024
	}
	total, ok := values["MemTotal"]
	if !ok {
		return meminfo{}, diag.Parsef("/proc/meminfo", "MemTotal missing")
	}
	return meminfo{
		Total:     total,
		Available: values["MemAvailable"],
		Free:      values["MemFree"],
		SwapTotal: values["SwapTotal"],
		SwapFree:  values["SwapFree"],
	}, nil
}

func parseDF(raw string) ([]diag.Fields, error) {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	if len(lines) < 1 {
		return nil, diag.Parsef("df", "empty output")
	}
	var rows []diag.Fields
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) < 6 {
			continue
		}
		blocks, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, diag.Parsef("df", "bad block count %q", fields[1])
		}
		used, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return nil, diag.Parsef("df", "bad used count %q", fields[2])
		}
		avail, err := strconv.ParseInt(fields[3], 10, 64)
		if err != nil {
			return nil, diag.Parsef("df", "bad available count %q", fields[3])
		}
		pct, err := strconv.ParseFloat(strings.TrimSuffix(fields[4], "%"), 64)
		if err != nil {
			return nil, diag.Parsef("df", "bad capacity %q", fields[4])
		}
		row := diag.Fields{}
		row.Set("filesystem", fields[0])
		row.Set("size", HumanSize(blocks*1024))
		row.Set("size_bytes", blocks*1024)
		row.Set("used", HumanSize(used*1024))
		row.Set("used_bytes", used*1024)
		row.Set("available", HumanSize(avail*1024))
		row.Set("available_bytes", avail*1024)
		row.Set("use_percent", pct)
		// mount points may contain spaces
		row.Set("mounted_on", strings.Join(fields[5:], " "))
		rows = append(rows, row)
	}
	return rows, nil
}

func parseOSRelease(raw string) map[string]string {
	out := map[string]string{}
	for _, line := range strings.Split(raw, "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		out[strings.TrimSpace(key)] = strings.Trim(strings.TrimSpace(value), `"`)
	}
	return out
}

func parseKeyValueColon(raw string) map[string]string {
	out := map[string]string{}
	for _, line := range strings.Split(raw, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return out
}

// HumanSize formats bytes the way df -h does: 1024 base, one decimal.
func HumanSize(n int64) string {
	size := float64(n)
	for _, unit := range []string{"", "K", "M", "G", "T"} {
		if size < 1024 {
			return fmt.Sprintf("%.1f%s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1fP", size)
}

func percent(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return round2(float64(part) / float64(total) * 100)
}

func round2(f float64) float64 {
	return float64(int64(f*100+0.5)) / 100
}

func fileLineOrUnknown(path string) any {
	raw, err := runner.ReadFile(path)
	if err != nil {
		return diag.Unknown
	}
	return strings.TrimSpace(raw)
}

func commandLineOrUnknown(ctx context.Context, program string, args []string, timeout time.Duration) any {
	res, err := runner.Run(ctx, runner.Spec{Program: program, Args: args, Timeout: timeout})
	if err != nil {
		return diag.Unknown
	}
	return strings.TrimSpace(res.Stdout)
}

func cpufreqMHzOrUnknown(path string) any {
	raw, err := runner.ReadFile(path)
	if err != nil {
		return diag.Unknown
	}
	khz, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return diag.Unknown
	}
	return round2(khz / 1000)
}

func stringOrUnknown(s string) any {
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
