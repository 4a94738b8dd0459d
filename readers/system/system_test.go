package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexcodex/sysdiag/diag"
)

const sampleCPUInfo = `processor	: 0
vendor_id	: GenuineIntel
model name	: Intel(R) Xeon(R) CPU E5-2680 v4 @ 2.40GHz
cpu MHz		: 2400.000
physical id	: 0
core id		: 0

processor	: 1
vendor_id	: GenuineIntel
model name	: Intel(R) Xeon(R) CPU E5-2680 v4 @ 2.40GHz
cpu MHz		: 2400.000
physical id	: 0
core id	: 1

processor	: 2
model name	: Intel(R) Xeon(R) CPU E5-2680 v4 @ 2.40GHz
physical id	: 0
core id	: 0

processor	: 3
model name	: Intel(R) Xeon(R) CPU E5-2680 v4 @ 2.40GHz
physical id	: 0
core id	: 1
`

func TestParseCPUInfo(t *testing.T) {
	info := parseCPUInfo(sampleCPUInfo)
	assert.Equal(t, "Intel(R) Xeon(R) CPU E5-2680 v4 @ 2.40GHz", info.Model)
	assert.Equal(t, 4, info.LogicalCores)
	assert.Equal(t, 2, info.PhysicalCores)
	assert.Equal(t, 2400.0, info.FreqMHz)
}

func TestParseCPUInfoWithoutTopology(t *testing.T) {
	info := parseCPUInfo("processor\t: 0\nmodel name\t: QEMU Virtual CPU\n")
	assert.Equal(t, 1, info.LogicalCores)
	// falls back to the logical count when core ids are absent
	assert.Equal(t, 1, info.PhysicalCores)
}

func TestParseLoadAvg(t *testing.T) {
	l1, l5, l15, err := parseLoadAvg("0.52 0.58 0.59 1/389 12345\n")
	require.NoError(t, err)
	assert.Equal(t, 0.52, l1)
	assert.Equal(t, 0.58, l5)
	assert.Equal(t, 0.59, l15)
}

func TestParseLoadAvgMalformed(t *testing.T) {
	_, _, _, err := parseLoadAvg("garbage\n")
	assert.True(t, diag.IsKind(err, diag.KindParse))
}

const sampleMeminfo = `MemTotal:       16303428 kB
MemFree:         8123456 kB
MemAvailable:   12345678 kB
Buffers:          423256 kB
SwapTotal:       2097148 kB
SwapFree:        2097148 kB
`

func TestParseMeminfo(t *testing.T) {
	mem, err := parseMeminfo(sampleMeminfo)
	require.NoError(t, err)
	assert.Equal(t, int64(16303428)*1024, mem.Total)
	assert.Equal(t, int64(12345678)*1024, mem.Available)
	assert.Equal(t, int64(2097148)*1024, mem.SwapTotal)
}

func TestParseMeminfoMissingTotal(t *testing.T) {
	_, err := parseMeminfo("MemFree: 100 kB\n")
	assert.True(t, diag.IsKind(err, diag.KindParse))
}

const sampleDF = `Filesystem     1024-blocks     Used Available Capacity Mounted on
/dev/vda1         41152736 12345678  26679442      32% /
tmpfs              8151712        0   8151712       0% /dev/shm
/dev/vdb1         20508240  1024000  18435616       6% /mnt/data disk
`

func TestParseDF(t *testing.T) {
	rows, err := parseDF(sampleDF)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	fs, _ := rows[0].Get("filesystem")
	assert.Equal(t, "/dev/vda1", fs)
	pct, _ := rows[0].Get("use_percent")
	assert.Equal(t, 32.0, pct)
	sizeBytes, _ := rows[0].Get("size_bytes")
	assert.Equal(t, int64(41152736)*1024, sizeBytes)

	// mount points containing spaces stay intact
	mount, _ := rows[2].Get("mounted_on")
	assert.Equal(t, "/mnt/data disk", mount)
}

func TestParseDFMalformed(t *testing.T) {
	_, err := parseDF("Filesystem 1024-blocks Used Available Capacity Mounted on\n/dev/vda1 abc 1 1 1% /\n")
	assert.True(t, diag.IsKind(err, diag.KindParse))
}

func TestParseOSRelease(t *testing.T) {
	out := parseOSRelease("NAME=\"Ubuntu\"\nVERSION=\"22.04.3 LTS (Jammy Jellyfish)\"\nID=ubuntu\n")
	assert.Equal(t, "Ubuntu", out["NAME"])
	assert.Equal(t, "22.04.3 LTS (Jammy Jellyfish)", out["VERSION"])
}

func TestParseKeyValueColon(t *testing.T) {
	out := parseKeyValueColon("Architecture:        x86_64\nModel name:          AMD EPYC 7571\nCPU(s):              8\n")
	assert.Equal(t, "x86_64", out["Architecture"])
	assert.Equal(t, "AMD EPYC 7571", out["Model name"])
	assert.Equal(t, "8", out["CPU(s)"])
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512.0", HumanSize(512))
	assert.Equal(t, "1.5K", HumanSize(1536))
	assert.Equal(t, "2.0G", HumanSize(2<<30))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 50.0, percent(1, 2))
	assert.Equal(t, 0.0, percent(5, 0))
}
