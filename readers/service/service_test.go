package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexcodex/sysdiag/diag"
)

const sampleUnits = `sshd.service              loaded active   running OpenSSH server daemon
cron.service              loaded active   running Regular background program processing daemon
nginx.service             loaded inactive dead    A high performance web server
systemd-fsck@dev.service  loaded inactive dead    File System Check
`

func TestParseUnits(t *testing.T) {
	rows, running := parseUnits(sampleUnits)
	require.Len(t, rows, 4)
	assert.Equal(t, 2, running)

	unit, _ := rows[0].Get("unit")
	assert.Equal(t, "sshd.service", unit)
	desc, _ := rows[0].Get("description")
	assert.Equal(t, "OpenSSH server daemon", desc)
	sub, _ := rows[2].Get("sub")
	assert.Equal(t, "dead", sub)
}

func TestParseUnitsSkipsNoise(t *testing.T) {
	rows, running := parseUnits("\nLEGEND text without a unit column\n")
	assert.Empty(t, rows)
	assert.Zero(t, running)
}

func TestParseShow(t *testing.T) {
	props := parseShow(`Id=sshd.service
Description=OpenSSH server daemon
LoadState=loaded
ActiveState=active
SubState=running
MainPID=712
ExecMainStartTimestamp=Mon 2026-08-24 09:11:02 UTC
`)
	assert.Equal(t, "sshd.service", props["Id"])
	assert.Equal(t, "active", props["ActiveState"])
	assert.Equal(t, "712", props["MainPID"])
	assert.Equal(t, "Mon 2026-08-24 09:11:02 UTC", props["ExecMainStartTimestamp"])
}

func TestNormalizeUnit(t *testing.T) {
	unit, err := normalizeUnit("nginx")
	require.NoError(t, err)
	assert.Equal(t, "nginx.service", unit)

	unit, err = normalizeUnit("nginx.service")
	require.NoError(t, err)
	assert.Equal(t, "nginx.service", unit)

	unit, err = normalizeUnit("tmp.mount")
	require.NoError(t, err)
	assert.Equal(t, "tmp.mount", unit)

	_, err = normalizeUnit("  ")
	assert.True(t, diag.IsKind(err, diag.KindInvalidArgument))
}

func TestParseJournal(t *testing.T) {
	rows := ParseJournal(`2026-08-24T09:11:02+0000 web01 sshd[712]: Server listening on 0.0.0.0 port 22.
2026-08-24T09:12:40+0000 web01 sshd[814]: Accepted publickey for root
-- No entries --
`)
	require.Len(t, rows, 2)
	ts, _ := rows[0].Get("timestamp")
	assert.Equal(t, "2026-08-24T09:11:02+0000", ts)
	host, _ := rows[0].Get("host")
	assert.Equal(t, "web01", host)
	msg, _ := rows[1].Get("message")
	assert.Equal(t, "sshd[814]: Accepted publickey for root", msg)
}

func TestParseJournalEmpty(t *testing.T) {
	assert.Empty(t, ParseJournal("-- No entries --\n"))
	assert.Empty(t, ParseJournal(""))
}
