package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexcodex/sysdiag/config"
	"github.com/lexcodex/sysdiag/diag"
)

const sampleLsblk = `NAME="sda" TYPE="disk" SIZE="931.5G" RO="0" FSTYPE="" MOUNTPOINT="" MODEL="Samsung SSD 870 EVO"
NAME="sda1" TYPE="part" SIZE="512M" RO="0" FSTYPE="vfat" MOUNTPOINT="/boot/efi" MODEL=""
NAME="sda2" TYPE="part" SIZE="931G" RO="0" FSTYPE="ext4" MOUNTPOINT="/" MODEL=""
NAME="sr0" TYPE="rom" SIZE="1024M" RO="1" FSTYPE="" MOUNTPOINT="" MODEL="DVD-RW"
`

func TestParseLsblk(t *testing.T) {
	rows, err := parseLsblk(sampleLsblk)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	name, _ := rows[0].Get("name")
	assert.Equal(t, "sda", name)
	// pair quoting keeps values containing spaces intact
	model, _ := rows[0].Get("model")
	assert.Equal(t, "Samsung SSD 870 EVO", model)
	fstype, _ := rows[0].Get("fstype")
	assert.True(t, diag.IsUnknown(fstype))

	mount, _ := rows[2].Get("mountpoint")
	assert.Equal(t, "/", mount)
	ro, _ := rows[3].Get("read_only")
	assert.Equal(t, true, ro)
}

func TestParseLsblkMalformed(t *testing.T) {
	_, err := parseLsblk(`NAME=sda TYPE="disk"`)
	assert.True(t, diag.IsKind(err, diag.KindParse))

	_, err = parseLsblk(`NAME="sda`)
	assert.True(t, diag.IsKind(err, diag.KindParse))

	_, err = parseLsblk("")
	assert.True(t, diag.IsKind(err, diag.KindParse))
}

func TestParsePairs(t *testing.T) {
	pairs, err := parsePairs(`NAME="sda1" MOUNTPOINT="/mnt/my data" MODEL=""`)
	require.NoError(t, err)
	assert.Equal(t, "sda1", pairs["NAME"])
	assert.Equal(t, "/mnt/my data", pairs["MOUNTPOINT"])
	assert.Equal(t, "", pairs["MODEL"])
}

func writeSized(t *testing.T, dir, name string, size int) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), make([]byte, size), 0o644))
}

func TestListDirSortBySize(t *testing.T) {
	dir := t.TempDir()
	writeSized(t, dir, "small.txt", 10)
	writeSized(t, dir, "big.bin", 4096)
	writeSized(t, dir, "mid.log", 512)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	rec, err := ListDir(context.Background(), config.Default(), dir, SortSize, 10)
	require.NoError(t, err)

	count, _ := rec.Get("entry_count")
	assert.Equal(t, 4, count)
	entries, _ := rec.Get("entries")
	rows := entries.([]diag.Fields)

	first, _ := rows[0].Get("name")
	assert.Equal(t, "big.bin", first)
	kind, _ := rows[0].Get("type")
	assert.Equal(t, "file", kind)
	human, _ := rows[0].Get("size_human")
	assert.Equal(t, "4.0K", human)
}

func TestListDirSortByNameAndTop(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"charlie", "alpha", "bravo"} {
		writeSized(t, dir, name, 1)
	}

	rec, err := ListDir(context.Background(), config.Default(), dir, SortName, 2)
	require.NoError(t, err)

	// entry_count reports the pre-truncation total
	count, _ := rec.Get("entry_count")
	assert.Equal(t, 3, count)
	entries, _ := rec.Get("entries")
	rows := entries.([]diag.Fields)
	require.Len(t, rows, 2)
	first, _ := rows[0].Get("name")
	assert.Equal(t, "alpha", first)
	second, _ := rows[1].Get("name")
	assert.Equal(t, "bravo", second)
}

func TestListDirValidation(t *testing.T) {
	dir := t.TempDir()

	_, err := ListDir(context.Background(), config.Default(), "", SortName, 5)
	assert.True(t, diag.IsKind(err, diag.KindInvalidArgument))

	_, err = ListDir(context.Background(), config.Default(), dir, "owner", 5)
	assert.True(t, diag.IsKind(err, diag.KindInvalidArgument))

	_, err = ListDir(context.Background(), config.Default(), dir, SortName, 0)
	assert.True(t, diag.IsKind(err, diag.KindInvalidArgument))
}

func TestListDirMissingPath(t *testing.T) {
	_, err := ListDir(context.Background(), config.Default(), filepath.Join(t.TempDir(), "absent"), SortName, 5)
	assert.True(t, diag.IsKind(err, diag.KindNotFound))
}
