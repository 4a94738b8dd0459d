package diag

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsMarshalPreservesOrder(t *testing.T) {
	rec := NewRecord("system info", CategorySystem)
	rec.Set("zeta", 1)
	rec.Set("alpha", "two")
	rec.Set("mid", 3.5)

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":1,"alpha":"two","mid":3.5}`, string(data))
}

func TestUnknownMarshalsAsNull(t *testing.T) {
	rec := NewRecord("system info", CategorySystem)
	rec.Set("hostname", "web01")
	rec.Set("uptime", Unknown)

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, `{"hostname":"web01","uptime":null}`, string(data))
}

func TestNestedRowsMarshal(t *testing.T) {
	row := Fields{}
	row.Set("name", "sda")
	row.Set("size", int64(512))
	rec := NewRecord("storage devices", CategoryStorage)
	rec.Set("devices", []Fields{row})
	rec.Set("device_count", 1)

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, `{"devices":[{"name":"sda","size":512}],"device_count":1}`, string(data))
}

func TestSetReplacesInPlace(t *testing.T) {
	f := Fields{}
	f.Set("a", 1)
	f.Set("b", 2)
	f.Set("a", 3)

	assert.Equal(t, []string{"a", "b"}, f.Names())
	v, ok := f.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestIntArg(t *testing.T) {
	n, ok, err := IntArg(map[string]any{"lines": 7}, "lines")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	n, ok, err = IntArg(map[string]any{"lines": float64(12)}, "lines")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	n, ok, err = IntArg(map[string]any{"lines": "40"}, "lines")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 40, n)

	_, _, err = IntArg(map[string]any{"lines": "many"}, "lines")
	assert.True(t, IsKind(err, KindInvalidArgument))

	_, ok, err = IntArg(map[string]any{}, "lines")
	require.NoError(t, err)
	assert.False(t, ok)
}
