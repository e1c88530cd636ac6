package store

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRawPretty(t *testing.T) {
	st := NewJSONStore(t.TempDir())

	require.NoError(t, st.WriteRaw("gw/1/live.json", []byte(`{"a":1}`), true))
	assert.True(t, st.Exists("gw/1/live.json"))

	b, err := os.ReadFile(st.Path("gw/1/live.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}\n", string(b))
}

func TestWriteRawKeepsInvalidJSON(t *testing.T) {
	st := NewJSONStore(t.TempDir())

	require.NoError(t, st.WriteRaw("x.json", []byte("not json"), true))
	b, err := st.ReadRaw("x.json")
	require.NoError(t, err)
	assert.Equal(t, "not json", string(b))
}

func TestExistsIgnoresEmptyFiles(t *testing.T) {
	st := NewJSONStore(t.TempDir())

	require.NoError(t, st.WriteRaw("empty.json", nil, false))
	assert.False(t, st.Exists("empty.json"))
	assert.False(t, st.Exists("missing.json"))
}

func TestJSONRoundTrip(t *testing.T) {
	st := NewJSONStore(t.TempDir())

	in := map[string]int{"gw": 7}
	require.NoError(t, st.WriteJSON("meta.json", in))

	var out map[string]int
	require.NoError(t, st.ReadJSON("meta.json", &out))
	assert.Equal(t, in, out)
}
