package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roles struct {
	OrgAdmin []string `cfg:"orgAdmin"`
}

type server struct {
	Name    string        `json:"name"`
	Port    int           `yaml:"port"`
	Timeout time.Duration `cfg:"timeout"`
	Roles   *roles        `cfg:"roles"`
	Fields  map[string]any
	skipped string
}

func TestMapStorage(t *testing.T) {
	s := NewMapStorage(map[string]any{
		"servers": []any{
			map[string]any{
				"name":    "web",
				"PORT":    int64(8080),
				"timeout": "2s",
				"roles":   map[string]any{"orgAdmin": []any{"owner"}},
				"fields":  map[string]any{"k": 1},
				"skipped": "x",
			},
		},
	})

	var srv server
	require.NoError(t, s.Sub("servers[0]").ConvertTo(&srv))
	assert.Equal(t, "web", srv.Name)
	assert.Equal(t, 8080, srv.Port)
	assert.Equal(t, 2*time.Second, srv.Timeout)
	assert.Equal(t, &roles{OrgAdmin: []string{"owner"}}, srv.Roles)
	assert.Equal(t, map[string]any{"k": 1}, srv.Fields)
	assert.Empty(t, srv.skipped)

	var name string
	require.NoError(t, s.Sub("servers.0.name").ConvertTo(&name))
	assert.Equal(t, "web", name)

	var missing server
	require.NoError(t, s.Sub("servers[3]").ConvertTo(&missing))
	assert.Equal(t, server{}, missing)

	assert.Error(t, s.ConvertTo(srv))
	assert.Error(t, NewMapStorage("abc").ConvertTo(&srv))
	assert.Error(t, NewMapStorage(map[string]any{"port": "x"}).ConvertTo(&srv))
}

func TestParseKey(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "0", "c"}, parseKey("a.b[0].c"))
	assert.Empty(t, parseKey(""))
}
