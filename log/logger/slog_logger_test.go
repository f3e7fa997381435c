package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hatlonely/surrealauth/log/writer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSLogWithOptions(t *testing.T) {
	tests := []struct {
		name    string
		options *SLogOptions
		wantErr bool
	}{
		{name: "nil options", options: nil, wantErr: true},
		{name: "default console output", options: &SLogOptions{Level: "info"}},
		{name: "json stderr", options: &SLogOptions{Level: "debug", Format: "json", Output: &writer.Options{Type: "console", Target: "stderr"}}},
		{name: "file output", options: &SLogOptions{Output: &writer.Options{Type: "file", Path: filepath.Join(t.TempDir(), "app.log")}}},
		{name: "invalid level", options: &SLogOptions{Level: "invalid"}, wantErr: true},
		{name: "invalid format", options: &SLogOptions{Format: "xml"}, wantErr: true},
		{name: "invalid output", options: &SLogOptions{Output: &writer.Options{Type: "kafka"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewSLogWithOptions(tt.options)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.level)
		assert.Equal(t, tt.want, got, tt.level)
		assert.Equal(t, tt.wantErr, err != nil, tt.level)
	}
}

func TestSLogOutput(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewSLogWithWriter(&SLogOptions{
		Level:  "debug",
		Format: "json",
		Fields: map[string]any{"service": "surrealauth"},
	}, &buf)
	require.NoError(t, err)

	l.WithGroup("adapter").With("model", "user").Debug("translate", "query", "SELECT * FROM $bind__1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "translate", entry["msg"])
	assert.Equal(t, "surrealauth", entry["service"])
	assert.Equal(t, map[string]any{"model": "user", "query": "SELECT * FROM $bind__1"}, entry["adapter"])
}

func TestSLogLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewSLogWithWriter(&SLogOptions{Level: "warn", TimeFormat: "2006-01-02"}, &buf)
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("shown")

	assert.False(t, strings.Contains(buf.String(), "hidden"))
	assert.True(t, strings.Contains(buf.String(), "msg=shown"))
}

func TestSLogRedact(t *testing.T) {
	t.Run("default keys", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := NewSLogWithWriter(&SLogOptions{Format: "json"}, &buf)
		require.NoError(t, err)

		vars := map[string]any{
			"bind__1":          "account",
			"bind__2.password": "s3cret",
			"nested":           map[string]any{"accessToken": "t0k", "scope": "repo"},
		}
		l.Info("query", "token", "abc", "vars", vars)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, RedactedValue, entry["token"])
		assert.Equal(t, map[string]any{
			"bind__1":          "account",
			"bind__2.password": RedactedValue,
			"nested":           map[string]any{"accessToken": RedactedValue, "scope": "repo"},
		}, entry["vars"])
		assert.Equal(t, "s3cret", vars["bind__2.password"])
	})

	t.Run("custom keys", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := NewSLogWithWriter(&SLogOptions{Redact: []string{"email"}}, &buf)
		require.NoError(t, err)

		l.Info("user", "email", "a@b.c", "password", "visible")
		assert.Contains(t, buf.String(), "email=******")
		assert.Contains(t, buf.String(), "password=visible")
	})
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing")
	assert.NotNil(t, l.With("k", "v").WithGroup("g"))
}
