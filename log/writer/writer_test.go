package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWriterWithOptions(t *testing.T) {
	tests := []struct {
		name    string
		options *Options
		wantErr bool
	}{
		{name: "nil options", options: nil},
		{name: "console stdout", options: &Options{Type: "console", Target: "stdout"}},
		{name: "console stderr", options: &Options{Type: "console", Target: "stderr"}},
		{name: "empty type", options: &Options{}},
		{name: "file", options: &Options{Type: "file", Path: filepath.Join(t.TempDir(), "logs", "app.log")}},
		{name: "file without path", options: &Options{Type: "file"}, wantErr: true},
		{name: "unknown type", options: &Options{Type: "kafka"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewWriterWithOptions(tt.options)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, w.Close())
		})
	}
}

func TestFileWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")

	w, err := NewFileWriterWithOptions(&FileWriterOptions{Path: path})
	require.NoError(t, err)

	_, err = w.Write([]byte("line1\n"))
	require.NoError(t, err)
	_, err = w.Write([]byte("line2\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, err = w.Write([]byte("line3\n"))
	assert.ErrorIs(t, err, ErrFileClosed)

	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line1\nline2\n", string(buf))

	w, err = NewFileWriterWithOptions(&FileWriterOptions{Path: path})
	require.NoError(t, err)
	_, err = w.Write([]byte("line3\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	buf, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line1\nline2\nline3\n", string(buf))
}
