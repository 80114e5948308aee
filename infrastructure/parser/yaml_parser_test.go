package parser

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYamlSettingsParser_Parse(t *testing.T) {
	data := []byte(`
log_level: debug
timeout: 5s
max_redirects: 3
user_agent: "webclient/1.0"
`)

	m, err := NewYamlSettingsParser().Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "debug", m["log_level"])
	assert.Equal(t, "5s", m["timeout"])
	assert.Equal(t, 3, m["max_redirects"])
	assert.Equal(t, "webclient/1.0", m["user_agent"])
}

func TestYamlSettingsParser_Empty(t *testing.T) {
	m, err := NewYamlSettingsParser().Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestYamlSettingsParser_Invalid(t *testing.T) {
	_, err := NewYamlSettingsParser().Parse([]byte("timeout: [unclosed"))
	assert.Error(t, err)

	_, err = NewYamlSettingsParser().Parse([]byte("- just\n- a list\n"))
	assert.Error(t, err, "top level must be a mapping")
}

func TestYamlSettingsParser_RoundTrip(t *testing.T) {
	p := NewYamlSettingsParser()

	out, err := p.Marshal(map[string]any{"max_redirects": 2})
	require.NoError(t, err)

	m, err := p.Unmarshal(out)
	require.NoError(t, err)
	assert.Equal(t, 2, m["max_redirects"])
}

func TestFileProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeout: 1s\n"), 0o600))

	data, err := File(path).ReadBytes()
	require.NoError(t, err)
	assert.Equal(t, "timeout: 1s\n", string(data))

	_, err = File(path).Read()
	assert.Error(t, err)
}

func TestFileProvider_Missing(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "nope.yaml")).ReadBytes()
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
