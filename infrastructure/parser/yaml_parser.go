// Package parser reads settings files for the config loader.
package parser

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gh0stintheshe11/Web-Client/domain/ports"
)

// YamlSettingsParser implements ports.SettingsParser for YAML.
// It also satisfies koanf.Parser so it can be passed to koanf.Load directly.
type YamlSettingsParser struct{}

// NewYamlSettingsParser creates a new YamlSettingsParser.
func NewYamlSettingsParser() *YamlSettingsParser {
	return &YamlSettingsParser{}
}

// Compile-time interface check
var _ ports.SettingsParser = (*YamlSettingsParser)(nil)

// Parse unmarshals YAML bytes into a settings map.
// An empty document yields an empty map.
func (p *YamlSettingsParser) Parse(data []byte) (map[string]any, error) {
	out := map[string]any{}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Unmarshal implements koanf.Parser.
func (p *YamlSettingsParser) Unmarshal(data []byte) (map[string]any, error) {
	return p.Parse(data)
}

// Marshal implements koanf.Parser.
func (p *YamlSettingsParser) Marshal(m map[string]any) ([]byte, error) {
	return yaml.Marshal(m)
}

// FileProvider implements koanf.Provider for a settings file on disk.
type FileProvider struct {
	path string
}

// File returns a provider reading path.
func File(path string) *FileProvider {
	return &FileProvider{path: path}
}

// ReadBytes reads the file contents.
func (f *FileProvider) ReadBytes() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	return data, nil
}

// Read is not supported; the file must be decoded by a parser.
func (f *FileProvider) Read() (map[string]any, error) {
	return nil, errors.New("file provider does not support this method")
}
