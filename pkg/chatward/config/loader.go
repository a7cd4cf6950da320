package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// decoders maps a lowercased file extension to the unmarshal
// function used for that format.
var decoders = map[string]func([]byte, any) error{
	".yaml": yaml.Unmarshal,
	".yml":  yaml.Unmarshal,
	".json": json.Unmarshal,
}

// FromFile loads bot configuration from path, picking the decoder
// by file extension (.yaml, .yml or .json).
func FromFile(path string) (Config, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return Config{}, fmt.Errorf("config %s: unknown extension %q", path, ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := parse(data, decode)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// FromYAML builds a Config from raw YAML.
func FromYAML(data []byte) (Config, error) {
	return parse(data, yaml.Unmarshal)
}

// FromJSON builds a Config from raw JSON.
func FromJSON(data []byte) (Config, error) {
	return parse(data, json.Unmarshal)
}

func parse(data []byte, decode func([]byte, any) error) (Config, error) {
	var m map[string]any
	if err := decode(data, &m); err != nil {
		return Config{}, fmt.Errorf("decode: %w", err)
	}
	return New(m), nil
}
