package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for manifests that are neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported services file format")

// LoadServices reads a manifest of literal services, keyed by service key.
// The format follows the extension: .yaml/.yml or .toml.
//
//	# services.yaml
//	api.pageLength: 100
//	api.baseURL: https://vehicles.example.com
//
// The result feeds Locator.RegisterAll.
func LoadServices(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read services file: %w", err)
	}

	services := make(map[string]any)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &services); err != nil {
			return nil, fmt.Errorf("failed to parse YAML services file %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &services); err != nil {
			return nil, fmt.Errorf("failed to parse TOML services file %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return services, nil
}
