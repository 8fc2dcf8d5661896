package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/ytget/podshelf/internal/platform"
)

// ConfigFileName is the TOML settings file inside the data directory
const ConfigFileName = "config.toml"

// FilePreferences keeps settings in a TOML file for headless use
type FilePreferences struct {
	mu     sync.RWMutex
	path   string
	values map[string]any
}

// DefaultConfigPath returns the settings file in the user data directory
func DefaultConfigPath() (string, error) {
	dir, err := platform.GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// LoadFile reads the TOML file at path; a missing file yields empty
// preferences that Save will create
func LoadFile(path string) (*FilePreferences, error) {
	p := &FilePreferences{path: path, values: make(map[string]any)}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &p.values); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return p, nil
}

// Path returns the backing file path
func (p *FilePreferences) Path() string { return p.path }

// Save writes the preferences back to the file
func (p *FilePreferences) Save() error {
	p.mu.RLock()
	data, err := toml.Marshal(p.values)
	p.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(p.path)); err != nil {
		return fmt.Errorf("ensure config dir: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Keys returns the stored keys in sorted order
func (p *FilePreferences) Keys() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Value returns the raw stored value for key
func (p *FilePreferences) Value(key string) (any, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.values[key]
	return v, ok
}

// StringWithFallback returns the string at key or fallback
func (p *FilePreferences) StringWithFallback(key, fallback string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if v, ok := p.values[key].(string); ok {
		return v
	}
	return fallback
}

// SetString stores a string value
func (p *FilePreferences) SetString(key, value string) { p.set(key, value) }

// IntWithFallback returns the integer at key or fallback
func (p *FilePreferences) IntWithFallback(key string, fallback int) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	switch v := p.values[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	}
	return fallback
}

// SetInt stores an integer value
func (p *FilePreferences) SetInt(key string, value int) { p.set(key, int64(value)) }

// BoolWithFallback returns the boolean at key or fallback
func (p *FilePreferences) BoolWithFallback(key string, fallback bool) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if v, ok := p.values[key].(bool); ok {
		return v
	}
	return fallback
}

// SetBool stores a boolean value
func (p *FilePreferences) SetBool(key string, value bool) { p.set(key, value) }

func (p *FilePreferences) set(key string, value any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[key] = value
}

var _ Preferences = (*FilePreferences)(nil)
