// Package presets loads named style presets from a yaml file. Fields a
// preset leaves out keep their default value.
package presets

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/internal/domain/utils/validator"
)

// DefaultName is always available and holds the default configuration.
const DefaultName = "default"

type Preset struct {
	Name   string               `json:"name"`
	Config entity.Configuration `json:"config"`
}

type file struct {
	Presets []struct {
		Name   string    `yaml:"name"`
		Config yaml.Node `yaml:"config"`
	} `yaml:"presets"`
}

type Store struct {
	mu      sync.RWMutex
	presets map[string]entity.Configuration
}

// New returns a store holding only the default preset.
func New() *Store {
	return &Store{presets: builtin()}
}

func builtin() map[string]entity.Configuration {
	return map[string]entity.Configuration{DefaultName: entity.DefaultConfiguration()}
}

// Load reads presets from path. An empty path yields the default preset only.
func Load(path string) (*Store, error) {
	s := New()
	if path == "" {
		return s, nil
	}
	if err := s.Reload(path); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the stored presets with the content of path. On error
// the previous presets stay.
func (s *Store) Reload(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read presets: %w", err)
	}
	presets, err := Parse(raw)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.presets = presets
	s.mu.Unlock()
	return nil
}

// Parse decodes and validates a presets document.
func Parse(raw []byte) (map[string]entity.Configuration, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}

	presets := builtin()
	for _, p := range f.Presets {
		if p.Name == "" {
			return nil, fmt.Errorf("parse presets: preset without name")
		}
		cfg := entity.DefaultConfiguration()
		if !p.Config.IsZero() {
			if err := p.Config.Decode(&cfg); err != nil {
				return nil, fmt.Errorf("parse preset %q: %w", p.Name, err)
			}
		}
		if err := validator.Configuration(cfg); err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.Name, err)
		}
		presets[p.Name] = cfg
	}
	return presets, nil
}

func (s *Store) Get(name string) (entity.Configuration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.presets[name]
	if !ok {
		return entity.Configuration{}, errorz.ErrPresetNotFound
	}
	return cfg, nil
}

// List returns all presets sorted by name.
func (s *Store) List() []Preset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]Preset, 0, len(s.presets))
	for name, cfg := range s.presets {
		list = append(list, Preset{Name: name, Config: cfg})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}
