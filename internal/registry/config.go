package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/funvibe/typewalk/internal/config"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads and parses a typewalk.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses typewalk.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// MarshalConfig renders a configuration back to YAML.
func MarshalConfig(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// FindConfig searches for typewalk.yaml starting from dir and walking up
// to parent directories.
// Returns the path to the config file and nil error if found,
// or empty string and nil error if not found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range config.DeclFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// validate checks the configuration for structural errors. Type expressions
// are checked later, when the declarations are defined in a Universe.
func (c *Config) validate(path string) error {
	if len(c.Classes) == 0 {
		return fmt.Errorf("%s: no classes defined", path)
	}

	seen := make(map[string]bool)
	for i, cd := range c.Classes {
		if cd.Name == "" {
			return fmt.Errorf("%s: classes[%d]: name is required", path, i)
		}
		if seen[cd.Name] {
			return fmt.Errorf("%s: classes[%d]: %s declared twice", path, i, cd.Name)
		}
		seen[cd.Name] = true

		switch cd.Kind {
		case "", KindClass, KindInterface:
		default:
			return fmt.Errorf("%s: classes[%d] (%s): kind must be %q or %q, got %q",
				path, i, cd.Name, KindClass, KindInterface, cd.Kind)
		}

		params := make(map[string]bool)
		for j, p := range cd.Params {
			if p.Name == "" {
				return fmt.Errorf("%s: classes[%d].params[%d] (%s): name is required", path, i, j, cd.Name)
			}
			if params[p.Name] {
				return fmt.Errorf("%s: classes[%d].params[%d] (%s): duplicate parameter %s",
					path, i, j, cd.Name, p.Name)
			}
			params[p.Name] = true
		}

		if cd.Element && len(cd.Params) != 1 {
			return fmt.Errorf("%s: classes[%d] (%s): element requires exactly one type parameter",
				path, i, cd.Name)
		}

		fields := make(map[string]bool)
		for j, f := range cd.Fields {
			if f.Name == "" {
				return fmt.Errorf("%s: classes[%d].fields[%d] (%s): name is required", path, i, j, cd.Name)
			}
			if f.Type == "" {
				return fmt.Errorf("%s: classes[%d].fields[%d] (%s): type is required", path, i, j, cd.Name)
			}
			if fields[f.Name] {
				return fmt.Errorf("%s: classes[%d].fields[%d] (%s): duplicate field %s",
					path, i, j, cd.Name, f.Name)
			}
			fields[f.Name] = true
		}
	}

	return nil
}

// setDefaults fills in default values for omitted fields.
func (c *Config) setDefaults() {
	for i := range c.Classes {
		if c.Classes[i].Kind == "" {
			c.Classes[i].Kind = KindClass
		}
	}
}

// LoadFile reads a declaration file and defines its classes in u.
func (u *Universe) LoadFile(path string) error {
	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}
	if err := u.Define(cfg.Classes...); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
