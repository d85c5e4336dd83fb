// Package profile persists named rename settings so frequently used
// configurations can be recalled by name.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/Denizmerty/RenameUtility/pkg/plan"
)

// Store keeps all profiles in a single YAML file under its directory.
type Store struct {
	dir string
}

// NewStore returns a Store backed by profiles.yaml under dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path() string {
	return filepath.Join(s.dir, "profiles.yaml")
}

// ValidateName rejects names that would be confusing on disk or in listings:
// empty names, names containing path separators, and purely numeric names.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("profile name cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("profile name cannot contain path separators: %q", name)
	}
	numeric := true
	for _, r := range name {
		if !unicode.IsDigit(r) {
			numeric = false
			break
		}
	}
	if numeric {
		return fmt.Errorf("profile name cannot be purely numeric: %q", name)
	}
	return nil
}

// Save stores params under name, replacing any existing profile with the
// same name.
func (s *Store) Save(name string, params plan.InputParams) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	profiles, err := s.load()
	if err != nil {
		return err
	}
	profiles[name] = params
	return s.save(profiles)
}

// Load returns the profile stored under name.
func (s *Store) Load(name string) (plan.InputParams, error) {
	profiles, err := s.load()
	if err != nil {
		return plan.InputParams{}, err
	}
	params, ok := profiles[name]
	if !ok {
		return plan.InputParams{}, fmt.Errorf("profile not found: %q", name)
	}
	return params, nil
}

// List returns all profile names in sorted order.
func (s *Store) List() ([]string, error) {
	profiles, err := s.load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the profile stored under name.
func (s *Store) Delete(name string) error {
	profiles, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := profiles[name]; !ok {
		return fmt.Errorf("profile not found: %q", name)
	}
	delete(profiles, name)
	return s.save(profiles)
}

func (s *Store) load() (map[string]plan.InputParams, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]plan.InputParams{}, nil
		}
		return nil, fmt.Errorf("failed to read profiles file: %w", err)
	}
	profiles := map[string]plan.InputParams{}
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse profiles file: %w", err)
	}
	return profiles, nil
}

func (s *Store) save(profiles map[string]plan.InputParams) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create profiles directory: %w", err)
	}
	data, err := yaml.Marshal(profiles)
	if err != nil {
		return fmt.Errorf("failed to serialize profiles: %w", err)
	}
	if err := os.WriteFile(s.path(), data, 0644); err != nil {
		return fmt.Errorf("failed to write profiles file: %w", err)
	}
	return nil
}
