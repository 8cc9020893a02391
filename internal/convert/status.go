package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the name of the status manifest kept in the asset root.
const ManifestFile = ".texconv.yaml"

// Status is the completion state of a conversion batch over one asset tree.
type Status int

const (
	NotConverted Status = iota
	Converted
	Failed
)

var statusNames = map[Status]string{
	NotConverted: "not_converted",
	Converted:    "converted",
	Failed:       "failed",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalYAML writes the status by name.
func (s Status) MarshalYAML() (any, error) {
	return s.String(), nil
}

// UnmarshalYAML reads a status name.
func (s *Status) UnmarshalYAML(node *yaml.Node) error {
	for k, name := range statusNames {
		if node.Value == name {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("unknown conversion status %q", node.Value)
}

// Manifest records the outcome of the last batch run.
type Manifest struct {
	Status    Status    `yaml:"status"`
	Format    string    `yaml:"format"`
	Keys      string    `yaml:"keys"` // digest of the key table used
	Converted int       `yaml:"converted"`
	Keyed     int       `yaml:"keyed"`
	Started   time.Time `yaml:"started"`
	Finished  time.Time `yaml:"finished"`
	Error     string    `yaml:"error,omitempty"`
}

// ReadManifest loads the manifest of an asset root. A missing manifest
// yields a NotConverted manifest and no error.
func ReadManifest(root string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(root, ManifestFile))
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{Status: NotConverted}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading conversion manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing conversion manifest: %w", err)
	}
	return &m, nil
}

// ReadStatus returns the conversion status of an asset root.
func ReadStatus(root string) (Status, error) {
	m, err := ReadManifest(root)
	if err != nil {
		return NotConverted, err
	}
	return m.Status, nil
}

func writeManifest(root string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding conversion manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(root, ManifestFile), data, 0644); err != nil {
		return fmt.Errorf("writing conversion manifest: %w", err)
	}
	return nil
}
