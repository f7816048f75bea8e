package knowledge

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Overlay extends the compiled-in lists with deployment-specific entries.
// Overlays can only add; the defaults are never removed or replaced.
type Overlay struct {
	StaticExtensions []string `json:"static_extensions" yaml:"static_extensions"`
	SkipDomains      []string `json:"skip_domains" yaml:"skip_domains"`
	SkipPaths        []string `json:"skip_paths" yaml:"skip_paths"`
}

// LoadOverlay loads an overlay from a file (YAML or JSON).
func LoadOverlay(path string) (*Overlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read overlay file: %w", err)
	}

	o := &Overlay{}
	if err := yaml.Unmarshal(data, o); err != nil {
		if err := json.Unmarshal(data, o); err != nil {
			return nil, fmt.Errorf("failed to parse overlay file: %w", err)
		}
	}

	return o, nil
}

// Extend returns a new base with the overlay's entries appended.
// The receiver is not modified.
func (b *Base) Extend(o *Overlay) *Base {
	if o == nil {
		return b
	}
	return build(o)
}
