package hooks

import (
	"errors"
	"fmt"
	"os"

	"github.com/jienckebd/devloop/internal/frontmatter"
)

type phaseHeader struct {
	Hooks *PhaseHooks `yaml:"hooks"`
}

// LoadPhaseHooks reads a phase file and returns the hook lists declared under
// the `hooks` key of its frontmatter. A missing file, missing header, or
// missing hooks key all mean "no hooks" and return (nil, nil). The file is
// read fresh on every call so external edits take effect immediately.
func LoadPhaseHooks(path string) (*PhaseHooks, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("hooks: read phase file: %w", err)
	}

	var header phaseHeader
	if err := frontmatter.Decode(content, &header); err != nil {
		if errors.Is(err, frontmatter.ErrMissing) {
			return nil, nil
		}
		return nil, fmt.Errorf("hooks: %s: %w", path, err)
	}
	return header.Hooks, nil
}
