package prdset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jienckebd/devloop/internal/frontmatter"
)

// Discover loads a PRD set starting from a parent PRD file. Children are
// resolved as sibling markdown files named after the ids in the parent's
// childPrds list. Children that fail to parse are skipped here and surface
// later as consistency errors; children whose files are missing are recorded
// with their expected path so discoverability validation can report them.
func Discover(parentPath string) (*DiscoveredSet, error) {
	parent, err := loadPRD(parentPath)
	if err != nil {
		return nil, err
	}

	set := &DiscoveredSet{Parent: parent}
	dir := filepath.Dir(parentPath)
	for _, childID := range parent.ChildPRDs {
		childPath := filepath.Join(dir, childID+".md")
		child, err := loadPRD(childPath)
		if err != nil {
			if os.IsNotExist(err) {
				set.Children = append(set.Children, &PRD{
					Frontmatter: Frontmatter{ID: childID},
					Path:        childPath,
				})
				continue
			}
			return nil, err
		}
		set.Children = append(set.Children, child)
	}
	return set, nil
}

func loadPRD(path string) (*PRD, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("prdset: read %s: %w", path, err)
	}

	var fm Frontmatter
	if err := frontmatter.Decode(content, &fm); err != nil {
		return nil, fmt.Errorf("prdset: %s: %w", path, err)
	}
	return &PRD{Frontmatter: fm, Path: path}, nil
}
