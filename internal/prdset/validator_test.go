package prdset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSet() *DiscoveredSet {
	return &DiscoveredSet{
		Parent: &PRD{Frontmatter: Frontmatter{
			ID:        "auth",
			Version:   "1.0",
			Status:    StatusSplit,
			ChildPRDs: []string{"auth-login", "auth-mfa"},
		}},
		Children: []*PRD{
			{Frontmatter: Frontmatter{
				ID: "auth-login", Version: "1.0", Status: StatusPending,
				ParentPRD: "auth", Sequence: 1,
			}},
			{Frontmatter: Frontmatter{
				ID: "auth-mfa", Version: "1.0", Status: StatusPending,
				ParentPRD: "auth", Sequence: 2,
				DependsOn: []string{"auth-login"},
			}},
		},
	}
}

func errorsContaining(result *Result, substr string) []string {
	var matched []string
	for _, msg := range result.Errors {
		if strings.Contains(msg, substr) {
			matched = append(matched, msg)
		}
	}
	return matched
}

func TestValidateCleanSet(t *testing.T) {
	result := ValidateSet(testSet())
	assert.True(t, result.Valid(), "errors: %v", result.Errors)
	assert.True(t, result.SetLevel.Acyclic)
	assert.True(t, result.SetLevel.Discoverable)
	assert.True(t, result.SetLevel.Consistent)
}

func TestPRDDependencyCycle(t *testing.T) {
	set := testSet()
	// A -> B -> A at the set level.
	set.Children[0].DependsOn = []string{"auth-mfa"}

	result := ValidateSet(set)
	assert.False(t, result.SetLevel.Acyclic)
	require.NotEmpty(t, errorsContaining(result, "cycle"))

	// Removing the back edge clears the cycle flag and the cycle error.
	set.Children[0].DependsOn = nil
	result = ValidateSet(set)
	assert.True(t, result.SetLevel.Acyclic)
	assert.Empty(t, errorsContaining(result, "cycle"))
}

func TestThreeNodeCycleReported(t *testing.T) {
	set := testSet()
	set.Parent.ChildPRDs = append(set.Parent.ChildPRDs, "auth-sso")
	set.Children = append(set.Children, &PRD{Frontmatter: Frontmatter{
		ID: "auth-sso", Version: "1.0", Status: StatusPending,
		ParentPRD: "auth", Sequence: 3,
	}})
	set.Children[0].DependsOn = []string{"auth-mfa"}
	set.Children[1].DependsOn = []string{"auth-sso"}
	set.Children[2].DependsOn = []string{"auth-login"}

	result := ValidateSet(set)
	assert.False(t, result.SetLevel.Acyclic)
	require.NotEmpty(t, errorsContaining(result, "cycle"))
}

func TestConsistencyChecks(t *testing.T) {
	t.Run("parent must be split", func(t *testing.T) {
		set := testSet()
		set.Parent.Status = StatusInProgress
		result := ValidateSet(set)
		assert.False(t, result.SetLevel.Consistent)
		assert.NotEmpty(t, errorsContaining(result, "split"))
	})

	t.Run("child missing from parent list", func(t *testing.T) {
		set := testSet()
		set.Parent.ChildPRDs = []string{"auth-login"}
		result := ValidateSet(set)
		assert.False(t, result.SetLevel.Consistent)
		assert.NotEmpty(t, errorsContaining(result, "not listed in parent"))
	})

	t.Run("declared child never discovered", func(t *testing.T) {
		set := testSet()
		set.Parent.ChildPRDs = append(set.Parent.ChildPRDs, "auth-ghost")
		result := ValidateSet(set)
		assert.False(t, result.SetLevel.Consistent)
		assert.NotEmpty(t, errorsContaining(result, "auth-ghost"))
	})

	t.Run("wrong parent back-reference", func(t *testing.T) {
		set := testSet()
		set.Children[0].ParentPRD = "billing"
		result := ValidateSet(set)
		assert.False(t, result.SetLevel.Consistent)
		assert.NotEmpty(t, errorsContaining(result, "parentPrd"))
	})

	t.Run("duplicate child sequence", func(t *testing.T) {
		set := testSet()
		set.Children[1].Sequence = 1
		result := ValidateSet(set)
		assert.False(t, result.SetLevel.Consistent)
		assert.NotEmpty(t, errorsContaining(result, "sequence"))
	})

	t.Run("non-positive sequence", func(t *testing.T) {
		set := testSet()
		set.Children[0].Sequence = 0
		result := ValidateSet(set)
		assert.False(t, result.SetLevel.Consistent)
		assert.NotEmpty(t, errorsContaining(result, "strictly positive"))
	})
}

func TestPRDLevelChecks(t *testing.T) {
	t.Run("missing required frontmatter", func(t *testing.T) {
		set := testSet()
		set.Children[0].Version = ""
		set.Children[0].Status = ""
		result := ValidateSet(set)
		assert.NotEmpty(t, errorsContaining(result, "version is required"))
		assert.NotEmpty(t, errorsContaining(result, "status is required"))
	})

	t.Run("unknown dependency", func(t *testing.T) {
		set := testSet()
		set.Children[0].DependsOn = []string{"billing"}
		result := ValidateSet(set)
		assert.NotEmpty(t, errorsContaining(result, `unknown PRD "billing"`))
	})

	t.Run("duplicate phase ids", func(t *testing.T) {
		set := testSet()
		set.Children[0].Phases = []Phase{
			{ID: "p1", Sequence: 1},
			{ID: "p1", Sequence: 2},
		}
		result := ValidateSet(set)
		assert.NotEmpty(t, errorsContaining(result, "duplicate phase id"))
	})

	t.Run("phase dependency cycle", func(t *testing.T) {
		set := testSet()
		set.Children[0].Phases = []Phase{
			{ID: "p1", Sequence: 1, DependsOn: []string{"p2"}},
			{ID: "p2", Sequence: 2, DependsOn: []string{"p1"}},
		}
		result := ValidateSet(set)
		assert.NotEmpty(t, errorsContaining(result, "cycle between phases"))
	})
}

func TestPhaseLevelChecks(t *testing.T) {
	set := testSet()
	set.Children[0].Phases = []Phase{
		{ID: "p1", Sequence: 1},
		{ID: "p2", Sequence: 2, DependsOn: []string{"p1"}},
		{ID: "p3", Sequence: 3, DependsOn: []string{"p4"}},
	}

	result := ValidateSet(set)
	invalid := errorsContaining(result, "depends on invalid phase")
	require.Len(t, invalid, 1)
	assert.Contains(t, invalid[0], "auth-login/p3")
	assert.Contains(t, invalid[0], `"p4"`)
}

func TestErrorsArePrefixedWithPRDID(t *testing.T) {
	set := testSet()
	set.Children[0].DependsOn = []string{"billing"}
	result := ValidateSet(set)

	matched := errorsContaining(result, "unknown PRD")
	require.NotEmpty(t, matched)
	assert.True(t, strings.HasPrefix(matched[0], "auth-login:"), "got %q", matched[0])
}

func TestDiscoverabilityCheck(t *testing.T) {
	dir := t.TempDir()
	readable := filepath.Join(dir, "auth-login.md")
	require.NoError(t, os.WriteFile(readable, []byte("---\nid: auth-login\n---\n\nbody\n"), 0o644))

	set := testSet()
	set.Children[0].Path = readable
	set.Children[1].Path = filepath.Join(dir, "auth-mfa.md") // never written

	result := ValidateSet(set)
	assert.False(t, result.SetLevel.Discoverable)
	matched := errorsContaining(result, "not readable")
	require.Len(t, matched, 1)
	assert.Contains(t, matched[0], "auth-mfa")
}

func TestAllChecksRun(t *testing.T) {
	// One broken set should surface errors from every level in one report.
	set := testSet()
	set.Parent.Status = StatusPending
	set.Children[0].DependsOn = []string{"auth-mfa"}
	set.Children[1].Version = ""
	set.Children[1].Phases = []Phase{{ID: "p1", Sequence: 1, DependsOn: []string{"p9"}}}

	result := ValidateSet(set)
	assert.False(t, result.Valid())
	assert.NotEmpty(t, errorsContaining(result, "split"))
	assert.NotEmpty(t, errorsContaining(result, "cycle"))
	assert.NotEmpty(t, errorsContaining(result, "version is required"))
	assert.NotEmpty(t, errorsContaining(result, "depends on invalid phase"))
}
