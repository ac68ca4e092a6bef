package prdset

import (
	"fmt"
	"os"
	"strings"
)

// SetLevel aggregates the pass/fail booleans of the set-level checks. Each is
// true when its pass found no errors.
type SetLevel struct {
	Acyclic      bool
	Discoverable bool
	Consistent   bool
}

// Result is the aggregated outcome of a full validation run. All checks always
// run; errors accumulate into one flat list, each prefixed with the PRD id
// (and phase id, where applicable) it pertains to.
type Result struct {
	SetLevel SetLevel
	Errors   []string
}

// Valid reports overall success: zero errors across all three levels.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

// ValidateSet runs the set-level, PRD-level and phase-level validation passes
// over a discovered set and aggregates all errors. It never stops at the first
// failure.
func ValidateSet(set *DiscoveredSet) *Result {
	result := &Result{
		SetLevel: SetLevel{Acyclic: true, Discoverable: true, Consistent: true},
	}

	validateSetCycles(set, result)
	validateDiscoverability(set, result)
	validateConsistency(set, result)

	for _, prd := range set.All() {
		validatePRD(set, prd, result)
	}

	return result
}

func validateSetCycles(set *DiscoveredSet, result *Result) {
	var nodes []string
	edges := make(map[string][]string)
	for _, prd := range set.All() {
		if prd.ID == "" {
			continue
		}
		nodes = append(nodes, prd.ID)
		edges[prd.ID] = prd.DependsOn
	}

	if cycle := findCycle(nodes, edges); cycle != nil {
		result.SetLevel.Acyclic = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("%s: dependency cycle between PRDs: %s", cycle[0], strings.Join(cycle, " -> ")))
	}
}

func validateDiscoverability(set *DiscoveredSet, result *Result) {
	for _, prd := range set.All() {
		if prd.Path == "" {
			continue
		}
		f, err := os.Open(prd.Path)
		if err != nil {
			result.SetLevel.Discoverable = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s: source file not readable: %v", prdLabel(prd), err))
			continue
		}
		f.Close()
	}
}

func validateConsistency(set *DiscoveredSet, result *Result) {
	parent := set.Parent
	if parent == nil {
		result.SetLevel.Consistent = false
		result.Errors = append(result.Errors, "set: no parent PRD discovered")
		return
	}

	fail := func(format string, args ...any) {
		result.SetLevel.Consistent = false
		result.Errors = append(result.Errors, fmt.Sprintf(format, args...))
	}

	if parent.Status != StatusSplit {
		fail("%s: parent PRD must have status %q, found %q", prdLabel(parent), StatusSplit, parent.Status)
	}

	// The parent's declared child list and the children's back-references must
	// agree exactly in both directions.
	declared := make(map[string]bool, len(parent.ChildPRDs))
	for _, id := range parent.ChildPRDs {
		declared[id] = true
	}
	present := make(map[string]bool, len(set.Children))
	for _, child := range set.Children {
		present[child.ID] = true
		if !declared[child.ID] {
			fail("%s: child %q not listed in parent childPrds", prdLabel(parent), child.ID)
		}
		if child.ParentPRD != parent.ID {
			fail("%s: parentPrd is %q, expected %q", prdLabel(child), child.ParentPRD, parent.ID)
		}
	}
	for _, id := range parent.ChildPRDs {
		if !present[id] {
			fail("%s: declared child %q was not discovered", prdLabel(parent), id)
		}
	}

	// Child sequence numbers must be unique and strictly positive.
	sequences := make(map[int]string, len(set.Children))
	for _, child := range set.Children {
		if child.Sequence <= 0 {
			fail("%s: sequence must be strictly positive, found %d", prdLabel(child), child.Sequence)
			continue
		}
		if other, dup := sequences[child.Sequence]; dup {
			fail("%s: sequence %d already used by %q", prdLabel(child), child.Sequence, other)
			continue
		}
		sequences[child.Sequence] = child.ID
	}
}

func validatePRD(set *DiscoveredSet, prd *PRD, result *Result) {
	label := prdLabel(prd)
	fail := func(format string, args ...any) {
		result.Errors = append(result.Errors, fmt.Sprintf(format, args...))
	}

	if prd.ID == "" {
		fail("%s: frontmatter field id is required", label)
	}
	if prd.Version == "" {
		fail("%s: frontmatter field version is required", label)
	}
	if prd.Status == "" {
		fail("%s: frontmatter field status is required", label)
	} else if !prd.Status.IsValid() {
		fail("%s: invalid status %q, must be one of: %v", label, prd.Status, AllStatuses())
	}

	for _, dep := range prd.DependsOn {
		if _, ok := set.Lookup(dep); !ok {
			fail("%s: depends on unknown PRD %q", label, dep)
		}
	}

	phaseIDs := make(map[string]bool, len(prd.Phases))
	var phaseNodes []string
	phaseEdges := make(map[string][]string, len(prd.Phases))
	for _, phase := range prd.Phases {
		if phaseIDs[phase.ID] {
			fail("%s/%s: duplicate phase id", label, phase.ID)
			continue
		}
		phaseIDs[phase.ID] = true
		phaseNodes = append(phaseNodes, phase.ID)
		phaseEdges[phase.ID] = phase.DependsOn
	}

	phaseSequences := make(map[int]string, len(prd.Phases))
	for _, phase := range prd.Phases {
		if phase.Sequence <= 0 {
			fail("%s/%s: phase sequence must be strictly positive, found %d", label, phase.ID, phase.Sequence)
		} else if other, dup := phaseSequences[phase.Sequence]; dup {
			fail("%s/%s: sequence %d already used by %q", label, phase.ID, phase.Sequence, other)
		} else {
			phaseSequences[phase.Sequence] = phase.ID
		}
		for _, dep := range phase.DependsOn {
			if !phaseIDs[dep] {
				fail("%s/%s: depends on invalid phase %q", label, phase.ID, dep)
			}
		}
	}

	if cycle := findCycle(phaseNodes, phaseEdges); cycle != nil {
		fail("%s/%s: dependency cycle between phases: %s", label, cycle[0], strings.Join(cycle, " -> "))
	}
}

func prdLabel(prd *PRD) string {
	if prd.ID != "" {
		return prd.ID
	}
	if prd.Path != "" {
		return prd.Path
	}
	return "(unidentified PRD)"
}
