// Package prdset models a discovered PRD set (a parent requirements document
// split into child PRDs with phases) and validates its dependency graph and
// frontmatter consistency before the execution loop is allowed to start.
package prdset

// Status represents the lifecycle status of a PRD
type Status string

const (
	// StatusPending indicates work has not started
	StatusPending Status = "pending"
	// StatusInProgress indicates work is currently executing
	StatusInProgress Status = "in_progress"
	// StatusComplete indicates work has successfully finished
	StatusComplete Status = "complete"
	// StatusFailed indicates work has failed
	StatusFailed Status = "failed"
	// StatusSplit marks a parent PRD that has been broken into children
	StatusSplit Status = "split"
)

// IsValid checks if a status value is valid
func (s Status) IsValid() bool {
	for _, valid := range AllStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// AllStatuses returns all valid status values
func AllStatuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusComplete, StatusFailed, StatusSplit}
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// Phase is an ordered, dependency-linked group of tasks within one PRD.
type Phase struct {
	ID        string   `yaml:"id"`
	Title     string   `yaml:"title,omitempty"`
	Sequence  int      `yaml:"sequence"`
	DependsOn []string `yaml:"dependsOn,omitempty"`
}

// Frontmatter is the structured header of a PRD file.
type Frontmatter struct {
	ID      string `yaml:"id"`
	Version string `yaml:"version"`
	Status  Status `yaml:"status"`
	Title   string `yaml:"title,omitempty"`

	// Sequence orders a child PRD within its parent.
	Sequence int `yaml:"sequence,omitempty"`

	// ParentPRD is the back-reference a child declares to its parent.
	ParentPRD string `yaml:"parentPrd,omitempty"`

	// ChildPRDs is the child list a split parent declares.
	ChildPRDs []string `yaml:"childPrds,omitempty"`

	// DependsOn names other PRD ids in the same set.
	DependsOn []string `yaml:"dependsOn,omitempty"`

	Phases []Phase `yaml:"phases,omitempty"`
}

// PRD is one parsed requirements document plus where it came from.
type PRD struct {
	Frontmatter
	Path string
}

// DiscoveredSet is the fully-parsed in-memory representation of a parent PRD
// and all of its children, as produced by discovery or by an external
// collaborator.
type DiscoveredSet struct {
	Parent   *PRD
	Children []*PRD
}

// All returns the parent followed by the children.
func (s *DiscoveredSet) All() []*PRD {
	if s.Parent == nil {
		return s.Children
	}
	return append([]*PRD{s.Parent}, s.Children...)
}

// Lookup finds a PRD in the set by id.
func (s *DiscoveredSet) Lookup(id string) (*PRD, bool) {
	for _, prd := range s.All() {
		if prd.ID == id {
			return prd, true
		}
	}
	return nil, false
}
