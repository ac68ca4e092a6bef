package prdset

import "testing"

func TestFindCycle(t *testing.T) {
	t.Run("acyclic chain", func(t *testing.T) {
		cycle := findCycle([]string{"a", "b", "c"}, map[string][]string{
			"b": {"a"},
			"c": {"b"},
		})
		if cycle != nil {
			t.Errorf("expected no cycle, got %v", cycle)
		}
	})

	t.Run("diamond is acyclic", func(t *testing.T) {
		cycle := findCycle([]string{"a", "b", "c", "d"}, map[string][]string{
			"b": {"a"},
			"c": {"a"},
			"d": {"b", "c"},
		})
		if cycle != nil {
			t.Errorf("expected no cycle, got %v", cycle)
		}
	})

	t.Run("three node cycle", func(t *testing.T) {
		cycle := findCycle([]string{"a", "b", "c"}, map[string][]string{
			"a": {"b"},
			"b": {"c"},
			"c": {"a"},
		})
		if cycle == nil {
			t.Fatal("expected a cycle")
		}
		if cycle[0] != cycle[len(cycle)-1] {
			t.Errorf("cycle path should close the loop, got %v", cycle)
		}
		if len(cycle) != 4 {
			t.Errorf("expected path of 4 nodes, got %v", cycle)
		}
	})

	t.Run("self dependency", func(t *testing.T) {
		cycle := findCycle([]string{"a"}, map[string][]string{"a": {"a"}})
		if cycle == nil {
			t.Fatal("expected self-loop to be a cycle")
		}
	})

	t.Run("dangling edges are ignored", func(t *testing.T) {
		cycle := findCycle([]string{"a"}, map[string][]string{"a": {"ghost"}})
		if cycle != nil {
			t.Errorf("unknown references are not cycles, got %v", cycle)
		}
	})

	t.Run("cycle in disconnected component", func(t *testing.T) {
		cycle := findCycle([]string{"a", "b", "c"}, map[string][]string{
			"b": {"c"},
			"c": {"b"},
		})
		if cycle == nil {
			t.Fatal("expected cycle in second component")
		}
	})
}
