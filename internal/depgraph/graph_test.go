package depgraph

import (
	"errors"
	"reflect"
	"testing"
)

func TestAddReference_Idempotent(t *testing.T) {
	g := New()
	g.AddFlow("Main")
	g.AddReference("Main", "Greeting")
	g.AddReference("Main", "Greeting")

	deps := g.DependenciesOf("Main")
	if !reflect.DeepEqual(deps, []string{"Greeting"}) {
		t.Errorf("DependenciesOf(Main) = %v, want [Greeting]", deps)
	}
}

func TestAddReference_CreatesTargetNode(t *testing.T) {
	g := New()
	g.AddReference("Main", "Missing")

	nodes := g.Nodes()
	if !reflect.DeepEqual(nodes, []string{"Main", "Missing"}) {
		t.Errorf("Nodes() = %v, want [Main Missing]", nodes)
	}
}

func TestDependenciesOf_DiscoveryOrder(t *testing.T) {
	g := New()
	g.AddFlow("Main")
	g.AddFlow("Greeting")
	g.AddFlow("Billing")
	g.AddReference("Main", "Greeting")
	g.AddReference("Main", "Billing")

	deps := g.DependenciesOf("Main")
	if !reflect.DeepEqual(deps, []string{"Greeting", "Billing"}) {
		t.Errorf("DependenciesOf(Main) = %v, want [Greeting Billing]", deps)
	}
}

func TestDependencyOrder_TargetsBeforeSources(t *testing.T) {
	g := New()
	g.AddFlow("Main")
	g.AddFlow("Greeting")
	g.AddFlow("Billing")
	g.AddReference("Main", "Greeting")
	g.AddReference("Main", "Billing")
	g.AddReference("Billing", "Greeting")

	order, err := g.DependencyOrder()
	if err != nil {
		t.Fatalf("DependencyOrder failed: %v", err)
	}
	if len(order) != 3 {
		t.Fatalf("expected 3 flows in order, got %d: %v", len(order), order)
	}

	index := make(map[string]int, len(order))
	for i, name := range order {
		index[name] = i
	}
	// For every edge (source, target), the target must come first.
	edges := [][2]string{{"Main", "Greeting"}, {"Main", "Billing"}, {"Billing", "Greeting"}}
	for _, e := range edges {
		if index[e[1]] >= index[e[0]] {
			t.Errorf("order %v places %s after its dependent %s", order, e[1], e[0])
		}
	}
}

func TestDependencyOrder_Deterministic(t *testing.T) {
	build := func() *Graph {
		g := New()
		g.AddFlow("A")
		g.AddFlow("B")
		g.AddFlow("C")
		g.AddReference("A", "C")
		return g
	}

	first, err := build().DependencyOrder()
	if err != nil {
		t.Fatalf("DependencyOrder failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := build().DependencyOrder()
		if err != nil {
			t.Fatalf("DependencyOrder failed: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("order not deterministic: %v vs %v", first, again)
		}
	}
}

func TestDependencyOrder_CycleFails(t *testing.T) {
	g := New()
	g.AddReference("A", "B")
	g.AddReference("B", "A")

	_, err := g.DependencyOrder()
	var cycleErr *NotAcyclicError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("expected NotAcyclicError, got %v", err)
	}
	if len(cycleErr.Cycles) == 0 {
		t.Error("expected the error to carry the cycles")
	}
}

func TestCycles_None(t *testing.T) {
	g := New()
	g.AddReference("A", "B")
	g.AddReference("B", "C")

	if g.HasCycles() {
		t.Error("HasCycles() = true for an acyclic graph")
	}
	if cycles := g.Cycles(); len(cycles) != 0 {
		t.Errorf("Cycles() = %v, want none", cycles)
	}
}

func TestCycles_Triangle(t *testing.T) {
	g := New()
	g.AddReference("A", "B")
	g.AddReference("B", "C")
	g.AddReference("C", "A")

	if !g.HasCycles() {
		t.Fatal("HasCycles() = false for a cyclic graph")
	}
	cycles := g.Cycles()
	if len(cycles) != 1 {
		t.Fatalf("expected exactly 1 cycle, got %d: %v", len(cycles), cycles)
	}
	if !reflect.DeepEqual(cycles[0], []string{"A", "B", "C"}) {
		t.Errorf("cycle = %v, want [A B C]", cycles[0])
	}
}

func TestCycles_SelfReference(t *testing.T) {
	g := New()
	g.AddReference("A", "A")

	cycles := g.Cycles()
	if len(cycles) != 1 || !reflect.DeepEqual(cycles[0], []string{"A"}) {
		t.Errorf("Cycles() = %v, want [[A]]", cycles)
	}
}

func TestCycles_TwoDistinct(t *testing.T) {
	g := New()
	g.AddReference("A", "B")
	g.AddReference("B", "A")
	g.AddReference("C", "D")
	g.AddReference("D", "C")

	cycles := g.Cycles()
	if len(cycles) != 2 {
		t.Errorf("expected 2 cycles, got %d: %v", len(cycles), cycles)
	}
}

func TestDependencies_EveryNodeListed(t *testing.T) {
	g := New()
	g.AddFlow("Main")
	g.AddReference("Main", "Greeting")

	deps := g.Dependencies()
	if len(deps) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(deps))
	}
	if deps[0].Name != "Main" || !reflect.DeepEqual(deps[0].DependsOn, []string{"Greeting"}) {
		t.Errorf("unexpected first entry: %+v", deps[0])
	}
	if deps[1].Name != "Greeting" || len(deps[1].DependsOn) != 0 {
		t.Errorf("unexpected second entry: %+v", deps[1])
	}
}
