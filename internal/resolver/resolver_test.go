package resolver

import (
	"io"
	"strings"
	"testing"
)

func TestResolve_Registered(t *testing.T) {
	table := New()
	table.Register("arn:flow-1", "Greeting")

	if got := table.Resolve("arn:flow-1"); got != "Greeting" {
		t.Errorf("Resolve(arn:flow-1) = %q, want Greeting", got)
	}
}

func TestResolve_UnknownEchoesID(t *testing.T) {
	table := New()

	if got := table.Resolve("arn:missing"); got != "arn:missing" {
		t.Errorf("Resolve(arn:missing) = %q, want the id itself", got)
	}
}

func TestRegister_SameNameTwiceIsSilent(t *testing.T) {
	var buf strings.Builder
	table := New()
	table.SetWarningOutput(&buf)

	table.Register("arn:flow-1", "Greeting")
	table.Register("arn:flow-1", "Greeting")

	if buf.Len() != 0 {
		t.Errorf("unexpected warning output: %q", buf.String())
	}
	if table.Len() != 1 {
		t.Errorf("Len() = %d, want 1", table.Len())
	}
}

func TestRegister_CollisionWarnsAndRemaps(t *testing.T) {
	var buf strings.Builder
	table := New()
	table.SetWarningOutput(&buf)

	table.Register("arn:flow-1", "Greeting")
	table.Register("arn:flow-1", "Billing")

	if got := table.Resolve("arn:flow-1"); got != "Billing" {
		t.Errorf("Resolve after remap = %q, want Billing", got)
	}
	warning := buf.String()
	if !strings.Contains(warning, "arn:flow-1") ||
		!strings.Contains(warning, `"Greeting"`) ||
		!strings.Contains(warning, `"Billing"`) {
		t.Errorf("warning missing detail: %q", warning)
	}
}

func TestLen(t *testing.T) {
	table := New()
	table.SetWarningOutput(io.Discard)
	if table.Len() != 0 {
		t.Fatalf("empty table Len() = %d", table.Len())
	}
	table.Register("a", "A")
	table.Register("b", "B")
	table.Register("a", "A2") // remap, not a new entry
	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}
}
