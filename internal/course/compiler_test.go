package course

import (
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompile_Pentagon(t *testing.T) {
	dot, err := os.ReadFile("testdata/pentagon.dot")
	if err != nil {
		t.Fatal(err)
	}

	c, err := Compile(string(dot))
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"A", "B", "C", "D", "E"}, c.Vertices); diff != "" {
		t.Fatalf("vertices mismatch (-want +got):\n%s", diff)
	}

	if len(c.Bridges) != 6 {
		t.Fatalf("expected 6 bridges, got %d", len(c.Bridges))
	}
	if c.Bridges[0].ID != "e1" || c.Bridges[0].From != "A" || c.Bridges[0].To != "B" {
		t.Fatalf("unexpected first bridge: %+v", c.Bridges[0])
	}

	if !c.HasVertex("C") {
		t.Fatalf("expected vertex C")
	}
	if c.HasVertex("Z") {
		t.Fatalf("did not expect vertex Z")
	}

	b, ok := c.Bridge("shortcut")
	if !ok {
		t.Fatalf("expected bridge shortcut")
	}
	if b.From != "B" || b.To != "D" {
		t.Fatalf("unexpected shortcut endpoints: %+v", b)
	}
}

func TestCompile_DefaultsBridgeID(t *testing.T) {
	c, err := Compile(`digraph { A; B; A -> B; }`)
	if err != nil {
		t.Fatal(err)
	}
	if !c.HasBridge("A_B") {
		t.Fatalf("expected defaulted bridge id A_B, got %+v", c.Bridges)
	}
}

func TestCompile_RejectsDuplicateBridgeID(t *testing.T) {
	_, err := Compile(`digraph {
		A; B; C;
		A -> B [bridge="e1"];
		B -> C [bridge="e1"];
	}`)
	if err == nil || !strings.Contains(err.Error(), "duplicate bridge") {
		t.Fatalf("expected duplicate bridge error, got %v", err)
	}
}

func TestCompile_RejectsEmptyCourse(t *testing.T) {
	if _, err := Compile(`digraph {}`); err == nil {
		t.Fatalf("expected error for empty course")
	}
}

func TestCompile_RejectsInvalidDOT(t *testing.T) {
	if _, err := Compile(`digraph { A -> `); err == nil {
		t.Fatalf("expected parse error")
	}
}
