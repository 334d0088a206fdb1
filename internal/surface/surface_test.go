package surface

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func quoteTree() []Node {
	return []Node{
		Heading(2, "Quote of the Day"),
		Text("Just do it"),
		Button("Like", "enter"),
	}
}

func TestQueries(t *testing.T) {
	t.Parallel()

	nodes := quoteTree()
	buttons := AllByRole(nodes, RoleButton)
	want := []Node{{Role: RoleButton, Name: "Like", Key: "enter"}}
	if diff := cmp.Diff(want, buttons); diff != "" {
		t.Fatalf("AllByRole mismatch (-want +got):\n%s", diff)
	}

	if node, ok := ByText(nodes, "Just do it"); !ok || node.Role != RoleText {
		t.Fatalf("ByText = (%+v, %v)", node, ok)
	}
	if _, ok := ByText(nodes, "Just do"); ok {
		t.Fatalf("ByText must match the whole name")
	}
	if !ContainsText(nodes, "Just do") {
		t.Fatalf("ContainsText should match a substring")
	}
	if len(AllByRole(nodes, RoleStatus)) != 0 {
		t.Fatalf("unexpected status node")
	}
}

func TestVisual(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node Node
		want string
	}{
		{name: "text", node: Text("Just do it"), want: "Just do it"},
		{name: "status shows glyph", node: Status("Quote is loading...", "⣾ "), want: "⣾ "},
		{name: "status without glyph is blank", node: Status("Quote is loading...", ""), want: ""},
		{name: "button", node: Button("Liked", "enter"), want: "Liked"},
	}
	for _, tc := range tests {
		if got := tc.node.Visual(); got != tc.want {
			t.Fatalf("%s: Visual = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestRenderKeepsStatusReasonOffScreen(t *testing.T) {
	t.Parallel()

	out := Render([]Node{Status("Quote is loading...", "*")}, 80)
	if strings.Contains(out, "Quote is loading...") {
		t.Fatalf("status reason leaked into the rendering: %q", out)
	}
	if !strings.Contains(out, "*") {
		t.Fatalf("spinner glyph missing: %q", out)
	}
}

func TestRenderOrderAndWrap(t *testing.T) {
	t.Parallel()

	nodes := append(quoteTree(), Alert("Error loading quote. Please try again later"))
	out := Render(nodes, 20)
	heading := strings.Index(out, "Quote of the Day")
	body := strings.Index(out, "Just do it")
	button := strings.Index(out, "Like")
	if heading < 0 || body < heading || button < body {
		t.Fatalf("nodes rendered out of order:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Please try again later") && strings.Contains(line, "Error loading") {
			t.Fatalf("long alert was not wrapped:\n%s", out)
		}
	}
}

func TestJoinBlocks(t *testing.T) {
	t.Parallel()

	got := JoinBlocks([]string{"a", "", "  ", "b"})
	if got != "a\n\nb" {
		t.Fatalf("JoinBlocks = %q", got)
	}
}
