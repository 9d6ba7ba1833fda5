package graph

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "edges.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestReadEdgeList(t *testing.T) {
	path := writeTempFile(t, "# a comment\n1 2\n\n2 3\n# another\n1   3\n")

	el, err := ReadEdgeList(path)
	if err != nil {
		t.Fatalf("ReadEdgeList failed: %v", err)
	}
	if el.Len() != 3 {
		t.Fatalf("got %d edges, want 3", el.Len())
	}
	wantU := []int{1, 2, 1}
	wantV := []int{2, 3, 3}
	for e := 0; e < el.Len(); e++ {
		if el.Nodes[ColI][e] != wantU[e] || el.Nodes[ColJ][e] != wantV[e] {
			t.Errorf("edge %d = (%d,%d), want (%d,%d)",
				e, el.Nodes[ColI][e], el.Nodes[ColJ][e], wantU[e], wantV[e])
		}
	}
}

func TestReadEdgeListErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"one field", "1\n"},
		{"non-numeric", "1 abc\n"},
		{"negative label", "1 -2\n"},
		{"empty file", "# only comments\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, tt.content)
			if _, err := ReadEdgeList(path); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestReadEdgeListMissingFile(t *testing.T) {
	_, err := ReadEdgeList(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if errors.Is(err, ErrInvalidInput) {
		t.Error("missing file is an I/O error, not invalid input")
	}
}

func TestWriteCommunities(t *testing.T) {
	g := buildGraph(t, [][2]int{{10, 20}, {20, 30}})
	path := filepath.Join(t.TempDir(), "out.txt")

	if err := g.WriteCommunities(path, []int{0, 0, 1}); err != nil {
		t.Fatalf("WriteCommunities failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "10 0\n20 0\n30 1\n"
	if string(data) != want {
		t.Errorf("output = %q, want %q", string(data), want)
	}
}

func TestWriteCommunitiesLengthMismatch(t *testing.T) {
	g := buildGraph(t, [][2]int{{1, 2}})
	if err := g.WriteCommunities(filepath.Join(t.TempDir(), "out.txt"), []int{0}); err == nil {
		t.Error("expected error for short assignment")
	}
}

func TestEdgeListRoundTrip(t *testing.T) {
	g := buildGraph(t, [][2]int{{10, 20}, {20, 30}, {10, 30}})
	path := filepath.Join(t.TempDir(), "edges.txt")

	if err := g.WriteEdgeList(path); err != nil {
		t.Fatalf("WriteEdgeList failed: %v", err)
	}
	el, err := ReadEdgeList(path)
	if err != nil {
		t.Fatalf("re-read failed: %v", err)
	}
	g2, err := FromEdgeList(el)
	if err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}

	if g2.N != g.N || g2.M != g.M {
		t.Fatalf("round trip changed shape: n %d->%d, m %d->%d", g.N, g2.N, g.M, g2.M)
	}
	for v := 0; v <= g.N; v++ {
		if g.Offset[v] != g2.Offset[v] {
			t.Errorf("Offset[%d]: %d != %d", v, g.Offset[v], g2.Offset[v])
		}
	}
	// Same edges, neighbor-slice ordering aside.
	for id := 0; id < g.M; id++ {
		u, v := g.Endpoints(id)
		if !g2.HasEdge(u, v) {
			t.Errorf("edge {%d,%d} lost in round trip", u, v)
		}
	}
}

func TestWriteEdgeListSkipsCut(t *testing.T) {
	g := buildGraph(t, [][2]int{{1, 2}, {2, 3}})
	if err := g.CutEdge(0, 1); err != nil {
		t.Fatalf("CutEdge failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "edges.txt")
	if err := g.WriteEdgeList(path); err != nil {
		t.Fatalf("WriteEdgeList failed: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "2 3\n" {
		t.Errorf("output = %q, want %q", string(data), "2 3\n")
	}
}
