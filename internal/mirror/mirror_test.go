package mirror

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMap(t *testing.T) {
	m := New("/in", "/out")
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"top-level file", "/in/a.wav", "/out/a.wav", false},
		{"nested file", "/in/sub/deep/b.wav", "/out/sub/deep/b.wav", false},
		{"outside input root", "/elsewhere/c.wav", "", true},
		{"sibling with shared prefix", "/input2/d.wav", "", true},
		{"input root itself", "/in", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Map(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Map(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Map(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMap_RootInputDir(t *testing.T) {
	// Degenerate but well-defined: input root "/" maps /x/y.wav to /out/x/y.wav.
	m := New("/", "/out")
	got, err := m.Map("/x/y.wav")
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if got != "/out/x/y.wav" {
		t.Errorf("got %q, want /out/x/y.wav", got)
	}
}

func TestMap_SuffixPreservedByteForByte(t *testing.T) {
	m := New("/in", "/out")
	in := "/in/Season 01/ep 01 — final.wav"
	got, err := m.Map(in)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	rel, err := filepath.Rel("/out", got)
	if err != nil {
		t.Fatal(err)
	}
	if rel != "Season 01/ep 01 — final.wav" {
		t.Errorf("suffix changed: %q", rel)
	}
}

func TestEnsureParent(t *testing.T) {
	out := t.TempDir()
	m := New("/in", out)

	target := filepath.Join(out, "a", "b", "c.wav")
	if err := m.EnsureParent(target); err != nil {
		t.Fatalf("EnsureParent: %v", err)
	}
	fi, err := os.Stat(filepath.Join(out, "a", "b"))
	if err != nil || !fi.IsDir() {
		t.Errorf("parent directory missing: %v", err)
	}

	// Idempotent on an existing directory.
	if err := m.EnsureParent(target); err != nil {
		t.Errorf("EnsureParent (again): %v", err)
	}
}

func TestEnsureParent_FailsOnFileCollision(t *testing.T) {
	out := t.TempDir()
	m := New("/in", out)

	// A regular file where a directory is needed.
	block := filepath.Join(out, "sub")
	if err := os.WriteFile(block, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := m.EnsureParent(filepath.Join(out, "sub", "c.wav")); err == nil {
		t.Error("EnsureParent should fail when the parent is a regular file")
	}
}
