package envpath

import (
	"os"
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name          string
		extraPaths    []string
		workspaceRoot string
		bundledPath   string
		inherited     string
		want          []string
	}{
		{
			name:          "relative joined against workspace, absolute passes through",
			extraPaths:    []string{"./lib", "/abs/x"},
			workspaceRoot: "/ws",
			bundledPath:   "/ext/python",
			inherited:     "/old",
			want:          []string{"/ws/lib", "/abs/x", "/ext/python", "/old"},
		},
		{
			name:        "no workspace leaves relative entries as-is",
			extraPaths:  []string{"lib"},
			bundledPath: "/ext/python",
			want:        []string{"lib", "/ext/python"},
		},
		{
			name:        "empty inherited path omitted",
			bundledPath: "/ext/python",
			want:        []string{"/ext/python"},
		},
		{
			name:      "empty bundled path omitted",
			inherited: "/old",
			want:      []string{"/old"},
		},
		{
			name:          "duplicates are kept",
			extraPaths:    []string{"/ext/python"},
			workspaceRoot: "/ws",
			bundledPath:   "/ext/python",
			want:          []string{"/ext/python", "/ext/python"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.extraPaths, tt.workspaceRoot, tt.bundledPath, tt.inherited)
			if len(got) != len(tt.want) {
				t.Fatalf("Resolve() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("entry %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestJoin(t *testing.T) {
	sep := string(os.PathListSeparator)
	got := Join([]string{"/a", "/b", "/c"})
	want := "/a" + sep + "/b" + sep + "/c"
	if got != want {
		t.Errorf("Join() = %q, want %q", got, want)
	}
}

func TestEnviron_ReplacesExisting(t *testing.T) {
	inherited := []string{"HOME=/home/me", Var + "=/old", "TERM=xterm"}
	env := Environ(inherited, []string{"/new"})

	var found int
	for _, e := range env {
		if strings.HasPrefix(e, Var+"=") {
			found++
			if e != Var+"=/new" {
				t.Errorf("got %q, want %q", e, Var+"=/new")
			}
		}
	}
	if found != 1 {
		t.Errorf("expected exactly one %s entry, got %d", Var, found)
	}
	if len(env) != len(inherited) {
		t.Errorf("len = %d, want %d", len(env), len(inherited))
	}
}

func TestEnviron_AppendsWhenMissing(t *testing.T) {
	env := Environ([]string{"HOME=/home/me"}, []string{"/new"})
	if env[len(env)-1] != Var+"=/new" {
		t.Errorf("expected appended %s entry, got %v", Var, env)
	}
}
