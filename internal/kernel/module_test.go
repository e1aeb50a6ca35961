package kernel

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseModuleLineAppendsSeventhColumn(t *testing.T) {
	lines := []string{
		"nvidia 35454976 64 nvidia_modeset, Live 0xffffffffc0d4b000 (POE)",
		"vboxdrv 552960 2 vboxnetadp,vboxnetflt, Live 0xffffffffc0a11000 (OE)",
		"a b c d e f g h",
	}
	for _, line := range lines {
		columns := strings.Fields(line)
		mod, err := ParseModuleLine(line)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", line, err)
		}
		want := columns[0] + " " + columns[6]
		if mod.Name != want {
			t.Fatalf("expected name %q, got %q", want, mod.Name)
		}
		if mod.Base() != columns[0] {
			t.Fatalf("expected base %q, got %q", columns[0], mod.Base())
		}
	}
}

func TestParseModuleLineColumns(t *testing.T) {
	mod, err := ParseModuleLine("abc 1024 2 xyz,def, Live 0xffffffffc0a00000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Module{
		Name:       "abc",
		Size:       "1.0 kB",
		UseCount:   2,
		UsedBy:     "2 xyz,def",
		Dependents: []string{"xyz", "def"},
		Raw:        "abc 1024 2 xyz,def, Live 0xffffffffc0a00000",
	}
	if diff := cmp.Diff(want, mod); diff != "" {
		t.Fatalf("unexpected module (-want +got):\n%s", diff)
	}

	mod, err = ParseModuleLine("def 2048 0 - Live 0xffffffffc0b00000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mod.Dependents != nil {
		t.Fatalf("expected no dependents, got %v", mod.Dependents)
	}
	if mod.UsedBy != "0 -" {
		t.Fatalf("expected used by %q, got %q", "0 -", mod.UsedBy)
	}
}

func TestParseModuleLineRejectsShortLines(t *testing.T) {
	_, err := ParseModuleLine("abc 1024 2")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if parseErr.Columns != 3 {
		t.Fatalf("expected 3 columns, got %d", parseErr.Columns)
	}
}

func TestParseModulesSkipsBlankLines(t *testing.T) {
	modules, err := parseModules("a 1 0 -\n\n  \nb 2 0 -\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(modules) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(modules))
	}
	if _, err := parseModules("a 1 0 -\nbroken\n"); err == nil {
		t.Fatalf("expected error for malformed line")
	}
}

func TestBaseOfEmptyName(t *testing.T) {
	if got := (Module{}).Base(); got != "?" {
		t.Fatalf("expected ?, got %q", got)
	}
}
