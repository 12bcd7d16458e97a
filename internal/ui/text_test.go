package ui

import (
	"testing"
)

func TestEnsureNewline(t *testing.T) {
	if got := EnsureNewline("done"); got != "done\n" {
		t.Errorf("Expected trailing newline, got %q", got)
	}
	if got := EnsureNewline("done\n"); got != "done\n" {
		t.Errorf("Expected unchanged string, got %q", got)
	}
	if got := EnsureNewline(""); got != "\n" {
		t.Errorf("Expected single newline for empty input, got %q", got)
	}
}

func TestFormatterNoColorDecoration(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	if got := Code.Sprint("stencil creds list"); got != "`stencil creds list`" {
		t.Errorf("Expected backtick decoration, got %q", got)
	}
	if got := Highlight.Sprint("stripe"); got != "'stripe'" {
		t.Errorf("Expected quote decoration, got %q", got)
	}
	if got := Path.Sprint("/tmp/vault"); got != "/tmp/vault" {
		t.Errorf("Expected undecorated path, got %q", got)
	}
}
