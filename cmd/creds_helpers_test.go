package cmd

import (
	"strings"
	"testing"
)

func TestParseFieldArgs(t *testing.T) {
	record, err := parseFieldArgs([]string{"api_key=sk-abc", "base_url=https://example.com/v1?x=1"})
	if err != nil {
		t.Fatalf("failed to parse field args: %v", err)
	}
	if record["api_key"] != "sk-abc" {
		t.Errorf("expected api_key parsed, got %q", record["api_key"])
	}
	if record["base_url"] != "https://example.com/v1?x=1" {
		t.Errorf("expected value to keep everything after the first '=', got %q", record["base_url"])
	}
}

func TestParseFieldArgsRejectsMalformed(t *testing.T) {
	for _, arg := range []string{"api_key", "=value", ""} {
		if _, err := parseFieldArgs([]string{arg}); err == nil {
			t.Errorf("expected error for malformed argument %q", arg)
		}
	}
}

func TestMaskValueHidesSecret(t *testing.T) {
	masked := maskValue("sk-live-abcdef123456")
	if !strings.HasPrefix(masked, "sk-l") {
		t.Errorf("expected short visible prefix, got %q", masked)
	}
	if strings.Contains(masked, "abcdef") {
		t.Errorf("masked value still reveals the secret: %q", masked)
	}
}

func TestMaskValueShortInput(t *testing.T) {
	if masked := maskValue("abc"); masked != "***" {
		t.Errorf("expected short values fully masked, got %q", masked)
	}
}

func TestCredsCommandTree(t *testing.T) {
	root := GetCredsCmd()

	want := []string{"init", "set", "get", "remove", "list", "rotate", "export", "import", "cleanup"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand %q registered under creds", name)
		}
	}
}
