package vault

import (
	"errors"
	"slices"
	"strings"
	"testing"

	verrors "github.com/stencil-cli/stencil/internal/errors"
)

func TestValidateRecordAcceptsCompleteRecord(t *testing.T) {
	warnings, err := ValidateRecord("stripe", Record{
		"api_key":        "sk_test_123",
		"webhook_secret": "whsec_456",
	})
	if err != nil {
		t.Fatalf("expected complete record to validate, got %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
}

func TestValidateRecordRejectsMissingRequiredField(t *testing.T) {
	_, err := ValidateRecord("stripe", Record{"webhook_secret": "whsec_456"})
	if !errors.Is(err, verrors.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if !strings.Contains(err.Error(), "api_key") {
		t.Errorf("expected error to name the missing field, got %q", err.Error())
	}
}

func TestValidateRecordRejectsEmptyRequiredField(t *testing.T) {
	_, err := ValidateRecord("github", Record{"token": ""})
	if !errors.Is(err, verrors.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty required field, got %v", err)
	}
}

func TestValidateRecordWarnsOnUnknownField(t *testing.T) {
	warnings, err := ValidateRecord("openai", Record{
		"api_key": "sk-abc",
		"color":   "blue",
	})
	if err != nil {
		t.Fatalf("unknown fields should warn, not fail: %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "color") {
		t.Fatalf("expected one warning naming the unknown field, got %v", warnings)
	}
}

func TestValidateRecordWarnsOnUnknownService(t *testing.T) {
	warnings, err := ValidateRecord("internal-billing", Record{"token": "x"})
	if err != nil {
		t.Fatalf("unknown services should pass through with a warning, got %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning for unknown service, got %v", warnings)
	}
}

func TestKnownServicesSortedAndComplete(t *testing.T) {
	services := KnownServices()
	if !slices.IsSorted(services) {
		t.Errorf("expected sorted service list, got %v", services)
	}
	for _, want := range []string{"anthropic", "aws", "github", "openai", "stripe", "supabase"} {
		if !slices.Contains(services, want) {
			t.Errorf("expected %q in known services, got %v", want, services)
		}
	}
}

func TestSensitiveFieldsResolveBackupIDs(t *testing.T) {
	fields := SensitiveFields("github_backup_1756600000000")
	if !slices.Contains(fields, "token") {
		t.Fatalf("expected backup id to inherit the live service's sensitive set, got %v", fields)
	}

	// A non-backup underscore suffix is not special.
	if fields := SensitiveFields("github_backup_notanumber"); len(fields) != 0 {
		t.Errorf("expected no sensitive fields for unknown service, got %v", fields)
	}
}

func TestSensitiveFieldsAreSubsetOfSchema(t *testing.T) {
	for _, serviceID := range KnownServices() {
		schema, ok := SchemaFor(serviceID)
		if !ok {
			t.Fatalf("known service %q has no schema", serviceID)
		}
		for _, field := range schema.Sensitive {
			if !slices.Contains(schema.Required, field) && !slices.Contains(schema.Optional, field) {
				t.Errorf("service %q marks %q sensitive but does not declare it", serviceID, field)
			}
		}
	}
}
