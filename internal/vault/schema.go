package vault

import (
	"fmt"
	"slices"

	verrors "github.com/stencil-cli/stencil/internal/errors"
)

// Record is a credential record for one service: a mapping of field name to
// value. In memory all values are plaintext; in the persisted document
// sensitive fields are sealed (see SealRecord).
type Record map[string]string

// ServiceSchema describes the field contract for one service id.
type ServiceSchema struct {
	Required  []string
	Optional  []string
	Sensitive []string
}

// serviceSchemas is the static table of known service contracts. Sensitive
// is always a subset of Required ∪ Optional; those fields are never persisted
// in cleartext.
var serviceSchemas = map[string]ServiceSchema{
	"stripe": {
		Required:  []string{"api_key"},
		Optional:  []string{"webhook_secret", "account_id"},
		Sensitive: []string{"api_key", "webhook_secret"},
	},
	"openai": {
		Required:  []string{"api_key"},
		Optional:  []string{"organization", "base_url"},
		Sensitive: []string{"api_key"},
	},
	"anthropic": {
		Required:  []string{"api_key"},
		Optional:  []string{"base_url"},
		Sensitive: []string{"api_key"},
	},
	"github": {
		Required:  []string{"token"},
		Optional:  []string{"username", "default_org"},
		Sensitive: []string{"token"},
	},
	"vercel": {
		Required:  []string{"token"},
		Optional:  []string{"team_id"},
		Sensitive: []string{"token"},
	},
	"netlify": {
		Required:  []string{"token"},
		Optional:  []string{"site_id"},
		Sensitive: []string{"token"},
	},
	"aws": {
		Required:  []string{"access_key_id", "secret_access_key"},
		Optional:  []string{"region", "session_token"},
		Sensitive: []string{"secret_access_key", "session_token"},
	},
	"supabase": {
		Required:  []string{"url", "anon_key"},
		Optional:  []string{"service_role_key"},
		Sensitive: []string{"anon_key", "service_role_key"},
	},
}

// KnownServices returns the sorted list of service ids with a schema.
func KnownServices() []string {
	ids := make([]string, 0, len(serviceSchemas))
	for id := range serviceSchemas {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// SchemaFor returns the schema for a service id, if one is defined.
func SchemaFor(serviceID string) (ServiceSchema, bool) {
	schema, ok := serviceSchemas[serviceID]
	return schema, ok
}

// SensitiveFields returns the sensitive field set for a service id, or an
// empty set for unknown services. Rotation backup ids resolve to their live
// service's set, so a backed-up token is treated as sensitive everywhere the
// live one is.
func SensitiveFields(serviceID string) []string {
	return serviceSchemas[baseServiceID(serviceID)].Sensitive
}

// ValidateRecord checks a record against the service's schema.
//
// For known services every required field must be present and non-empty;
// a missing field is a validation error naming the field. Fields outside
// required ∪ optional are reported as warnings, not rejected. For unknown
// service ids validation is a no-op with a warning, so credentials for
// services Stencil doesn't ship a contract for still pass through.
func ValidateRecord(serviceID string, record Record) (warnings []string, err error) {
	schema, ok := serviceSchemas[serviceID]
	if !ok {
		return []string{fmt.Sprintf("no schema defined for service %q, storing fields unchecked", serviceID)}, nil
	}

	for _, field := range schema.Required {
		if record[field] == "" {
			return warnings, fmt.Errorf("service %q is missing required field %q: %w",
				serviceID, field, verrors.ErrValidation)
		}
	}

	for field := range record {
		if !slices.Contains(schema.Required, field) && !slices.Contains(schema.Optional, field) {
			warnings = append(warnings, fmt.Sprintf("field %q is not part of the %q schema", field, serviceID))
		}
	}

	return warnings, nil
}
