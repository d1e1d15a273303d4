package validation

import (
	"errors"
	"strings"
	"testing"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
)

const tableSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["region", "facts"],
	"additionalProperties": false,
	"properties": {
		"region": {"type": "string", "minLength": 1},
		"facts": {
			"type": "object",
			"additionalProperties": {
				"type": "array",
				"minItems": 1,
				"items": {"type": "string"}
			}
		}
	}
}`

func TestCompileSchemaRejectsMalformedSchema(t *testing.T) {
	_, err := CompileSchema("broken.json", []byte(`{"type": 12}`))
	if !errors.Is(err, ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid, got %v", err)
	}
}

func TestValidateDocument(t *testing.T) {
	schema, err := CompileSchema("table.json", []byte(tableSchema))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	t.Run("accepts valid document", func(t *testing.T) {
		doc := []byte(`{"region": "europe", "facts": {"DE": ["one"]}}`)
		if err := schema.ValidateDocument("europe.json", doc); err != nil {
			t.Fatalf("expected valid document, got %v", err)
		}
	})

	t.Run("reports issues with location", func(t *testing.T) {
		doc := []byte(`{"region": "europe", "facts": {"DE": []}}`)
		err := schema.ValidateDocument("europe.json", doc)
		if !errors.Is(err, ErrSchemaValidation) {
			t.Fatalf("expected ErrSchemaValidation, got %v", err)
		}
		issues := Issues(err)
		if len(issues) == 0 {
			t.Fatal("expected at least one issue")
		}
		if !strings.Contains(issues[0].Location, "DE") {
			t.Fatalf("expected issue location to reference DE, got %q", issues[0].Location)
		}
		if !strings.HasPrefix(err.Error(), "europe.json: ") {
			t.Fatalf("expected document name in error, got %q", err.Error())
		}
		var docErr *DocumentValidationError
		if !errors.As(err, &docErr) || docErr.Schema != "table.json" {
			t.Fatalf("expected schema name on the error, got %+v", docErr)
		}
	})

	t.Run("reports malformed json", func(t *testing.T) {
		err := schema.ValidateDocument("broken.json", []byte(`{`))
		if !errors.Is(err, ErrSchemaValidation) {
			t.Fatalf("expected ErrSchemaValidation, got %v", err)
		}
	})
}

func TestRules(t *testing.T) {
	if err := ozzo.Validate("DE", CountryCode); err != nil {
		t.Fatalf("expected DE to pass, got %v", err)
	}
	if err := ozzo.Validate("de", CountryCode); err == nil {
		t.Fatal("expected lowercase country code to fail")
	}
	if err := ozzo.Validate("DEFAULT", CountryCode); err == nil {
		t.Fatal("expected reserved code to fail country rule")
	}
	if err := ozzo.Validate("en-GB", Locale); err != nil {
		t.Fatalf("expected en-GB to pass, got %v", err)
	}
	if err := ozzo.Validate("Water", Category); err == nil {
		t.Fatal("expected uppercase category to fail")
	}
	if !IsCountryCode("US") || IsCountryCode("USA") {
		t.Fatal("unexpected IsCountryCode result")
	}
}
