package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrSchemaValidation = errors.New("schema validation failed")
)

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// DocumentValidationError surfaces schema issues for one named document.
type DocumentValidationError struct {
	Document string
	// Schema names the schema the document was checked against.
	Schema   string
	Issues   []ValidationIssue
	Cause    error
}

func (e *DocumentValidationError) Error() string {
	prefix := strings.TrimSpace(e.Document)
	if prefix == "" {
		prefix = "document"
	}
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return prefix + ": " + e.Cause.Error()
		}
		return prefix + ": " + ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return prefix + ": " + strings.Join(parts, "; ")
}

func (e *DocumentValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var docErr *DocumentValidationError
	if errors.As(err, &docErr) && docErr != nil {
		return docErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// Schema is a compiled JSON schema used to check embedded documents.
type Schema struct {
	name     string
	compiled *jsonschema.Schema
}

// CompileSchema compiles a raw Draft 2020-12 schema document.
func CompileSchema(name string, raw []byte) (*Schema, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "schema.json"
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSchemaInvalid, name, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSchemaInvalid, name, err)
	}
	return &Schema{name: name, compiled: compiled}, nil
}

// ValidateDocument checks raw JSON against the schema. document names the
// payload in returned errors.
func (s *Schema) ValidateDocument(document string, raw []byte) error {
	if s == nil || s.compiled == nil {
		return nil
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return &DocumentValidationError{
			Document: document,
			Schema:   s.name,
			Issues:   []ValidationIssue{{Message: err.Error()}},
			Cause:    err,
		}
	}
	if err := s.compiled.Validate(payload); err != nil {
		return &DocumentValidationError{
			Document: document,
			Schema:   s.name,
			Issues:   Issues(err),
			Cause:    err,
		}
	}
	return nil
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
