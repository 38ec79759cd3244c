package qa

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/FoxRav/documents-to-ai-readable-data/model"
)

const schemaCheckerName = "SchemaChecker"

//go:embed document.schema.json
var documentSchemaJSON string

var documentSchema = jsonschema.MustCompileString("document.schema.json", documentSchemaJSON)

// maxSchemaFindings caps leaf validation errors per run so a badly
// mangled document cannot flood the report.
const maxSchemaFindings = 20

// SchemaChecker validates the document against the serialization
// contract: the embedded JSON Schema for shape and types, plus
// structural checks the schema cannot express.
type SchemaChecker struct{}

// NewSchemaChecker creates a schema checker.
func NewSchemaChecker() *SchemaChecker {
	return &SchemaChecker{}
}

// Name identifies the checker in findings.
func (c *SchemaChecker) Name() string { return schemaCheckerName }

// Check validates the document.
func (c *SchemaChecker) Check(doc *model.Document) ([]model.Finding, error) {
	var findings []model.Finding

	if doc.PDF.Filename == "" {
		findings = append(findings, model.Finding{
			Checker:   c.Name(),
			PageIndex: 0,
			Reason:    "Missing PDF metadata",
			Severity:  model.SeverityError,
		})
	}
	if len(doc.Pages) == 0 {
		findings = append(findings, model.Finding{
			Checker:   c.Name(),
			PageIndex: 0,
			Reason:    "No pages in document",
			Severity:  model.SeverityError,
		})
	}
	for _, page := range doc.Pages {
		if page.Width <= 0 || page.Height <= 0 {
			findings = append(findings, model.Finding{
				Checker:   c.Name(),
				PageIndex: page.PageIndex,
				Reason:    fmt.Sprintf("Invalid page dimensions: %vx%v", page.Width, page.Height),
				Severity:  model.SeverityError,
			})
		}
	}

	schemaFindings, err := c.validateAgainstSchema(doc)
	if err != nil {
		return nil, err
	}
	return append(findings, schemaFindings...), nil
}

// validateAgainstSchema round-trips the document through JSON and
// validates the result, reporting each leaf violation.
func (c *SchemaChecker) validateAgainstSchema(doc *model.Document) ([]model.Finding, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}

	err = documentSchema.Validate(v)
	if err == nil {
		return nil, nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("validate document: %w", err)
	}

	var findings []model.Finding
	for _, leaf := range leafCauses(ve) {
		if len(findings) >= maxSchemaFindings {
			break
		}
		findings = append(findings, model.Finding{
			Checker:   c.Name(),
			PageIndex: 0,
			Reason:    fmt.Sprintf("Schema violation at %s: %s", leaf.InstanceLocation, leaf.Message),
			Severity:  model.SeverityError,
		})
	}
	return findings, nil
}

// leafCauses flattens a validation error tree to its leaves.
func leafCauses(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var leaves []*jsonschema.ValidationError
	for _, cause := range ve.Causes {
		leaves = append(leaves, leafCauses(cause)...)
	}
	return leaves
}
