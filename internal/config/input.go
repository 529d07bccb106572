// Package config parses and validates taxpayer input files. The engine
// consumes only the strict domain.TaxpayerInput produced here; loose or
// string-typed fields belong to outer adapter layers, never the engine.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/piechiang/taxengine/internal/domain"
)

// InputParser handles parsing of taxpayer input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a taxpayer record from a YAML file. The record is
// validated; blocking problems are returned as a ValidationError carrying
// the full field list.
func (ip *InputParser) LoadFromFile(filename string) (*domain.TaxpayerInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var input domain.TaxpayerInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if errs := Validate(&input); len(errs) > 0 {
		return &input, &ValidationError{Fields: errs}
	}
	return &input, nil
}

// ValidationError carries every field-level problem found in one pass.
type ValidationError struct {
	Fields []domain.FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("input validation failed: %s: %s", e.Fields[0].Field, e.Fields[0].Message)
	}
	return fmt.Sprintf("input validation failed: %d problems, first: %s: %s",
		len(e.Fields), e.Fields[0].Field, e.Fields[0].Message)
}
