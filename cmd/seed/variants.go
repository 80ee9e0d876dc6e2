package main

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"readiness/internal/assessment"
	"readiness/internal/model"
)

// variantFile is the on-disk layout of a variant definition file
type variantFile struct {
	Variants []*model.Variant `yaml:"variants"`
}

// loadVariants decodes and validates variant definitions
func loadVariants(r io.Reader, factory *assessment.Factory) ([]*model.Variant, error) {
	var file variantFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode variants: %w", err)
	}

	seen := make(map[string]bool, len(file.Variants))
	for i, v := range file.Variants {
		if v == nil {
			return nil, fmt.Errorf("variant %d: empty definition", i)
		}
		if v.Name == "" {
			return nil, fmt.Errorf("variant %d: name is required", i)
		}
		if _, err := factory.GetAssessmentMetadata(v.AssessmentType); err != nil {
			return nil, fmt.Errorf("variant %q: %w", v.Name, err)
		}
		if v.Weight < 0 {
			return nil, fmt.Errorf("variant %q: weight must not be negative", v.Name)
		}
		if v.Weight > model.MaxVariantWeight {
			return nil, fmt.Errorf("variant %q: weight must not exceed %d", v.Name, model.MaxVariantWeight)
		}
		if v.ID != "" {
			if seen[v.ID] {
				return nil, fmt.Errorf("variant %q: duplicate id %s", v.Name, v.ID)
			}
			seen[v.ID] = true
		}
	}
	return file.Variants, nil
}
