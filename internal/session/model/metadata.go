// SPDX-License-Identifier: MIT

package model

import "fmt"

// Metadata is a caller-supplied string-keyed map of variant values. The
// engine never interprets it; it is validated only for structural
// well-formedness and stored as-is.
type Metadata map[string]any

// maxMetadataDepth bounds nesting so a hostile payload cannot recurse
// without limit.
const maxMetadataDepth = 16

// Validate checks that every value is a JSON-like variant: string, number,
// bool, nil, a nested string-keyed map or an array of variants.
func (m Metadata) Validate() error {
	for key, value := range m {
		if err := validateValue(value, 1); err != nil {
			return fmt.Errorf("metadata key %q: %w", key, err)
		}
	}
	return nil
}

func validateValue(v any, depth int) error {
	if depth > maxMetadataDepth {
		return fmt.Errorf("nesting exceeds %d levels", maxMetadataDepth)
	}
	switch val := v.(type) {
	case nil, string, bool,
		float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return nil
	case map[string]any:
		for key, nested := range val {
			if err := validateValue(nested, depth+1); err != nil {
				return fmt.Errorf("key %q: %w", key, err)
			}
		}
		return nil
	case []any:
		for i, item := range val {
			if err := validateValue(item, depth+1); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported value type %T", v)
	}
}
