// Package notify provides the human-readable message templates effects use
// when building an OperationError, per spec.md §7 "User-visible behavior".
package notify

import (
	"fmt"

	"github.com/goldbarth/arcflow/internal/core/types"
)

// Message renders a human-readable sentence for an operation failure,
// incorporating the operation name and, when non-empty, the detail text.
func Message(category types.ErrorCategory, operation string, detail string) string {
	prefix := categoryPrefix(category)
	if detail == "" {
		return fmt.Sprintf("%s: %s", prefix, operation)
	}
	return fmt.Sprintf("%s: %s (%s)", prefix, operation, detail)
}

func categoryPrefix(c types.ErrorCategory) string {
	switch c {
	case types.CategoryValidation:
		return "Validation failed"
	case types.CategoryNotFound:
		return "Not found"
	case types.CategoryTransient:
		return "Temporary failure"
	case types.CategoryExternal:
		return "External service error"
	default:
		return "Unexpected error"
	}
}
