package cache

import (
	"fmt"
	"strings"
)

// Key builds a deterministic cache key from an operation name and its
// effective (post-clamp) parameters. Distinct clamped parameter sets never
// collide; identical ones always produce the same key.
func Key(operation string, params ...any) string {
	if len(params) == 0 {
		return operation
	}
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, operation)
	for _, p := range params {
		parts = append(parts, fmt.Sprintf("%v", p))
	}
	return strings.Join(parts, ":")
}
