package runner

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/permit-availability/internal/providers"
)

// normalizeSourceName returns a lower-cased source name, deriving from the instance when not explicitly configured.
// Used for the instrumentation label so logs and metrics agree.
func normalizeSourceName(raw string, source providers.Source) string {
	if raw != "" {
		return strings.ToLower(raw)
	}
	if named, ok := source.(interface{ Name() string }); ok {
		return strings.ToLower(named.Name())
	}
	if source != nil {
		return strings.ToLower(fmt.Sprintf("%T", source))
	}
	return "source"
}
