package proxy

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Directions distinguish the request and response body shapes observed for
// the same endpoint.
const (
	DirectionRequest  = "req"
	DirectionResponse = "resp"
)

// SourceKey builds the registry key for one observed body. Paths are
// templated so that /widgets/17 and /widgets/23 sample the same source.
func SourceKey(method, path, direction string) string {
	return fmt.Sprintf("%s %s %s", method, TemplatePath(path), direction)
}

// ParseSourceKey splits a registry key back into its parts. Paths never
// contain spaces, so the three fields are unambiguous.
func ParseSourceKey(key string) (method, path, direction string, ok bool) {
	parts := strings.Split(key, " ")
	if len(parts) != 3 {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

// TemplatePath replaces path segments that look like identifiers (integers
// or uuids) with {argN} placeholders.
func TemplatePath(path string) string {
	nparams := 1
	parts := strings.Split(path, "/")
	resparts := make([]string, len(parts))
	for i, p := range parts {
		if p == "" {
			resparts[i] = p
			continue
		}
		if _, err := strconv.Atoi(p); err == nil {
			resparts[i] = fmt.Sprintf("{arg%d}", nparams)
			nparams++
		} else if _, err := uuid.Parse(p); err == nil {
			resparts[i] = fmt.Sprintf("{arg%d}", nparams)
			nparams++
		} else {
			resparts[i] = p
		}
	}
	return strings.Join(resparts, "/")
}
