// Package schema resolves which workspace column holds generated replies
package schema

import (
	"strings"

	perr "replyhub/internal/platform/errors"
)

// exactNames match after trimming surrounding whitespace.
// The original column keeps its untrimmed name for reads and writes
var exactNames = []string{"Reply", "reply", "Generated Reply", "Responded", "Response"}

// substrNames match case-insensitively anywhere in the column name
var substrNames = []string{"reply", "response", "responded"}

// reservedNames never serve as a reply column in the last-resort fallback
var reservedNames = map[string]struct{}{
	"Username":     {},
	"Comment":      {},
	"Account":      {},
	"Created time": {},
}

// ResolveReplyField finds the reply column among names, first match wins:
// trimmed exact match, then substring match, then the first column outside
// the reserved set. names must be in schema order. Returns false when no
// tier matches; callers then treat every row as unreplied
func ResolveReplyField(names []string) (string, bool) {
	if f, ok := exact(names); ok {
		return f, true
	}
	if f, ok := substr(names); ok {
		return f, true
	}
	for _, n := range names {
		if _, res := reservedNames[n]; !res {
			return n, true
		}
	}
	return "", false
}

// ResolveReplyFieldStrict is the write-path variant: no reserved-set
// fallback, but an untrimmed " Reply"/" reply" match is accepted, and a
// miss is an error naming every column so operators can fix the schema
func ResolveReplyFieldStrict(names []string) (string, error) {
	if f, ok := exact(names); ok {
		return f, nil
	}
	if f, ok := substr(names); ok {
		return f, nil
	}
	for _, n := range names {
		if n == " Reply" || n == " reply" {
			return n, nil
		}
	}
	return "", perr.Schemaf("no reply field in database, available fields: %s", strings.Join(names, ", "))
}

func exact(names []string) (string, bool) {
	for _, n := range names {
		t := strings.TrimSpace(n)
		for _, want := range exactNames {
			if t == want {
				return n, true
			}
		}
	}
	return "", false
}

func substr(names []string) (string, bool) {
	for _, n := range names {
		l := strings.ToLower(n)
		for _, want := range substrNames {
			if strings.Contains(l, want) {
				return n, true
			}
		}
	}
	return "", false
}
