package transform

import (
	"strconv"
	"strings"
)

// dedupBy removes rows whose key matches an earlier row, keeping the first
// occurrence. Re-extraction over overlapping watermark windows can deliver
// identical records twice; the key is built from the non-primary-key columns
// so re-issued ids don't defeat the check.
func dedupBy[T any](rows []T, key func(T) string) []T {
	seen := make(map[string]struct{}, len(rows))
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

const keySep = "\x1f" // unit separator, cannot occur in column values.

// dedupKey joins column values into one composite key, distinguishing null
// from empty string.
func dedupKey(parts ...interface{}) string {
	b := strings.Builder{}
	for i, p := range parts {
		if i > 0 {
			b.WriteString(keySep)
		}
		switch v := p.(type) {
		case nil:
			b.WriteString("\x00")
		case string:
			b.WriteString(v)
		case *string:
			if v == nil {
				b.WriteString("\x00")
			} else {
				b.WriteString(*v)
			}
		case int64:
			b.WriteString(strconv.FormatInt(v, 10))
		case *int64:
			if v == nil {
				b.WriteString("\x00")
			} else {
				b.WriteString(strconv.FormatInt(*v, 10))
			}
		default:
			b.WriteString("?")
		}
	}
	return b.String()
}
