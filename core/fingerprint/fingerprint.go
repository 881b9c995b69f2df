package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"catalog-sync/core/source"
)

// Digest is a hex-encoded SHA-256 content hash.
type Digest string

// Separator bytes used in the canonical serialization. They are escaped
// out of field values before joining, so a value can never fake a field
// boundary.
const (
	fieldSep = "\x1e" // record separator, between fields
	partSep  = "\x1f" // unit separator, between key/type/value and list members
)

// Hash computes the content fingerprint of an entity. It is pure and
// never fails: unrepresentable values degrade to their fmt string form.
//
// Canonicalization rules:
//   - fields are sorted by key, so field order never changes the digest
//   - list values (including reference lists) are sorted, so member
//     order never changes the digest
//   - nil and the empty string canonicalize to the same empty token
//   - numbers are formatted with the shortest exact representation
func Hash(e source.Entity) Digest {
	fields := make([]source.Field, len(e.Fields))
	copy(fields, e.Fields)
	sort.Slice(fields, func(i, j int) bool { return fields[i].Key < fields[j].Key })

	var b strings.Builder
	b.WriteString(escape(e.NaturalKey))
	for _, f := range fields {
		b.WriteString(fieldSep)
		b.WriteString(escape(f.Key))
		b.WriteString(partSep)
		b.WriteString(string(f.Type))
		b.WriteString(partSep)
		b.WriteString(canonicalValue(f.Value))
	}

	sum := sha256.Sum256([]byte(b.String()))
	return Digest(hex.EncodeToString(sum[:]))
}

// canonicalValue renders a field value as a deterministic string.
func canonicalValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return escape(val)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case []string:
		members := make([]string, len(val))
		for i, m := range val {
			members[i] = escape(m)
		}
		sort.Strings(members)
		return strings.Join(members, partSep)
	default:
		return escape(fmt.Sprintf("%v", val))
	}
}

// escape makes separator bytes representable inside values.
func escape(s string) string {
	if !strings.ContainsAny(s, "\\\x1e\x1f") {
		return s
	}
	r := strings.NewReplacer("\\", "\\\\", fieldSep, "\\r", partSep, "\\u")
	return r.Replace(s)
}
