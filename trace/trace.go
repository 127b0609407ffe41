// Package trace provides content digesting and canonical JSON encoding
// for observability: correlating a calculateRamUsage invocation across
// logs and the optional history store. Digests are computed fresh on
// every call and never consulted to skip work — this is pure
// observability, not a cross-call cache.
package trace

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"sort"

	"lukechampine.com/blake3"
)

// CanonicalJSON converts a value to canonical JSON with stable key
// ordering, suitable for hashing or snapshot comparison.
func CanonicalJSON(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var obj interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}

	return canonicalMarshal(obj)
}

func canonicalMarshal(v interface{}) ([]byte, error) {
	switch val := v.(type) {
	case map[string]interface{}:
		return marshalSortedMap(val)
	case []interface{}:
		return marshalArray(val)
	default:
		return json.Marshal(v)
	}
}

func marshalSortedMap(m map[string]interface{}) ([]byte, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valBytes, err := canonicalMarshal(m[k])
		if err != nil {
			return nil, err
		}
		buf.Write(valBytes)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalArray(arr []interface{}) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')

	for i, v := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		valBytes, err := canonicalMarshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(valBytes)
	}

	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// Digest computes a BLAKE3 hash of data and returns it as bytes.
func Digest(data []byte) []byte {
	sum := blake3.Sum256(data)
	return sum[:]
}

// DigestHex computes a BLAKE3 hash and returns it as a hex string.
func DigestHex(data []byte) string {
	return hex.EncodeToString(Digest(data))
}

// InvocationID computes a correlation ID for one calculateRamUsage
// invocation: BLAKE3 of the entry-point source followed by the sorted,
// newline-joined resolvedFilePaths (duplicates are kept, not collapsed).
// Two invocations over identical source and identical path lists share an ID;
// this is used only to correlate log lines and history rows, never to
// short-circuit recomputation.
func InvocationID(entryCode string, resolvedFilePaths []string) string {
	sorted := append([]string(nil), resolvedFilePaths...)
	sort.Strings(sorted)

	var buf bytes.Buffer
	buf.WriteString(entryCode)
	buf.WriteByte('\n')
	for _, p := range sorted {
		buf.WriteString(p)
		buf.WriteByte('\n')
	}

	return DigestHex(buf.Bytes())
}
