// Package cachekey canonicalizes arbitrary structured values (the kind of
// value the query cache uses as a lookup key) into a deterministic
// fingerprint. Two keys that denote the same structured value modulo map
// key order hash equal.
package cachekey

import (
	"crypto/md5" //nolint:gosec // collision resistance is not required, only determinism
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Key is any structured value accepted by Hash: string, bool, an
// integer or float kind, nil, a slice of Key-able values, or a
// map[string]any of Key-able values. Struct values should be converted to
// one of these shapes by the caller before fingerprinting.
type Key any

// Fingerprint is a 128-bit digest rendered as a lowercase hex string.
type Fingerprint string

// Hash canonicalizes v and returns its fingerprint. Two values that are
// equal modulo map key ordering always produce the same Fingerprint.
func Hash(v Key) Fingerprint {
	var sb strings.Builder
	writeCanonical(&sb, v)
	sum := md5.Sum([]byte(sb.String())) //nolint:gosec
	return Fingerprint(fmt.Sprintf("%x", sum))
}

// HashAll combines the fingerprints of a named set of components into a
// single Fingerprint. It is the usual way to build a querycache.Key out of a
// component name and its arguments, e.g. HashAll("serverDocument", uri).
func HashAll(parts ...Key) Fingerprint {
	return Hash(parts)
}

func writeCanonical(sb *strings.Builder, v Key) {
	switch t := v.(type) {
	case nil:
		sb.WriteString("n:")
	case string:
		sb.WriteString("s:")
		sb.WriteString(strconv.Itoa(len(t)))
		sb.WriteByte(':')
		sb.WriteString(t)
	case bool:
		sb.WriteString("b:")
		if t {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	case int:
		writeNumber(sb, float64(t))
	case int64:
		writeNumber(sb, float64(t))
	case float64:
		writeNumber(sb, t)
	case []Key:
		sb.WriteString("a:")
		sb.WriteString(strconv.Itoa(len(t)))
		sb.WriteByte('[')
		for _, elem := range t {
			writeCanonical(sb, elem)
			sb.WriteByte(',')
		}
		sb.WriteByte(']')
	case map[string]Key:
		writeMap(sb, t)
	case map[string]any:
		m := make(map[string]Key, len(t))
		for k, val := range t {
			m[k] = val
		}
		writeMap(sb, m)
	case Fingerprint:
		sb.WriteString("f:")
		sb.WriteString(string(t))
	case fmt.Stringer:
		writeCanonical(sb, t.String())
	default:
		// Fall back to a stable textual representation. This keeps Hash total
		// over any Go value while still being deterministic for a fixed v.
		sb.WriteString("x:")
		sb.WriteString(fmt.Sprintf("%#v", t))
	}
}

func writeMap(sb *strings.Builder, m map[string]Key) {
	keys := make([]string, 0, len(m))
	for k, v := range m {
		if v == nil {
			continue // undefined fields are dropped during canonicalization
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sb.WriteString("m:")
	sb.WriteString(strconv.Itoa(len(keys)))
	sb.WriteByte('{')
	for _, k := range keys {
		writeCanonical(sb, k)
		sb.WriteByte(':')
		writeCanonical(sb, m[k])
		sb.WriteByte(',')
	}
	sb.WriteByte('}')
}

func writeNumber(sb *strings.Builder, f float64) {
	sb.WriteString("i:")
	sb.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
}
