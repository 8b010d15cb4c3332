package options

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
)

// Fingerprint derives the cache key for a resolved configuration: the
// canonical JSON encoding of the Options struct (field order is fixed by the
// struct declaration) hashed with SHA-256 and rendered as base64. Equal
// Options values always produce the same fingerprint; the digest width makes
// collisions between distinct values negligible for cache correctness. The
// fingerprint is an internal index, not tamper-evident, and is never parsed
// back.
func Fingerprint(o Options) string {
	data, err := json.Marshal(o)
	if err != nil {
		// A flat struct of strings, numbers and bools cannot fail to marshal.
		panic("options: fingerprint encoding: " + err.Error())
	}
	sum := sha256.Sum256(data)
	return base64.StdEncoding.EncodeToString(sum[:])
}
