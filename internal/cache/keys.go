package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// GlobalKeyPrefix namespaces every key this service writes.
const GlobalKeyPrefix = "wikiquiz"

// GenerateCacheKey joins prefix, service, object type and identifier with
// ":". Extra params are joined with "_" into one trailing segment.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	parts := []string{GlobalKeyPrefix, serviceName, objectType, identifier}
	if len(paramsKey) > 0 {
		parts = append(parts, strings.Join(paramsKey, "_"))
	}
	return strings.Join(parts, ":")
}

// GenerationLockKey is the key guarding quiz generation for url.
func GenerationLockKey(url string) string {
	return GenerateCacheKey("generation", "lock", HashIdentifier(url))
}

// HashIdentifier shortens arbitrary text (such as a URL) into a stable key
// segment.
func HashIdentifier(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
