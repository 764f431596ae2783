package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// TextKey generates a cache key for the extracted text of a case slug
func TextKey(slug string) string {
	hash := sha256.Sum256([]byte(slug))
	return "casebrief:text:v1:" + hex.EncodeToString(hash[:])
}
