package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ContentHash returns the deduplication digest for quote content: the
// lowercase hex SHA-256 of the text after trimming leading and trailing
// whitespace. Two submissions that differ only in surrounding whitespace
// produce the same hash.
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(content)))
	return hex.EncodeToString(sum[:])
}
