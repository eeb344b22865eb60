package news

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentHash derives the duplicate-detection hash from title and summary.
// A collision is treated as a duplicate by the pipeline, never as an error.
func ContentHash(title, summary string) string {
	sum := sha256.Sum256([]byte(title + "||" + summary))
	return hex.EncodeToString(sum[:])
}
