package internal

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// GenerateSessionID creates a unique ID for a quiz session based on the
// start time and the words that were picked.
// Format: epochMillis_md5(words)[:8]
func GenerateSessionID(words []string) string {
	epochMillis := time.Now().UnixNano() / 1000000

	hash := md5.Sum([]byte(strings.Join(words, "\x00")))
	hashStr := hex.EncodeToString(hash[:])[:8]

	return fmt.Sprintf("%d_%s", epochMillis, hashStr)
}

// SanitizeFilename creates a safe filename from a string
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
