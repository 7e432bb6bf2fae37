package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint is a 256-bit content hash used as the prediction cache key.
type Fingerprint [sha256.Size]byte

// Hex returns the lowercase hex form, used for external cache backends and
// logs.
func (f Fingerprint) Hex() string {
	return hex.EncodeToString(f[:])
}

var crlfReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// NormalizeText canonicalizes text before fingerprinting: surrounding
// whitespace is trimmed and CRLF/CR line endings collapse to LF. The
// operation is idempotent, so whitespace-only variants of the same content
// share one cache entry.
func NormalizeText(text string) string {
	return strings.TrimSpace(crlfReplacer.Replace(text))
}

// Domain prefixes keep text and binary submissions from ever sharing a
// fingerprint: identical bytes route to different model variants depending on
// the content kind, so their scores must not share a cache entry.
const (
	textDomain  = "text\x00"
	imageDomain = "image\x00"
)

func fingerprint(domain string, content []byte) Fingerprint {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write(content)
	var fp Fingerprint
	copy(fp[:], h.Sum(nil))
	return fp
}

// FingerprintText hashes already-normalized text.
func FingerprintText(normalized string) Fingerprint {
	return fingerprint(textDomain, []byte(normalized))
}

// FingerprintBytes hashes raw binary content such as images, where text
// normalization does not apply.
func FingerprintBytes(content []byte) Fingerprint {
	return fingerprint(imageDomain, content)
}
