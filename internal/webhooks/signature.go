package webhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifyHMAC reports whether provided is the lowercase hex HMAC-SHA256 of body
// under secret. An empty secret or signature never verifies. The comparison is
// constant time.
func VerifyHMAC(secret string, body []byte, provided string) bool {
	if secret == "" || provided == "" {
		return false
	}
	expected := SignHMAC(secret, body)
	return hmac.Equal([]byte(expected), []byte(provided))
}

// SignHMAC returns lowercase hex of HMAC-SHA256 for use in headers
func SignHMAC(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
