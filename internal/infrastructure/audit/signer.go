package audit

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// SignatureHeader carries the payload signature on Kafka messages.
const SignatureHeader = "signature"

// SignPayload calculates the base64 HMAC-SHA256 signature of an encoded event.
func SignPayload(payload []byte, secretKey string) string {
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write(payload)
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// VerifyPayload reports whether signature matches payload under secretKey.
func VerifyPayload(payload []byte, signature, secretKey string) bool {
	expected, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write(payload)
	return hmac.Equal(h.Sum(nil), expected)
}
