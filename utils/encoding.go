package utils

import "encoding/base64"

// BytesToBase64 encodes the given bytes with the standard base64 alphabet.
func BytesToBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// Base64ToBytes decodes a standard base64 string.
func Base64ToBytes(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
