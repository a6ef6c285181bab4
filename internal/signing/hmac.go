package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
)

// AuthScheme is the prefix of every Authorization header value.
const AuthScheme = "TC"

// ErrEmptySecret is returned when the secret key carries no key material.
var ErrEmptySecret = errors.New("signing: secret key is empty")

// Message returns the exact string covered by the signature:
// pathAndQuery + ":" + method + ":" + timestamp.
func Message(pathAndQuery, method string, timestamp int64) string {
	return pathAndQuery + ":" + method + ":" + strconv.FormatInt(timestamp, 10)
}

// BuildHMACSignature computes the HMAC-SHA256 digest of the canonical message
// and returns it encoded with standard, padded base64.
//
// Parameters:
//   - secret: raw secret key; its bytes are used as the HMAC key as-is
//   - method: uppercase HTTP method (e.g. "GET")
//   - pathAndQuery: fully resolved "/api/v3{endpoint}[?query]" string
//   - timestamp: unix seconds captured once for the request
func BuildHMACSignature(secret, method, pathAndQuery string, timestamp int64) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	if !isMethodToken(method) {
		return "", fmt.Errorf("signing: invalid method %q", method)
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(Message(pathAndQuery, method, timestamp)))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// Sign returns the Authorization header value "TC {accessID}:{digest}".
func Sign(creds Credentials, method, pathAndQuery string, timestamp int64) (string, error) {
	digest, err := BuildHMACSignature(creds.SecretKey, method, pathAndQuery, timestamp)
	if err != nil {
		return "", err
	}
	return AuthScheme + " " + creds.AccessID + ":" + digest, nil
}

func isMethodToken(method string) bool {
	if method == "" {
		return false
	}
	for i := 0; i < len(method); i++ {
		if method[i] < 'A' || method[i] > 'Z' {
			return false
		}
	}
	return true
}
