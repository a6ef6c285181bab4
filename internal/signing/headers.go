package signing

import (
	"net/http"
	"strconv"
)

// Header keys sent with every ThreatConnect v3 request.
const (
	HeaderAuthorization = "Authorization"
	HeaderTimestamp     = "Timestamp"
	HeaderAccept        = "Accept"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"
)

// Credentials holds the API identity needed for HMAC signing.
type Credentials struct {
	AccessID  string
	SecretKey string
}

// BuildHeaders returns the signed header set for one request. The same
// timestamp is embedded in the signature and sent in the Timestamp header,
// since the server re-derives the signature from that header.
func BuildHeaders(creds Credentials, method, pathAndQuery string, timestamp int64) (http.Header, error) {
	auth, err := Sign(creds, method, pathAndQuery, timestamp)
	if err != nil {
		return nil, err
	}

	h := http.Header{}
	h.Set(HeaderAuthorization, auth)
	h.Set(HeaderTimestamp, strconv.FormatInt(timestamp, 10))
	h.Set(HeaderAccept, ContentTypeJSON)
	h.Set(HeaderContentType, ContentTypeJSON)
	return h, nil
}
