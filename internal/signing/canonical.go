package signing

import "strings"

// APIPrefix is the versioned path every endpoint lives under.
const APIPrefix = "/api/v3"

// Pair is a single query parameter. Order is significant.
type Pair struct {
	Key   string
	Value string
}

// EncodeQuery serializes pairs as application/x-www-form-urlencoded, in the
// order given. Alphanumerics and "*-._" pass through, space becomes "+", and
// every other byte is percent-encoded with uppercase hex.
func EncodeQuery(pairs []Pair) string {
	if len(pairs) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		formEscape(&b, p.Key)
		b.WriteByte('=')
		formEscape(&b, p.Value)
	}
	return b.String()
}

// CanonicalPath returns "/api/v3{endpoint}", suffixed with "?{query}" when
// the query is non-empty. The result is what gets signed and what goes on
// the request line.
func CanonicalPath(endpoint, query string) string {
	if query == "" {
		return APIPrefix + endpoint
	}
	return APIPrefix + endpoint + "?" + query
}

const upperHex = "0123456789ABCDEF"

func formEscape(b *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
			b.WriteByte(c)
		case c == '*' || c == '-' || c == '.' || c == '_':
			b.WriteByte(c)
		case c == ' ':
			b.WriteByte('+')
		default:
			b.WriteByte('%')
			b.WriteByte(upperHex[c>>4])
			b.WriteByte(upperHex[c&0x0f])
		}
	}
}
