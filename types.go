package threatconnect

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Envelopes
// ---------------------------------------------------------------------------

// ListResponse is the v3 envelope for collection endpoints. Next and Previous
// are absolute URLs the server offers for paging; this client does not follow
// them.
type ListResponse[T any] struct {
	Data     []T    `json:"data"`
	Count    int    `json:"count,omitempty"`
	Status   string `json:"status"`
	Next     string `json:"next,omitempty"`
	Previous string `json:"prev,omitempty"`
}

// ItemResponse is the v3 envelope for single-object endpoints.
type ItemResponse[T any] struct {
	Data    T      `json:"data"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ---------------------------------------------------------------------------
// Query
// ---------------------------------------------------------------------------

// Query holds the common collection parameters. Zero values are omitted.
type Query struct {
	TQL         string
	Fields      []string
	Owner       string
	Sorting     string
	ResultStart int
	ResultLimit int
}

// params returns q as ordered query parameters: tql, fields, owner, sorting,
// resultStart, resultLimit.
func (q Query) params() (Params, error) {
	if q.ResultStart < 0 {
		return nil, &ValidationError{Field: "resultStart", Message: "must not be negative"}
	}
	if q.ResultLimit < 0 || q.ResultLimit > MaxResultLimit {
		return nil, &ValidationError{Field: "resultLimit", Message: "must be between 0 and " + strconv.Itoa(MaxResultLimit)}
	}

	var p Params
	if q.TQL != "" {
		p = p.Add("tql", q.TQL)
	}
	p = appendFields(p, q.Fields)
	if q.Owner != "" {
		p = p.Add("owner", q.Owner)
	}
	if q.Sorting != "" {
		p = p.Add("sorting", q.Sorting)
	}
	if q.ResultStart > 0 {
		p = p.Add("resultStart", strconv.Itoa(q.ResultStart))
	}
	if q.ResultLimit > 0 {
		p = p.Add("resultLimit", strconv.Itoa(q.ResultLimit))
	}
	return p, nil
}

func appendFields(p Params, fields []string) Params {
	for _, f := range fields {
		if f != "" {
			p = p.Add("fields", f)
		}
	}
	return p
}

// ---------------------------------------------------------------------------
// Threat intelligence types
// ---------------------------------------------------------------------------

// Indicator is a v3 indicator. Only the type-specific fields matching Type are
// populated (IP for Address, HostName for Host, Text for URL, and so on).
type Indicator struct {
	ID                     int64           `json:"id"`
	Type                   string          `json:"type"`
	OwnerID                int64           `json:"ownerId"`
	OwnerName              string          `json:"ownerName"`
	DateAdded              time.Time       `json:"dateAdded"`
	LastModified           time.Time       `json:"lastModified"`
	Rating                 decimal.Decimal `json:"rating"`
	Confidence             int             `json:"confidence"`
	Summary                string          `json:"summary"`
	Description            string          `json:"description,omitempty"`
	Source                 string          `json:"source,omitempty"`
	WebLink                string          `json:"webLink"`
	Active                 bool            `json:"active"`
	PrivateFlag            bool            `json:"privateFlag"`
	ThreatAssessScore      int             `json:"threatAssessScore,omitempty"`
	ThreatAssessRating     decimal.Decimal `json:"threatAssessRating"`
	ThreatAssessConfidence decimal.Decimal `json:"threatAssessConfidence"`
	FalsePositives         int             `json:"falsePositives,omitempty"`
	Observations           int             `json:"observations,omitempty"`

	IP       string `json:"ip,omitempty"`
	HostName string `json:"hostName,omitempty"`
	Text     string `json:"text,omitempty"`
	Address  string `json:"address,omitempty"`
	MD5      string `json:"md5,omitempty"`
	SHA1     string `json:"sha1,omitempty"`
	SHA256   string `json:"sha256,omitempty"`

	Tags *TagList `json:"tags,omitempty"`
}

// Group is a v3 group (Adversary, Campaign, Incident, Report, ...).
type Group struct {
	ID           int64     `json:"id"`
	Type         string    `json:"type"`
	Name         string    `json:"name"`
	OwnerID      int64     `json:"ownerId"`
	OwnerName    string    `json:"ownerName"`
	DateAdded    time.Time `json:"dateAdded"`
	LastModified time.Time `json:"lastModified"`
	WebLink      string    `json:"webLink"`
	Status       string    `json:"status,omitempty"`
	EventDate    time.Time `json:"eventDate,omitempty"`
	Tags         *TagList  `json:"tags,omitempty"`
}

// Tag is a v3 tag.
type Tag struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	LastUsed    time.Time `json:"lastUsed,omitempty"`
}

// TagList is the nested form tags take when requested with fields=tags.
type TagList struct {
	Data []Tag `json:"data"`
}

// Owner is an organization, community or source the API user can read from.
type Owner struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}
