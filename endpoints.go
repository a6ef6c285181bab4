package threatconnect

// Endpoint paths, relative to /api/v3.
const (
	// Threat intelligence
	EndpointIndicators = "/indicators"
	EndpointIndicator  = "/indicators/" // append id or summary
	EndpointGroups     = "/groups"
	EndpointGroup      = "/groups/" // append id
	EndpointTags       = "/tags"

	// Security
	EndpointOwners = "/security/owners"
)

// MaxResultLimit is the largest page the API returns for one request.
const MaxResultLimit = 10000
