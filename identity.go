package threatconnect

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/tc-tui/threatconnect-go/internal/signing"
)

var instancePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]*$`)

// Identity is the API user and target deployment. The instance selects the
// host: https://{Instance}.threatconnect.com.
type Identity struct {
	AccessID  string
	SecretKey string
	Instance  string
}

// Validate reports every missing or malformed field.
func (id Identity) Validate() error {
	return validation.ValidateStruct(&id,
		validation.Field(&id.AccessID, validation.Required.Error("access id is required")),
		validation.Field(&id.SecretKey, validation.Required.Error("secret key is required")),
		validation.Field(&id.Instance,
			validation.Required.Error("instance is required"),
			validation.Match(instancePattern).Error("instance must be a single host label"),
		),
	)
}

// String redacts the secret key so identities are safe to print.
func (id Identity) String() string {
	return fmt.Sprintf("Identity{AccessID:%s SecretKey:<redacted> Instance:%s}", id.AccessID, id.Instance)
}

// GoString keeps %#v from printing the secret.
func (id Identity) GoString() string { return id.String() }

func (id Identity) credentials() signing.Credentials {
	return signing.Credentials{AccessID: id.AccessID, SecretKey: id.SecretKey}
}

// Param is a single query parameter.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered list of query parameters. Keys may repeat. The order
// given is the order signed and sent.
type Params []Param

// Add returns p with key=value appended.
func (p Params) Add(key, value string) Params {
	return append(p, Param{Key: key, Value: value})
}

// Encode returns the form-urlencoded query string, without a leading "?".
func (p Params) Encode() string {
	if len(p) == 0 {
		return ""
	}
	pairs := make([]signing.Pair, len(p))
	for i, kv := range p {
		pairs[i] = signing.Pair{Key: kv.Key, Value: kv.Value}
	}
	return signing.EncodeQuery(pairs)
}
