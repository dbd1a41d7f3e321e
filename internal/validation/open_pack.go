package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// openPackSchema constrains the untrusted open-pack request body before it is
// forwarded to the external pack function.
const openPackSchema = `{
	"type": "object",
	"properties": {
		"set_code": {
			"type": "string",
			"minLength": 1,
			"maxLength": 16
		},
		"quantity": {
			"type": "integer",
			"minimum": 1,
			"maximum": 12
		}
	},
	"required": ["set_code"],
	"additionalProperties": false
}`

var compiledOpenPackSchema = gojsonschema.NewStringLoader(openPackSchema)

// OpenPackRequest is the validated open-pack payload
type OpenPackRequest struct {
	SetCode  string `json:"set_code"`
	Quantity int    `json:"quantity,omitempty"`
}

// ValidateOpenPack validates a raw request body against the open-pack schema.
// Returns a human-readable message listing the first few violations.
func ValidateOpenPack(body []byte) error {
	if len(body) == 0 {
		return fmt.Errorf("request body is required")
	}

	res, err := gojsonschema.Validate(compiledOpenPackSchema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if !res.Valid() {
		var msgs []string
		for i, e := range res.Errors() {
			if i >= 5 {
				break
			}
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return nil
}
