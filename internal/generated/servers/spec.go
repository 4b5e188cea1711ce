package servers

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yml
var openapiYAML []byte

// GetSwagger returns the parsed and validated OpenAPI document. Every call
// returns a fresh copy that callers may modify.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiYAML)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

// swaggerDoc feeds the OpenAPI document, as JSON, to the swag registry read
// by the Swagger UI handler.
type swaggerDoc struct {
	once sync.Once
	json string
}

func (d *swaggerDoc) ReadDoc() string {
	d.once.Do(func() {
		doc, err := GetSwagger()
		if err != nil {
			d.json = "{}"
			return
		}
		raw, err := json.Marshal(doc)
		if err != nil {
			d.json = "{}"
			return
		}
		d.json = string(raw)
	})
	return d.json
}

//nolint:gochecknoinits // swag documents are registered at import time
func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
