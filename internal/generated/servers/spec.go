package servers

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var rawSpec []byte

// GetSwagger loads and validates the embedded OpenAPI document. Each call returns a
// fresh copy that callers may modify.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("error loading OpenAPI document: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}
	return doc, nil
}

// SwaggerDoc serves a loaded document to swaggo tooling.
type SwaggerDoc struct {
	json string
}

// ReadDoc implements swag.Swagger.
func (d SwaggerDoc) ReadDoc() string {
	return d.json
}

// RegisterSwaggerDoc makes doc available to the swagger UI under swag.Name.
// Registering twice panics inside swag, so callers register once at boot.
func RegisterSwaggerDoc(doc *openapi3.T) (SwaggerDoc, error) {
	data, err := doc.MarshalJSON()
	if err != nil {
		return SwaggerDoc{}, fmt.Errorf("encode OpenAPI document: %w", err)
	}
	sd := SwaggerDoc{json: string(data)}
	if swag.GetSwagger(swag.Name) == nil {
		swag.Register(swag.Name, sd)
	}
	return sd, nil
}
