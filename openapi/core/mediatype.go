package core

import (
	"github.com/speakeasy-api/openapi-lsp/extensions/core"
	oascore "github.com/speakeasy-api/openapi-lsp/jsonschema/oas3/core"
	"github.com/speakeasy-api/openapi-lsp/marshaller"
	"github.com/speakeasy-api/openapi-lsp/sequencedmap"
	values "github.com/speakeasy-api/openapi-lsp/values/core"
)

type MediaType struct {
	marshaller.CoreModel `model:"mediaType"`

	Schema     marshaller.Node[oascore.JSONSchema]                              `key:"schema"`
	Encoding   marshaller.Node[*sequencedmap.Map[string, *Encoding]]            `key:"encoding"`
	Example    marshaller.Node[values.Value]                                    `key:"example"`
	Examples   marshaller.Node[*sequencedmap.Map[string, *Reference[*Example]]] `key:"examples"`
	Extensions core.Extensions                                                  `key:"extensions"`
}
