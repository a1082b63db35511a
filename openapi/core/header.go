package core

import (
	"github.com/speakeasy-api/openapi-lsp/extensions/core"
	oascore "github.com/speakeasy-api/openapi-lsp/jsonschema/oas3/core"
	"github.com/speakeasy-api/openapi-lsp/marshaller"
	"github.com/speakeasy-api/openapi-lsp/sequencedmap"
	values "github.com/speakeasy-api/openapi-lsp/values/core"
)

type Header struct {
	marshaller.CoreModel

	Description marshaller.Node[*string]                                         `key:"description"`
	Required    marshaller.Node[*bool]                                           `key:"required"`
	Deprecated  marshaller.Node[*bool]                                           `key:"deprecated"`
	Style       marshaller.Node[*string]                                         `key:"style"`
	Explode     marshaller.Node[*bool]                                           `key:"explode"`
	Schema      marshaller.Node[oascore.JSONSchema]                              `key:"schema"`
	Content     marshaller.Node[*sequencedmap.Map[string, *MediaType]]           `key:"content"`
	Example     marshaller.Node[values.Value]                                    `key:"example"`
	Examples    marshaller.Node[*sequencedmap.Map[string, *Reference[*Example]]] `key:"examples"`
	Extensions  core.Extensions                                                  `key:"extensions"`
}
