package core

import (
	"github.com/speakeasy-api/openapi-lsp/extensions/core"
	"github.com/speakeasy-api/openapi-lsp/marshaller"
	"github.com/speakeasy-api/openapi-lsp/sequencedmap"
)

type RequestBody struct {
	marshaller.CoreModel `model:"requestBody"`

	Description marshaller.Node[*string]                               `key:"description"`
	Content     marshaller.Node[*sequencedmap.Map[string, *MediaType]] `key:"content" required:"true"`
	Required    marshaller.Node[*bool]                                 `key:"required"`
	Extensions  core.Extensions                                        `key:"extensions"`
}
