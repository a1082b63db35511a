package references

import (
	"github.com/speakeasy-api/openapi-lsp/marshaller"
	"github.com/speakeasy-api/openapi-lsp/pointer"
)

func init() {
	marshaller.RegisterType(func() *Reference { return pointer.From(Reference("")) })
}
