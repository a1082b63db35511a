package marshaller

import (
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"
)

// PopulationContext carries parent and owning-document references through a
// population pass so context-aware models can establish document-tree links
// (parent schemas, owning-document registries) as they are populated.
type PopulationContext struct {
	// Parent is the model whose population created this context.
	Parent any
	// OwningDocument is the document the populated models belong to.
	OwningDocument any
}

// ContextAwarePopulator is implemented by models that need the population
// context in addition to their core source. populateValue dispatches to it
// in preference to the plain ModelFromCore path.
type ContextAwarePopulator interface {
	PopulateWithContext(source any, ctx *PopulationContext) error
}

// RootNodeAccessor is implemented by models that can expose the YAML root
// node of their backing core model.
type RootNodeAccessor interface {
	GetRootNode() *yaml.Node
}

// Populate populates target from the core model source.
func Populate(source any, target any) error {
	return PopulateWithContext(source, target, nil)
}

// PopulateWithContext populates target from source, handing ctx to any
// ContextAwarePopulator encountered along the way. target must be a non-nil
// pointer.
func PopulateWithContext(source any, target any, ctx *PopulationContext) error {
	t := reflect.ValueOf(target)
	if t.Kind() != reflect.Ptr || t.IsNil() {
		return fmt.Errorf("expected non-nil pointer target, got %T", target)
	}
	return populateValueCtx(t.Elem(), source, ctx)
}
