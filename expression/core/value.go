package core

import "gopkg.in/yaml.v3"

// ValueOrExpression represents a raw value or expression at the core
// unmarshalling layer.
type ValueOrExpression = *yaml.Node
