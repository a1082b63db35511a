package validation

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Severity indicates how severe a validation finding is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityHint    Severity = "hint"
)

// Rank returns the severity's precedence for worst-of comparisons. Higher is
// worse.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeverityHint:
		return 1
	default:
		return 0
	}
}

// Error represents a validation finding, the rule that produced it, and the
// node in the backing YAML document where it occurred.
type Error struct {
	Severity         Severity
	Rule             string
	UnderlyingError  error
	Node             *yaml.Node
	DocumentLocation string
}

var _ error = (*Error)(nil)

func (e *Error) Error() string {
	msg := ""
	if e.UnderlyingError != nil {
		msg = e.UnderlyingError.Error()
	}
	if e.Severity == "" && e.Rule == "" {
		return fmt.Sprintf("[%d:%d] %s", e.GetLineNumber(), e.GetColumnNumber(), msg)
	}
	return fmt.Sprintf("[%d:%d] %s %s %s", e.GetLineNumber(), e.GetColumnNumber(), e.Severity, e.Rule, msg)
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *Error) Unwrap() error {
	return e.UnderlyingError
}

// GetLineNumber returns the line number of the node the error occurred at,
// or -1 when no node is associated.
func (e *Error) GetLineNumber() int {
	if e.Node == nil {
		return -1
	}
	return e.Node.Line
}

// GetColumnNumber returns the column number of the node the error occurred
// at, or -1 when no node is associated.
func (e *Error) GetColumnNumber() int {
	if e.Node == nil {
		return -1
	}
	return e.Node.Column
}

// CoreModeler is the minimal view of a core model the error constructors
// need: access to the root node of the model in the source document. It is
// defined here rather than importing the marshaller to keep this package a
// leaf dependency.
type CoreModeler interface {
	GetRootNode() *yaml.Node
}

type valueNodeGetter interface {
	GetValueNodeOrRoot(root *yaml.Node) *yaml.Node
}

type sliceNodeGetter interface {
	GetSliceValueNodeOrRoot(index int, root *yaml.Node) *yaml.Node
}

type mapKeyNodeGetter interface {
	GetMapKeyNodeOrRoot(key string, root *yaml.Node) *yaml.Node
}

type mapValueNodeGetter interface {
	GetMapValueNodeOrRoot(key string, root *yaml.Node) *yaml.Node
}

// NewValidationError creates a validation Error anchored at node.
func NewValidationError(severity Severity, rule string, err error, node *yaml.Node) error {
	return &Error{Severity: severity, Rule: rule, UnderlyingError: err, Node: node}
}

// NewValueError creates a validation Error anchored at the value node of a
// field in core's backing document, falling back to core's root node.
func NewValueError(severity Severity, rule string, err error, core CoreModeler, node valueNodeGetter) error {
	root := core.GetRootNode()
	var target *yaml.Node
	if root != nil {
		target = node.GetValueNodeOrRoot(root)
	}
	return &Error{Severity: severity, Rule: rule, UnderlyingError: err, Node: target}
}

// NewSliceError creates a validation Error anchored at a slice element's
// node in core's backing document.
func NewSliceError(severity Severity, rule string, err error, core CoreModeler, node sliceNodeGetter, index int) error {
	root := core.GetRootNode()
	var target *yaml.Node
	if root != nil {
		target = node.GetSliceValueNodeOrRoot(index, root)
	}
	return &Error{Severity: severity, Rule: rule, UnderlyingError: err, Node: target}
}

// NewMapKeyError creates a validation Error anchored at a map key's node in
// core's backing document.
func NewMapKeyError(severity Severity, rule string, err error, core CoreModeler, node mapKeyNodeGetter, key string) error {
	root := core.GetRootNode()
	var target *yaml.Node
	if root != nil {
		target = node.GetMapKeyNodeOrRoot(key, root)
	}
	return &Error{Severity: severity, Rule: rule, UnderlyingError: err, Node: target}
}

// NewMapValueError creates a validation Error anchored at a map value's node
// in core's backing document.
func NewMapValueError(severity Severity, rule string, err error, core CoreModeler, node mapValueNodeGetter, key string) error {
	root := core.GetRootNode()
	var target *yaml.Node
	if root != nil {
		target = node.GetMapValueNodeOrRoot(key, root)
	}
	return &Error{Severity: severity, Rule: rule, UnderlyingError: err, Node: target}
}

// TypeMismatchError indicates a node's type differed from what its slot
// requires.
type TypeMismatchError struct {
	Msg string
}

var _ error = (*TypeMismatchError)(nil)

func (e *TypeMismatchError) Error() string {
	return e.Msg
}

// NewTypeMismatchError creates a TypeMismatchError, prefixing the message
// with parentName when one is provided.
func NewTypeMismatchError(parentName, msg string, args ...any) *TypeMismatchError {
	return &TypeMismatchError{Msg: prefixParent(parentName, formatMsg(msg, args))}
}

// MissingFieldError indicates a required field was absent.
type MissingFieldError struct {
	Msg string
}

var _ error = (*MissingFieldError)(nil)

func (e *MissingFieldError) Error() string {
	return e.Msg
}

// NewMissingFieldError creates a MissingFieldError.
func NewMissingFieldError(msg string, args ...any) *MissingFieldError {
	return &MissingFieldError{Msg: formatMsg(msg, args)}
}

// MissingValueError indicates a required value was absent or empty.
type MissingValueError struct {
	Msg string
}

var _ error = (*MissingValueError)(nil)

func (e *MissingValueError) Error() string {
	return e.Msg
}

// NewMissingValueError creates a MissingValueError.
func NewMissingValueError(msg string, args ...any) *MissingValueError {
	return &MissingValueError{Msg: formatMsg(msg, args)}
}

// ValueValidationError indicates a present value failed a validation rule.
type ValueValidationError struct {
	Msg string
}

var _ error = (*ValueValidationError)(nil)

func (e *ValueValidationError) Error() string {
	return e.Msg
}

// NewValueValidationError creates a ValueValidationError.
func NewValueValidationError(msg string, args ...any) *ValueValidationError {
	return &ValueValidationError{Msg: formatMsg(msg, args)}
}

func formatMsg(msg string, args []any) string {
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

func prefixParent(parentName, msg string) string {
	if parentName == "" {
		return msg
	}
	return parentName + " " + msg
}
