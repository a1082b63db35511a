package openapi

import "github.com/speakeasy-api/openapi-lsp/references"

// NewReferencedPathItemFromRef creates an unresolved ReferencedPathItem from a reference.
func NewReferencedPathItemFromRef(ref references.Reference) *ReferencedPathItem {
	return &ReferencedPathItem{Reference: &ref}
}

// NewReferencedPathItemFromPathItem creates a ReferencedPathItem from an inline PathItem.
func NewReferencedPathItemFromPathItem(pathItem *PathItem) *ReferencedPathItem {
	return &ReferencedPathItem{Object: pathItem}
}

// NewReferencedExampleFromRef creates an unresolved ReferencedExample from a reference.
func NewReferencedExampleFromRef(ref references.Reference) *ReferencedExample {
	return &ReferencedExample{Reference: &ref}
}

// NewReferencedExampleFromExample creates a ReferencedExample from an inline Example.
func NewReferencedExampleFromExample(example *Example) *ReferencedExample {
	return &ReferencedExample{Object: example}
}

// NewReferencedParameterFromRef creates an unresolved ReferencedParameter from a reference.
func NewReferencedParameterFromRef(ref references.Reference) *ReferencedParameter {
	return &ReferencedParameter{Reference: &ref}
}

// NewReferencedParameterFromParameter creates a ReferencedParameter from an inline Parameter.
func NewReferencedParameterFromParameter(parameter *Parameter) *ReferencedParameter {
	return &ReferencedParameter{Object: parameter}
}

// NewReferencedHeaderFromRef creates an unresolved ReferencedHeader from a reference.
func NewReferencedHeaderFromRef(ref references.Reference) *ReferencedHeader {
	return &ReferencedHeader{Reference: &ref}
}

// NewReferencedHeaderFromHeader creates a ReferencedHeader from an inline Header.
func NewReferencedHeaderFromHeader(header *Header) *ReferencedHeader {
	return &ReferencedHeader{Object: header}
}

// NewReferencedRequestBodyFromRef creates an unresolved ReferencedRequestBody from a reference.
func NewReferencedRequestBodyFromRef(ref references.Reference) *ReferencedRequestBody {
	return &ReferencedRequestBody{Reference: &ref}
}

// NewReferencedRequestBodyFromRequestBody creates a ReferencedRequestBody from an inline RequestBody.
func NewReferencedRequestBodyFromRequestBody(requestBody *RequestBody) *ReferencedRequestBody {
	return &ReferencedRequestBody{Object: requestBody}
}

// NewReferencedCallbackFromRef creates an unresolved ReferencedCallback from a reference.
func NewReferencedCallbackFromRef(ref references.Reference) *ReferencedCallback {
	return &ReferencedCallback{Reference: &ref}
}

// NewReferencedCallbackFromCallback creates a ReferencedCallback from an inline Callback.
func NewReferencedCallbackFromCallback(callback *Callback) *ReferencedCallback {
	return &ReferencedCallback{Object: callback}
}

// NewReferencedResponseFromRef creates an unresolved ReferencedResponse from a reference.
func NewReferencedResponseFromRef(ref references.Reference) *ReferencedResponse {
	return &ReferencedResponse{Reference: &ref}
}

// NewReferencedResponseFromResponse creates a ReferencedResponse from an inline Response.
func NewReferencedResponseFromResponse(response *Response) *ReferencedResponse {
	return &ReferencedResponse{Object: response}
}

// NewReferencedLinkFromRef creates an unresolved ReferencedLink from a reference.
func NewReferencedLinkFromRef(ref references.Reference) *ReferencedLink {
	return &ReferencedLink{Reference: &ref}
}

// NewReferencedLinkFromLink creates a ReferencedLink from an inline Link.
func NewReferencedLinkFromLink(link *Link) *ReferencedLink {
	return &ReferencedLink{Object: link}
}

// NewReferencedSecuritySchemeFromRef creates an unresolved ReferencedSecurityScheme from a reference.
func NewReferencedSecuritySchemeFromRef(ref references.Reference) *ReferencedSecurityScheme {
	return &ReferencedSecurityScheme{Reference: &ref}
}

// NewReferencedSecuritySchemeFromSecurityScheme creates a ReferencedSecurityScheme from an inline SecurityScheme.
func NewReferencedSecuritySchemeFromSecurityScheme(securityScheme *SecurityScheme) *ReferencedSecurityScheme {
	return &ReferencedSecurityScheme{Object: securityScheme}
}
