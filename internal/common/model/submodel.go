/*******************************************************************************
* Copyright (C) 2026 the Eclipse BaSyx Authors and Fraunhofer IESE
*
* Permission is hereby granted, free of charge, to any person obtaining
* a copy of this software and associated documentation files (the
* "Software"), to deal in the Software without restriction, including
* without limitation the rights to use, copy, modify, merge, publish,
* distribute, sublicense, and/or sell copies of the Software, and to
* permit persons to whom the Software is furnished to do so, subject to
* the following conditions:
*
* The above copyright notice and this permission notice shall be
* included in all copies or substantial portions of the Software.
*
* THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
* EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
* MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
* NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE
* LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION
* OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION
* WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*
* SPDX-License-Identifier: MIT
******************************************************************************/

package model

import (
	"encoding/json"
	"strings"
)

// Model type discriminators for submodel elements.
const (
	ModelTypeProperty              = "Property"
	ModelTypeMultiLanguageProperty = "MultiLanguageProperty"
	ModelTypeCollection            = "SubmodelElementCollection"
	ModelTypeFile                  = "File"
	ModelTypeReferenceElement      = "ReferenceElement"
	ModelTypeRange                 = "Range"
	ModelTypeBlob                  = "Blob"
)

// Submodel is the body of one submodel, fetched separately from the shell
// listing or delivered alongside field-search results.
type Submodel struct {
	ID               string            `json:"id,omitempty"`
	IdShort          string            `json:"idShort,omitempty"`
	SemanticID       *Reference        `json:"semanticId,omitempty"`
	SubmodelElements []SubmodelElement `json:"submodelElements,omitempty"`
}

// SubmodelElement is one typed field within a submodel. The value's JSON
// shape depends on the model type (scalar for Property and File, lang-string
// list for MultiLanguageProperty, nested element list for collections), so
// it is kept raw and interpreted through the accessors below.
type SubmodelElement struct {
	ModelType  string          `json:"modelType,omitempty"`
	IdShort    string          `json:"idShort,omitempty"`
	SemanticID *Reference      `json:"semanticId,omitempty"`
	Unit       string          `json:"unit,omitempty"`
	Value      json.RawMessage `json:"value,omitempty"`
}

// ValueString renders a scalar value as display text. JSON strings are
// unquoted; numbers and booleans keep their literal form. Null and absent
// values yield the empty string.
func (e *SubmodelElement) ValueString() string {
	if e == nil || len(e.Value) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(e.Value, &s); err == nil {
		return s
	}
	raw := strings.TrimSpace(string(e.Value))
	if raw == "null" {
		return ""
	}
	return raw
}

// HasScalarValue reports whether the element carries a non-empty scalar
// value.
func (e *SubmodelElement) HasScalarValue() bool {
	return e.ValueString() != "" && !e.IsArrayValue()
}

// IsArrayValue reports whether the raw value is a JSON array.
func (e *SubmodelElement) IsArrayValue() bool {
	if e == nil {
		return false
	}
	raw := strings.TrimSpace(string(e.Value))
	return strings.HasPrefix(raw, "[")
}

// ValueLangStrings decodes the value as a language-tagged text list. Returns
// nil when the value has a different shape.
func (e *SubmodelElement) ValueLangStrings() []LangStringTextType {
	if !e.IsArrayValue() {
		return nil
	}
	var out []LangStringTextType
	if err := json.Unmarshal(e.Value, &out); err != nil {
		return nil
	}
	return out
}

// ValueElements decodes the value as a nested element list, the shape used
// by SubmodelElementCollection. Returns nil when the value is not an array
// of elements.
func (e *SubmodelElement) ValueElements() []SubmodelElement {
	if !e.IsArrayValue() {
		return nil
	}
	var out []SubmodelElement
	if err := json.Unmarshal(e.Value, &out); err != nil {
		return nil
	}
	return out
}
