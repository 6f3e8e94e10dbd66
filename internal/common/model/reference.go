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

// Package model holds the payload shapes the explorer receives from the
// upstream AAS catalog. The upstream is loosely typed, so these structs keep
// only the fields the explorer reads and tolerate missing or oddly nested
// values; everything else stays in raw JSON.
package model

// Key is one entry of a reference chain.
type Key struct {
	Type  string `json:"type,omitempty"`
	Value string `json:"value,omitempty"`
}

// Reference points at another identifiable, e.g. a semantic id.
type Reference struct {
	Type string `json:"type,omitempty"`
	Keys []Key  `json:"keys,omitempty"`
}

// FirstKeyValue returns the value of the first key of the reference, or the
// empty string when the reference carries no keys. Semantic ids are resolved
// through this accessor everywhere in the explorer.
func (r *Reference) FirstKeyValue() string {
	if r == nil || len(r.Keys) == 0 {
		return ""
	}
	return r.Keys[0].Value
}

// SubmodelRef is a reference from a shell to one of its submodels. Upstream
// responses deliver it in several shapes: a typed key list, or a flat object
// carrying the id directly.
type SubmodelRef struct {
	Keys  []Key  `json:"keys,omitempty"`
	ID    string `json:"id,omitempty"`
	Value string `json:"value,omitempty"`
	Type  string `json:"type,omitempty"`
}

// ResolveID extracts the submodel identifier from the reference. Preference
// order: first non-empty key value, then the id, value and type fields.
// Returns the empty string when nothing is resolvable.
func (r SubmodelRef) ResolveID() string {
	for _, k := range r.Keys {
		if k.Value != "" {
			return k.Value
		}
	}
	if r.ID != "" {
		return r.ID
	}
	if r.Value != "" {
		return r.Value
	}
	return r.Type
}
