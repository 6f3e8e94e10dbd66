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

package client

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/eclipse-basyx/basyx-aas-explorer/internal/common/model"
)

// Page is the one normalized shape every upstream list response is reduced
// to before it reaches the tree builder.
type Page struct {
	Shells    []*model.AssetAdministrationShell
	Submodels []*model.Submodel

	// Last reports whether the upstream envelope explicitly flagged the
	// final page. Nil when the response shape carries no such flag and the
	// caller must fall back to size-based inference.
	Last *bool
}

// The upstream fleet answers in three shapes: a Spring-style paging envelope
// ({content, last}), a code/message envelope whose message is either a flat
// item list or a nested {aas, submodels} result, and a bare JSON array.
// decodePage is the tagged-union boundary turning all of them into Page.
func decodePage(raw []byte) (*Page, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return &Page{}, nil
	}

	if trimmed[0] == '[' {
		shells, err := decodeShells(trimmed)
		if err != nil {
			return nil, err
		}
		return &Page{Shells: shells}, nil
	}

	var env struct {
		Content json.RawMessage `json:"content"`
		Last    *bool           `json:"last"`
		Code    int             `json:"code"`
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("decode page envelope: %w", err)
	}

	switch {
	case len(env.Content) > 0:
		shells, err := decodeShells(env.Content)
		if err != nil {
			return nil, err
		}
		return &Page{Shells: shells, Last: env.Last}, nil

	case len(env.Message) > 0 && !bytes.Equal(bytes.TrimSpace(env.Message), []byte("null")):
		return decodeMessage(env.Message)

	default:
		return &Page{}, nil
	}
}

// decodeMessage handles the message payload of a code/message envelope: a
// flat shell list, or a search result list whose first entry nests aas and
// submodels, each of which may be a single object instead of an array.
func decodeMessage(raw json.RawMessage) (*Page, error) {
	items := asArray(raw)
	if len(items) == 0 {
		return &Page{}, nil
	}

	var probe struct {
		AAS json.RawMessage `json:"aas"`
	}
	if err := json.Unmarshal(items[0], &probe); err == nil && len(probe.AAS) > 0 {
		var nested struct {
			AAS       json.RawMessage `json:"aas"`
			Submodels json.RawMessage `json:"submodels"`
		}
		if err := json.Unmarshal(items[0], &nested); err != nil {
			return nil, fmt.Errorf("decode search message: %w", err)
		}
		page := &Page{}
		for _, rawShell := range asArray(nested.AAS) {
			var shell model.AssetAdministrationShell
			if err := json.Unmarshal(rawShell, &shell); err != nil {
				return nil, fmt.Errorf("decode search shell: %w", err)
			}
			page.Shells = append(page.Shells, &shell)
		}
		for _, rawBody := range asArray(nested.Submodels) {
			var body model.Submodel
			if err := json.Unmarshal(rawBody, &body); err != nil {
				return nil, fmt.Errorf("decode search submodel: %w", err)
			}
			page.Submodels = append(page.Submodels, &body)
		}
		return page, nil
	}

	shells := make([]*model.AssetAdministrationShell, 0, len(items))
	for _, item := range items {
		var shell model.AssetAdministrationShell
		if err := json.Unmarshal(item, &shell); err != nil {
			return nil, fmt.Errorf("decode shell: %w", err)
		}
		shells = append(shells, &shell)
	}
	return &Page{Shells: shells}, nil
}

func decodeShells(raw json.RawMessage) ([]*model.AssetAdministrationShell, error) {
	var shells []*model.AssetAdministrationShell
	if err := json.Unmarshal(raw, &shells); err != nil {
		return nil, fmt.Errorf("decode shell list: %w", err)
	}
	return shells, nil
}

// asArray returns the raw elements of a JSON array, or the value itself as
// a one-element list when the upstream sent a single object.
func asArray(raw json.RawMessage) []json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil
		}
		return items
	}
	return []json.RawMessage{trimmed}
}

// decodeSubmodel handles the two shapes of a submodel fetch response: the
// body directly, or wrapped in a code/message envelope.
func decodeSubmodel(raw []byte) (*model.Submodel, error) {
	var env struct {
		Message json.RawMessage `json:"message"`
	}
	body := json.RawMessage(bytes.TrimSpace(raw))
	if err := json.Unmarshal(body, &env); err == nil && len(env.Message) > 0 {
		body = env.Message
	}
	var sm model.Submodel
	if err := json.Unmarshal(body, &sm); err != nil {
		return nil, fmt.Errorf("decode submodel: %w", err)
	}
	return &sm, nil
}
