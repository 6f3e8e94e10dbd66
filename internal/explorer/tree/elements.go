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

package tree

import (
	"fmt"
	"strings"

	"github.com/eclipse-basyx/basyx-aas-explorer/internal/common/model"
)

// ElementOptions tune the element transformation.
type ElementOptions struct {
	// SearchTerm, when non-empty, marks nodes whose value text contains it
	// (case-insensitive).
	SearchTerm string
	// Language is the preferred language for MultiLanguageProperty values.
	// Empty means English.
	Language string
}

var elementKinds = map[string]Kind{
	model.ModelTypeCollection:            KindCollection,
	model.ModelTypeProperty:              KindProperty,
	model.ModelTypeMultiLanguageProperty: KindMultiLanguageProperty,
	model.ModelTypeFile:                  KindFile,
	model.ModelTypeReferenceElement:      KindReference,
	model.ModelTypeRange:                 KindRange,
	model.ModelTypeBlob:                  KindBlob,
}

func elementKind(modelType string) Kind {
	if k, ok := elementKinds[modelType]; ok {
		return k
	}
	return KindElement
}

func containsFold(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// resolveLangString picks the display text of a multi-language value:
// preferred language first, then English, then the first entry.
func resolveLangString(values []model.LangStringTextType, preferred string) string {
	if len(values) == 0 {
		return ""
	}
	if preferred == "" {
		preferred = "en"
	}
	for _, v := range values {
		if v.Language == preferred {
			return v.Text
		}
	}
	for _, v := range values {
		if v.Language == "en" {
			return v.Text
		}
	}
	return values[0].Text
}

// TransformElements converts submodel elements into display nodes, recursing
// into nested collections. Sibling ids stay unique even without an idShort
// through a positional fallback, so re-fetching the same submodel always
// reproduces the same ids.
func TransformElements(elements []model.SubmodelElement, parentID string, opts ElementOptions) []*Node {
	nodes := make([]*Node, 0, len(elements))
	for i := range elements {
		el := &elements[i]
		idFragment := el.IdShort
		if idFragment == "" {
			idFragment = fmt.Sprintf("element_%d", i)
		}
		name := el.IdShort
		if name == "" {
			name = "Unnamed"
		}
		node := &Node{
			ID:      parentID + "_" + idFragment,
			Name:    name,
			Kind:    elementKind(el.ModelType),
			Parent:  parentID,
			Element: el,
		}

		switch el.ModelType {
		case model.ModelTypeCollection:
			if children := el.ValueElements(); children != nil {
				node.Children = TransformElements(children, node.ID, opts)
				for _, c := range node.Children {
					if c.Matched {
						node.Matched = true
						break
					}
				}
			} else if len(el.Value) > 0 {
				node.Name = el.IdShort + ": (non-array collection)"
			}

		case model.ModelTypeProperty:
			if value := el.ValueString(); value != "" {
				node.HasValue = true
				display := value
				if unit := InferUnit(el); unit != "" {
					display = value + " " + unit
				}
				node.Name = el.IdShort + ": " + display
				if containsFold(value, opts.SearchTerm) {
					node.Matched = true
				}
			}

		case model.ModelTypeMultiLanguageProperty:
			if text := resolveLangString(el.ValueLangStrings(), opts.Language); text != "" {
				node.Name = el.IdShort + ": " + text
				node.HasValue = true
				if containsFold(text, opts.SearchTerm) {
					node.Matched = true
				}
			}

		case model.ModelTypeFile:
			node.Name = el.IdShort
			if containsFold(el.ValueString(), opts.SearchTerm) || containsFold(el.IdShort, opts.SearchTerm) {
				node.Matched = true
			}
		}

		nodes = append(nodes, node)
	}
	return nodes
}
