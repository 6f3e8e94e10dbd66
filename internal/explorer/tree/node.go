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

// Package tree converts catalog payloads into the display tree of the
// explorer: equipment rows, their submodels and, once fetched, the submodel
// elements. Trees are treated as immutable values; every mutation helper
// returns a new tree and leaves the input untouched, so snapshots handed to
// API consumers stay stable.
package tree

import "github.com/eclipse-basyx/basyx-aas-explorer/internal/common/model"

// Kind tags the row type of a node.
type Kind string

// Node kinds. Placeholder nodes stand in for children that have not been
// fetched yet and are never selectable.
const (
	KindEquipment             Kind = "equipment"
	KindSubmodel              Kind = "submodel"
	KindProperty              Kind = "property"
	KindMultiLanguageProperty Kind = "multilanguageproperty"
	KindCollection            Kind = "collection"
	KindFile                  Kind = "file"
	KindReference             Kind = "reference"
	KindRange                 Kind = "range"
	KindBlob                  Kind = "blob"
	KindElement               Kind = "element"
	KindPlaceholder           Kind = "placeholder"
)

// Node is one displayed row. Payload pointers borrow the decoded upstream
// objects; the tree never writes through them.
type Node struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Kind     Kind   `json:"kind"`
	Expanded bool   `json:"expanded"`
	Selected bool   `json:"selected"`
	Matched  bool   `json:"matched"`
	HasValue bool   `json:"hasValue"`
	Parent   string `json:"parent,omitempty"`

	Shell   *model.AssetAdministrationShell `json:"shell,omitempty"`
	Body    *model.Submodel                 `json:"body,omitempty"`
	Element *model.SubmodelElement          `json:"element,omitempty"`

	Children []*Node `json:"children"`
}

// HasOnlyPlaceholder reports whether the node's children are exactly one
// pending placeholder, i.e. child data was never fetched.
func (n *Node) HasOnlyPlaceholder() bool {
	return len(n.Children) == 1 && n.Children[0].Kind == KindPlaceholder
}

// NewPlaceholder builds the synthetic child that marks unfetched children of
// a submodel node.
func NewPlaceholder(submodelID string) *Node {
	return &Node{
		ID:   submodelID + "_placeholder",
		Name: "Loading...",
		Kind: KindPlaceholder,
	}
}

// NewErrorChild builds the synthetic child shown when a per-node fetch
// failed. It replaces a stuck placeholder so the user sees the failure
// instead of an eternal spinner.
func NewErrorChild(submodelID string) *Node {
	return &Node{
		ID:   submodelID + "_error",
		Name: "Failed to load data",
		Kind: KindElement,
	}
}

// FindNode locates a node by id, depth-first. Returns nil when absent.
func FindNode(nodes []*Node, id string) *Node {
	for _, n := range nodes {
		if n.ID == id {
			return n
		}
		if found := FindNode(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// CountNodes returns the total number of nodes in the forest, placeholders
// included.
func CountNodes(nodes []*Node) int {
	total := 0
	for _, n := range nodes {
		total += 1 + CountNodes(n.Children)
	}
	return total
}

// updateNodes applies fn to every node of the forest, cloning along the way.
// fn receives an already-cloned node it may modify in place.
func updateNodes(nodes []*Node, fn func(*Node)) []*Node {
	if nodes == nil {
		return nil
	}
	out := make([]*Node, len(nodes))
	for i, n := range nodes {
		clone := *n
		fn(&clone)
		clone.Children = updateNodes(n.Children, fn)
		out[i] = &clone
	}
	return out
}

// ToggleExpanded returns a new forest with the expansion state of the given
// node flipped.
func ToggleExpanded(nodes []*Node, id string) []*Node {
	return updateNodes(nodes, func(n *Node) {
		if n.ID == id {
			n.Expanded = !n.Expanded
		}
	})
}

// SelectExclusive returns a new forest where the given node is the only
// selected one. Placeholder nodes cannot take a selection; selecting one
// merely clears the previous selection.
func SelectExclusive(nodes []*Node, id string) []*Node {
	return updateNodes(nodes, func(n *Node) {
		n.Selected = n.ID == id && n.Kind != KindPlaceholder
	})
}

// ReplaceChildren returns a new forest where the given node carries the
// provided children and, when body is non-nil, the freshly fetched submodel
// payload. Used when a placeholder resolves or fails.
func ReplaceChildren(nodes []*Node, id string, children []*Node, body *model.Submodel) []*Node {
	out := make([]*Node, len(nodes))
	for i, n := range nodes {
		clone := *n
		if n.ID == id {
			clone.Children = children
			if body != nil {
				clone.Body = body
			}
		} else {
			clone.Children = ReplaceChildren(n.Children, id, children, body)
		}
		out[i] = &clone
	}
	return out
}
