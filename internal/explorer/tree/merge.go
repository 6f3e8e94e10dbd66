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

import "github.com/eclipse-basyx/basyx-aas-explorer/internal/common/model"

// MergePage appends nodes for shells not yet present in the forest,
// deduplicating by shell id. Existing nodes keep their identity and state;
// re-merging an identical page is a no-op, so the operation is idempotent
// and independent of page arrival order.
func MergePage(existing []*Node, shells []*model.AssetAdministrationShell, bodies []*model.Submodel, opts ElementOptions) []*Node {
	seen := make(map[string]struct{}, len(existing))
	for _, n := range existing {
		seen[n.ID] = struct{}{}
	}

	fresh := make([]*model.AssetAdministrationShell, 0, len(shells))
	for _, s := range shells {
		if s == nil {
			continue
		}
		if _, dup := seen[s.ID]; dup {
			continue
		}
		seen[s.ID] = struct{}{}
		fresh = append(fresh, s)
	}
	if len(fresh) == 0 {
		return existing
	}

	out := make([]*Node, 0, len(existing)+len(fresh))
	out = append(out, existing...)
	return append(out, Build(fresh, bodies, opts)...)
}
