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
	"regexp"
	"strings"

	"github.com/eclipse-basyx/basyx-aas-explorer/internal/common/model"
)

// submodelNamePattern extracts the human-readable segment out of submodel
// ids shaped like .../sm/<family>/<asset>/<Name>/<n>/<n>.
var submodelNamePattern = regexp.MustCompile(`/sm/[^/]+/[^/]+/([^/]+)/(\d+/\d+)?/?$`)

// canonicalSubmodelNames are well-known submodel labels preferred when a
// submodel id path must be parsed for a display name.
var canonicalSubmodelNames = []string{"Identification", "Nameplate", "TechnicalData"}

var numericSegment = regexp.MustCompile(`^\d+$`)

// identifierFromShellID extracts the path segment two positions after the
// literal "aas" segment, e.g. the model code out of
// .../aas/TungstenInsertGasType-classify/150LMT2/1/0. Purely numeric
// segments are skipped; they are version counters, not identifiers.
func identifierFromShellID(id string) string {
	if id == "" {
		return ""
	}
	parts := strings.Split(id, "/")
	for i, part := range parts {
		if part != "aas" {
			continue
		}
		if i+2 < len(parts) {
			candidate := parts[i+2]
			if candidate != "" && !numericSegment.MatchString(candidate) {
				return candidate
			}
		}
		break
	}
	return ""
}

// findSubmodelBody locates the body matching a resolved submodel id: exact
// id first, then idShort, then the semantic-id value.
func findSubmodelBody(bodies []*model.Submodel, submodelID string) *model.Submodel {
	if submodelID == "" {
		return nil
	}
	for _, b := range bodies {
		if b != nil && b.ID == submodelID {
			return b
		}
	}
	for _, b := range bodies {
		if b == nil {
			continue
		}
		if b.IdShort == submodelID || b.SemanticID.FirstKeyValue() == submodelID {
			return b
		}
	}
	return nil
}

// findFacilityName scans the shell's submodels for an Identification body
// carrying a FacilityName property.
func findFacilityName(shell *model.AssetAdministrationShell, bodies []*model.Submodel) string {
	for _, ref := range shell.Submodels {
		body := findSubmodelBody(bodies, ref.ResolveID())
		if body == nil || body.IdShort != "Identification" {
			continue
		}
		for i := range body.SubmodelElements {
			el := &body.SubmodelElements[i]
			if el.IdShort == "FacilityName" {
				if v := el.ValueString(); v != "" {
					return v
				}
			}
		}
	}
	return ""
}

// submodelDisplayName derives the row label of a submodel: the body's
// idShort when available, otherwise parsed out of the submodel id path.
func submodelDisplayName(body *model.Submodel, submodelID string) string {
	if body != nil && body.IdShort != "" {
		return body.IdShort
	}
	if submodelID == "" {
		return "Unknown Submodel"
	}
	if m := submodelNamePattern.FindStringSubmatch(submodelID); m != nil && m[1] != "" {
		return m[1]
	}
	parts := strings.Split(submodelID, "/")
	for _, p := range parts {
		for _, canonical := range canonicalSubmodelNames {
			if p == canonical {
				return p
			}
		}
	}
	if last := parts[len(parts)-1]; last != "" {
		return last
	}
	return "Unknown Submodel"
}

// equipmentDisplayName computes the equipment row label: idShort plus a
// disambiguating suffix, preferring the identifier embedded in the shell id
// over a FacilityName from an Identification submodel.
func equipmentDisplayName(shell *model.AssetAdministrationShell, bodies []*model.Submodel) string {
	base := shell.IdShort
	if base == "" {
		base = "Unknown AAS"
	}
	if ident := identifierFromShellID(shell.ID); ident != "" && ident != shell.IdShort {
		return base + " (" + ident + ")"
	}
	if facility := findFacilityName(shell, bodies); facility != "" && facility != shell.IdShort {
		return base + " (" + facility + ")"
	}
	return base
}

// Build converts a list of shells (plus optional pre-fetched submodel
// bodies) into the display forest, in input order.
//
// Under an active search term, submodels whose bodies are on hand expand
// eagerly so matches are visible without manual clicking; otherwise each
// submodel gets a single placeholder child and element data is fetched on
// first expansion. Matching never touches expansion state — expansion stays
// purely user-driven.
func Build(shells []*model.AssetAdministrationShell, bodies []*model.Submodel, opts ElementOptions) []*Node {
	forest := make([]*Node, 0, len(shells))
	for _, shell := range shells {
		if shell == nil {
			continue
		}
		equipment := &Node{
			ID:    shell.ID,
			Name:  equipmentDisplayName(shell, bodies),
			Kind:  KindEquipment,
			Shell: shell,
		}

		identity := shell.IdShort + " " + shell.ID + " " + shell.GlobalAssetID()
		if containsFold(identity, opts.SearchTerm) {
			equipment.Matched = true
		}

		for _, ref := range shell.Submodels {
			submodelID := ref.ResolveID()
			body := findSubmodelBody(bodies, submodelID)

			submodel := &Node{
				ID:     submodelID,
				Name:   submodelDisplayName(body, submodelID),
				Kind:   KindSubmodel,
				Parent: equipment.ID,
				Body:   body,
			}
			if containsFold(submodel.Name+" "+submodel.ID, opts.SearchTerm) {
				submodel.Matched = true
			}

			if opts.SearchTerm != "" && body != nil && body.SubmodelElements != nil {
				parentID := body.ID
				if parentID == "" {
					parentID = submodelID
				}
				submodel.Children = TransformElements(body.SubmodelElements, parentID, opts)
				for _, c := range submodel.Children {
					if c.Matched {
						submodel.Matched = true
						break
					}
				}
			} else {
				submodel.Children = []*Node{NewPlaceholder(submodelID)}
			}

			if submodel.Matched {
				equipment.Matched = true
			}
			equipment.Children = append(equipment.Children, submodel)
		}

		forest = append(forest, equipment)
	}
	return forest
}
