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

// Package classify assigns catalog records to menu categories by keyword
// matching. Classification is multi-label: one record may land in any number
// of categories, including none.
package classify

import (
	"strings"

	"github.com/eclipse-basyx/basyx-aas-explorer/internal/common/model"
	"github.com/eclipse-basyx/basyx-aas-explorer/internal/explorer/catalog"
)

// excludedIdShort names records that never appear in any category, not even
// in the ALL count. Currently a single upstream artifact.
const excludedIdShort = "component"

// IsExcluded reports whether the record is dropped from every category.
func IsExcluded(shell *model.AssetAdministrationShell) bool {
	if shell == nil {
		return true
	}
	return strings.ToLower(strings.TrimSpace(shell.IdShort)) == excludedIdShort
}

// searchText concatenates the identity fields of a record into one lowercase
// string for substring matching.
func searchText(shell *model.AssetAdministrationShell) string {
	fields := []string{
		shell.ID,
		shell.IdShort,
		shell.GlobalAssetID(),
		shell.AssetKind(),
	}
	for _, d := range shell.Description {
		fields = append(fields, d.Text)
	}
	joined := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			joined = append(joined, f)
		}
	}
	return strings.ToLower(strings.Join(joined, " "))
}

func hasAnyKeyword(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// Classify returns every menu id the record belongs to. The result is a set;
// the slice order follows catalog definition order but carries no meaning.
// Excluded records match nothing.
func Classify(cat *catalog.Catalog, shell *model.AssetAdministrationShell) []string {
	if IsExcluded(shell) {
		return nil
	}
	text := searchText(shell)
	var out []string
	for _, m := range cat.Menus() {
		if len(m.Keywords) == 0 {
			continue
		}
		if hasAnyKeyword(text, m.Keywords) {
			out = append(out, m.ID)
		}
	}
	return out
}

// CountsByCategory classifies every record once and returns per-menu counts,
// plus a synthetic ALL count of all non-excluded records.
func CountsByCategory(cat *catalog.Catalog, shells []*model.AssetAdministrationShell) map[string]int {
	counts := make(map[string]int, len(cat.Menus())+1)
	for _, m := range cat.Menus() {
		counts[m.ID] = 0
	}
	for _, s := range shells {
		if IsExcluded(s) {
			continue
		}
		counts[catalog.MenuAll]++
		for _, id := range Classify(cat, s) {
			counts[id]++
		}
	}
	return counts
}

// FilterByMenu returns the non-excluded records belonging to the menu, in
// input order. MenuAll selects every non-excluded record.
func FilterByMenu(cat *catalog.Catalog, shells []*model.AssetAdministrationShell, menuID string) []*model.AssetAdministrationShell {
	var out []*model.AssetAdministrationShell
	keywords := cat.Keywords(menuID)
	for _, s := range shells {
		if IsExcluded(s) {
			continue
		}
		if menuID == catalog.MenuAll || hasAnyKeyword(searchText(s), keywords) {
			out = append(out, s)
		}
	}
	return out
}
