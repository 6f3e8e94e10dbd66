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

// LangStringTextType is a language-tagged text entry.
type LangStringTextType struct {
	Language string `json:"language,omitempty"`
	Text     string `json:"text,omitempty"`
}

// AssetInformation carries the asset identity of a shell.
type AssetInformation struct {
	GlobalAssetID string `json:"globalAssetId,omitempty"`
	AssetKind     string `json:"assetKind,omitempty"`
}

// AssetAdministrationShell is one equipment record as listed by the catalog.
// Instances are immutable once decoded; the tree borrows them and never
// writes through the pointer.
type AssetAdministrationShell struct {
	ID               string               `json:"id"`
	IdShort          string               `json:"idShort,omitempty"`
	AssetInformation *AssetInformation    `json:"assetInformation,omitempty"`
	Description      []LangStringTextType `json:"description,omitempty"`
	Submodels        []SubmodelRef        `json:"submodel,omitempty"`
}

// GlobalAssetID returns the global asset id, tolerating absent asset
// information.
func (s *AssetAdministrationShell) GlobalAssetID() string {
	if s == nil || s.AssetInformation == nil {
		return ""
	}
	return s.AssetInformation.GlobalAssetID
}

// AssetKind returns the asset kind, tolerating absent asset information.
func (s *AssetAdministrationShell) AssetKind() string {
	if s == nil || s.AssetInformation == nil {
		return ""
	}
	return s.AssetInformation.AssetKind
}
