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

package catalog

// Default returns the compiled-in catalog for the welding-equipment family.
// The keyword coverage is uneven across equipment types; that is the state
// of the upstream data, not something the explorer tries to unify.
func Default() *Catalog {
	menus := []Menu{
		{ID: "CO2", Group: GroupEquipment, DisplayName: "CO2 Welding Equipment", Keywords: []string{"CO2Type"}},
		{ID: "EBW", Group: GroupEquipment, DisplayName: "EBW Welding Equipment", Keywords: []string{"ElectronBeamWeldingType"}},
		{ID: "FW", Group: GroupEquipment, DisplayName: "FW Welding Equipment", Keywords: []string{"FlasfButtType"}},
		{ID: "MAG", Group: GroupEquipment, DisplayName: "MAG Welding Equipment", Keywords: []string{"MetalActiveGasType"}},
		{ID: "MIG", Group: GroupEquipment, DisplayName: "MIG Welding Equipment", Keywords: []string{"MetalInsertGasType"}},
		{ID: "OAW", Group: GroupEquipment, DisplayName: "OAW Welding Equipment", Keywords: []string{"OxyAcetyleneWeldingType"}},
		{ID: "PW", Group: GroupEquipment, DisplayName: "PW Welding Equipment", Keywords: []string{"ProjectionWeldingType"}},
		{ID: "RSEW", Group: GroupEquipment, DisplayName: "RSEW Welding Equipment", Keywords: []string{"ResistanceSeamWeldingType"}},
		{ID: "RSW", Group: GroupEquipment, DisplayName: "RSW Welding Equipment", Keywords: []string{"ResistanceSeamWeldingType"}},
		{ID: "SAW", Group: GroupEquipment, DisplayName: "SAW Welding Equipment", Keywords: []string{"SubmergedArcWeldType"}},
		{ID: "SMAW", Group: GroupEquipment, DisplayName: "SMAW Welding Equipment", Keywords: []string{"ShieldedMetalArcWeldingType"}},
		{ID: "Sold", Group: GroupEquipment, DisplayName: "Soldering Welding Equipment", Keywords: []string{"SoldringWeldingType"}},
		{ID: "SW", Group: GroupEquipment, DisplayName: "SW Welding Equipment", Keywords: []string{"StudWeldingType"}},
		{ID: "TIG", Group: GroupEquipment, DisplayName: "TIG Welding Equipment", Keywords: []string{"TungstenInsertGasType"}},
		{ID: "UW", Group: GroupEquipment, DisplayName: "UW Welding Equipment", Keywords: []string{"UpsetWelderType"}},

		{ID: "Steel", Group: GroupMaterial, DisplayName: "Steel Material", Keywords: []string{"steel", "carbon steel", "mild steel"}},
		{ID: "Aluminum", Group: GroupMaterial, DisplayName: "Aluminum Material", Keywords: []string{"aluminum", "aluminium", "Al"}},
		{ID: "Stainless Steel", Group: GroupMaterial, DisplayName: "Stainless Steel Material", Keywords: []string{"stainless", "stainless steel", "SS"}},

		{ID: "Welding", Group: GroupProcess, DisplayName: "Welding Process", Keywords: []string{"welding", "weld", "arc welding"}},
		{ID: "Cutting", Group: GroupProcess, DisplayName: "Cutting Process", Keywords: []string{"cutting", "cut", "plasma cutting"}},
		{ID: "Brazing", Group: GroupProcess, DisplayName: "Brazing Process", Keywords: []string{"brazing", "braze", "soldering"}},

		{ID: "Operation", Group: GroupManagement, DisplayName: "Operation Management", Keywords: []string{"operation"}},
		{ID: "Quality", Group: GroupManagement, DisplayName: "Quality Control", Keywords: []string{"quality"}},
		{ID: "Production", Group: GroupManagement, DisplayName: "Production Management", Keywords: []string{"production"}},

		{ID: MenuAll, Group: GroupSpecial, DisplayName: "All AAS Data"},
	}
	return New(menus, defaultFilterFields())
}

func defaultFilterFields() []FilterField {
	return []FilterField{
		{Value: "numberofphases", Label: "Number of Phases", RequiresValue: true},
		{Value: "inputpowervoltage", Label: "Input Power Voltage", RequiresValue: true},
		{Value: "ratedfrequency", Label: "Rated Frequency", RequiresValue: true},
		{Value: "ratedoutputcurrent", Label: "Rated Output Current", RequiresValue: true},
		{Value: "inputcapacity/kw", Label: "Input Capacity", RequiresValue: true},
		{Value: "dutycycle", Label: "Duty Cycle", RequiresValue: true},
	}
}
