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

// Package catalog holds the menu definitions of the explorer: which menus
// exist, which keywords select records into them, how they are labelled, and
// which filter fields a search form offers. The tables are data, not
// behavior; deployments override them with a YAML file, the compiled-in
// defaults cover the welding-equipment family.
package catalog

import (
	"fmt"

	"github.com/spf13/viper"
)

// Menu group names.
const (
	GroupEquipment  = "equipment"
	GroupMaterial   = "material"
	GroupProcess    = "process"
	GroupManagement = "management"
	GroupSpecial    = "special"
)

// MenuAll is the synthetic menu covering every non-excluded record.
const MenuAll = "ALL"

// Menu is one selectable category.
type Menu struct {
	ID          string   `mapstructure:"id" json:"id"`
	Group       string   `mapstructure:"group" json:"group"`
	DisplayName string   `mapstructure:"displayName" json:"displayName"`
	Keywords    []string `mapstructure:"keywords" json:"keywords,omitempty"`
}

// FilterField is one searchable field offered by the search form.
type FilterField struct {
	Value         string `mapstructure:"value" json:"value"`
	Label         string `mapstructure:"label" json:"label"`
	RequiresValue bool   `mapstructure:"requiresValue" json:"requiresValue"`
}

// Catalog is an immutable lookup over menus and filter fields.
type Catalog struct {
	menus        map[string]Menu
	order        []string
	filterFields []FilterField
}

// New builds a catalog from explicit menu and filter definitions, keeping
// the given menu order.
func New(menus []Menu, fields []FilterField) *Catalog {
	c := &Catalog{
		menus:        make(map[string]Menu, len(menus)),
		order:        make([]string, 0, len(menus)),
		filterFields: fields,
	}
	for _, m := range menus {
		if _, dup := c.menus[m.ID]; dup {
			continue
		}
		c.menus[m.ID] = m
		c.order = append(c.order, m.ID)
	}
	return c
}

// Load reads a catalog from a YAML file. An empty path yields the built-in
// defaults.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var raw struct {
		Menus        []Menu        `mapstructure:"menus"`
		FilterFields []FilterField `mapstructure:"filterFields"`
	}
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	if len(raw.Menus) == 0 {
		return nil, fmt.Errorf("catalog %s defines no menus", path)
	}
	if len(raw.FilterFields) == 0 {
		raw.FilterFields = defaultFilterFields()
	}
	return New(raw.Menus, raw.FilterFields), nil
}

// Menus returns every menu in definition order.
func (c *Catalog) Menus() []Menu {
	out := make([]Menu, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.menus[id])
	}
	return out
}

// IsKnown reports whether the menu id is defined. MenuAll is always known.
func (c *Catalog) IsKnown(id string) bool {
	if id == MenuAll {
		return true
	}
	_, ok := c.menus[id]
	return ok
}

// Keywords returns the matching keywords of a menu, nil for unknown menus
// and for MenuAll.
func (c *Catalog) Keywords(id string) []string {
	return c.menus[id].Keywords
}

// DisplayName returns the human label of a menu, falling back to the id
// itself for unknown menus.
func (c *Catalog) DisplayName(id string) string {
	if id == MenuAll {
		if m, ok := c.menus[MenuAll]; ok && m.DisplayName != "" {
			return m.DisplayName
		}
		return "All AAS Data"
	}
	if m, ok := c.menus[id]; ok && m.DisplayName != "" {
		return m.DisplayName
	}
	return id
}

// FilterFields returns the search form fields in definition order.
func (c *Catalog) FilterFields() []FilterField {
	return c.filterFields
}

// FilterField looks a field up by its value key.
func (c *Catalog) FilterField(value string) (FilterField, bool) {
	for _, f := range c.filterFields {
		if f.Value == value {
			return f, true
		}
	}
	return FilterField{}, false
}
