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

// Package api exposes the explorer session over HTTP. Every action endpoint
// applies one store action and answers with the resulting session snapshot,
// so a thin frontend can rerender from the response alone.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/eclipse-basyx/basyx-aas-explorer/internal/common"
	"github.com/eclipse-basyx/basyx-aas-explorer/internal/explorer/catalog"
	"github.com/eclipse-basyx/basyx-aas-explorer/internal/explorer/state"
)

// Route defines the parameters for an api endpoint
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc http.HandlerFunc
}

// ExplorerAPIController binds the explorer store to HTTP routes.
type ExplorerAPIController struct {
	store *state.Store
	cat   *catalog.Catalog
}

// NewExplorerAPIController creates a controller over a store and its menu
// catalog.
func NewExplorerAPIController(store *state.Store, cat *catalog.Catalog) *ExplorerAPIController {
	return &ExplorerAPIController{store: store, cat: cat}
}

// Routes returns all the api routes for the ExplorerAPIController
func (c *ExplorerAPIController) Routes() []Route {
	return []Route{
		{"GetSnapshot", strings.ToUpper("Get"), "/explorer/snapshot", c.GetSnapshot},
		{"GetMenus", strings.ToUpper("Get"), "/explorer/menus", c.GetMenus},
		{"ChangeMenu", strings.ToUpper("Post"), "/explorer/menu", c.ChangeMenu},
		{"SubmitSearch", strings.ToUpper("Post"), "/explorer/search", c.SubmitSearch},
		{"ClearSearch", strings.ToUpper("Post"), "/explorer/search/clear", c.ClearSearch},
		{"ToggleNode", strings.ToUpper("Post"), "/explorer/nodes/toggle", c.ToggleNode},
		{"SelectNode", strings.ToUpper("Post"), "/explorer/nodes/select", c.SelectNode},
		{"LoadMore", strings.ToUpper("Post"), "/explorer/load-more", c.LoadMore},
		{"RefreshDashboard", strings.ToUpper("Post"), "/explorer/dashboard/refresh", c.RefreshDashboard},
	}
}

type menuRequest struct {
	MenuID string `json:"menuId"`
}

type searchRequest struct {
	Field string `json:"field,omitempty"`
	Value string `json:"value"`
}

type nodeRequest struct {
	NodeID string `json:"nodeId"`
}

type menuEntry struct {
	ID          string `json:"id"`
	Group       string `json:"group"`
	DisplayName string `json:"displayName"`
	Count       int    `json:"count,omitempty"`
}

type menusResponse struct {
	Menus        []menuEntry           `json:"menus"`
	FilterFields []catalog.FilterField `json:"filterFields"`
}

// GetSnapshot - Returns the current session snapshot
func (c *ExplorerAPIController) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, c.store.Snapshot())
}

// GetMenus - Returns the category menus with display names and equipment counts
func (c *ExplorerAPIController) GetMenus(w http.ResponseWriter, r *http.Request) {
	counts := c.store.Snapshot().MenuCounts
	menus := c.cat.Menus()
	entries := make([]menuEntry, 0, len(menus))
	for _, m := range menus {
		entries = append(entries, menuEntry{
			ID:          m.ID,
			Group:       m.Group,
			DisplayName: m.DisplayName,
			Count:       counts[m.ID],
		})
	}
	writeJSON(w, http.StatusOK, menusResponse{
		Menus:        entries,
		FilterFields: c.cat.FilterFields(),
	})
}

// ChangeMenu - Loads the equipment listing for a category menu
func (c *ExplorerAPIController) ChangeMenu(w http.ResponseWriter, r *http.Request) {
	var req menuRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.NewErrValidation("invalid request body"))
		return
	}
	c.respondAfter(w, c.store.ChangeMenu(r.Context(), req.MenuID))
}

// SubmitSearch - Runs a field or free-text search within the current menu
func (c *ExplorerAPIController) SubmitSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.NewErrValidation("invalid request body"))
		return
	}
	c.respondAfter(w, c.store.SubmitSearch(r.Context(), req.Field, req.Value))
}

// ClearSearch - Discards the active filter and reloads the current menu
func (c *ExplorerAPIController) ClearSearch(w http.ResponseWriter, r *http.Request) {
	c.respondAfter(w, c.store.ClearSearch(r.Context()))
}

// ToggleNode - Expands or collapses a tree node
func (c *ExplorerAPIController) ToggleNode(w http.ResponseWriter, r *http.Request) {
	var req nodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.NewErrValidation("invalid request body"))
		return
	}
	c.respondAfter(w, c.store.ToggleNode(r.Context(), req.NodeID))
}

// SelectNode - Marks a node as the exclusive selection
func (c *ExplorerAPIController) SelectNode(w http.ResponseWriter, r *http.Request) {
	var req nodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.NewErrValidation("invalid request body"))
		return
	}
	c.respondAfter(w, c.store.SelectNode(r.Context(), req.NodeID))
}

// LoadMore - Appends the next display page of the current result set
func (c *ExplorerAPIController) LoadMore(w http.ResponseWriter, r *http.Request) {
	c.respondAfter(w, c.store.LoadMore(r.Context()))
}

// RefreshDashboard - Rescans the catalog and refreshes per-menu counts
func (c *ExplorerAPIController) RefreshDashboard(w http.ResponseWriter, r *http.Request) {
	c.respondAfter(w, c.store.LoadDashboard(r.Context()))
}

// respondAfter answers an action with the updated snapshot, or with a
// message document when the action failed.
func (c *ExplorerAPIController) respondAfter(w http.ResponseWriter, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c.store.Snapshot())
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	messageType := "Exception"
	switch {
	case common.IsErrValidation(err):
		status = http.StatusBadRequest
		messageType = "Error"
	case common.IsErrEmptyResult(err):
		status = http.StatusNotFound
		messageType = "Information"
	case common.IsErrPartialLoad(err):
		status = http.StatusPartialContent
		messageType = "Warning"
	case common.IsErrFetch(err):
		status = http.StatusBadGateway
		messageType = "Error"
	}
	// The taxonomy prefix classifies the error; the document carries the
	// display text only.
	msg := common.NewMessage(messageType, errors.New(common.ErrorText(err)), http.StatusText(status), "", common.GetCurrentTimestamp())
	writeJSON(w, status, map[string]interface{}{
		"messages": []interface{}{msg},
	})
}
