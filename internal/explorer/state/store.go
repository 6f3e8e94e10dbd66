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

// Package state holds the explorer session: current menu, search filter,
// tree snapshot, pagination cursor, and status flags. Every user action is
// one store method; fetches run outside the lock and results are applied
// only if their query epoch is still the current one, so late pages of an
// abandoned query can never overwrite a newer one.
package state

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/eclipse-basyx/basyx-aas-explorer/internal/common"
	"github.com/eclipse-basyx/basyx-aas-explorer/internal/common/model"
	"github.com/eclipse-basyx/basyx-aas-explorer/internal/explorer/catalog"
	"github.com/eclipse-basyx/basyx-aas-explorer/internal/explorer/classify"
	"github.com/eclipse-basyx/basyx-aas-explorer/internal/explorer/fetch"
	"github.com/eclipse-basyx/basyx-aas-explorer/internal/explorer/logger"
	"github.com/eclipse-basyx/basyx-aas-explorer/internal/explorer/tree"
)

// Status is the session state machine: Idle -> Loading -> {Ready, Error}.
// LoadingMore is reported separately in the pagination block because prior
// results stay visible while more are appended.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// Pagination describes the client-side paging cursor over the merged,
// deduplicated result set of the current query.
type Pagination struct {
	CurrentPage  int  `json:"currentPage"`
	HasMorePages bool `json:"hasMorePages"`
	// IsLoadingMore is part of the wire shape for clients; load-more
	// completes under the store lock, so a snapshot never observes it true.
	IsLoadingMore bool `json:"isLoadingMore"`
}

// Snapshot is an immutable view of the session handed to the API layer.
// TreeNodes shares structure with the store's tree; walks never mutate it.
type Snapshot struct {
	TreeNodes      []*tree.Node   `json:"treeNodes"`
	Status         Status         `json:"status"`
	Error          string         `json:"error,omitempty"`
	Pagination     Pagination     `json:"pagination"`
	SelectedNodeID string         `json:"selectedNodeId,omitempty"`
	CurrentMenu    string         `json:"currentMenu"`
	SearchTerm     string         `json:"searchTerm,omitempty"`
	MenuCounts     map[string]int `json:"menuCounts,omitempty"`
}

// Options configure a Store.
type Options struct {
	// PreferredLanguage selects MultiLanguageProperty values.
	PreferredLanguage string
	// InitialMenu is the menu the session starts on.
	InitialMenu string
	// AssetTypeID scopes the free-text search endpoint.
	AssetTypeID string
}

// Store is the single owner of session state. All mutation goes through its
// action methods.
type Store struct {
	cat  *catalog.Catalog
	ctl  *fetch.Controller
	opts Options

	mu          sync.Mutex
	epoch       uuid.UUID
	status      Status
	errText     string
	menuID      string
	searchTerm  string
	shells      []*model.AssetAdministrationShell
	bodies      []*model.Submodel
	nodes       []*tree.Node
	currentPage int
	hasMore     bool
	selectedID  string
	counts      map[string]int
}

// NewStore builds an idle store. No fetch happens until the first action.
func NewStore(cat *catalog.Catalog, ctl *fetch.Controller, opts Options) *Store {
	return &Store{
		cat:    cat,
		ctl:    ctl,
		opts:   opts,
		epoch:  uuid.New(),
		status: StatusIdle,
		menuID: opts.InitialMenu,
	}
}

// Snapshot returns the current session view.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		TreeNodes: s.nodes,
		Status:    s.status,
		Error:     s.errText,
		Pagination: Pagination{
			CurrentPage:  s.currentPage,
			HasMorePages: s.hasMore,
		},
		SelectedNodeID: s.selectedID,
		CurrentMenu:    s.menuID,
		SearchTerm:     s.searchTerm,
		MenuCounts:     s.counts,
	}
}

// ChangeMenu loads the equipment listing of a category menu. Selecting the
// menu the session already shows, with results present, is a no-op.
func (s *Store) ChangeMenu(ctx context.Context, menuID string) error {
	s.mu.Lock()
	if menuID == s.menuID && len(s.nodes) > 0 && s.status == StatusReady {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()
	return s.loadMenu(ctx, menuID)
}

// ClearSearch discards the active filter and reloads the current menu
// unfiltered, even when the menu itself is unchanged.
func (s *Store) ClearSearch(ctx context.Context) error {
	s.mu.Lock()
	menuID := s.menuID
	s.searchTerm = ""
	s.mu.Unlock()
	return s.loadMenu(ctx, menuID)
}

func (s *Store) loadMenu(ctx context.Context, menuID string) error {
	if menuID == catalog.MenuAll {
		return s.fail(common.NewErrValidation("Please start by searching or select a category."))
	}
	if !s.cat.IsKnown(menuID) {
		return s.fail(common.NewErrValidation("Unknown menu: " + menuID))
	}
	keywords := s.cat.Keywords(menuID)
	if len(keywords) == 0 {
		return s.fail(common.NewErrValidation("No API keyword defined for menu: " + menuID))
	}

	epoch := s.beginQuery(menuID, "")

	result, err := s.ctl.CollectCategory(ctx, "menu:"+menuID, keywords)
	if err == fetch.ErrChainRunning {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return nil
	}
	if err != nil {
		return s.failLocked(err)
	}

	shells := excludeComponents(result.Shells)
	if len(shells) == 0 {
		return s.failLocked(common.NewErrEmptyResult(s.cat.DisplayName(menuID) + ": No data in range."))
	}
	s.applyResultLocked(shells, result.Bodies, "")
	return nil
}

// SubmitSearch runs a search. A non-empty field selects the single-page
// field search; an empty field runs the free-text keyword search scoped to
// the configured asset type. Fields that require a value reject an empty
// one before any network call.
func (s *Store) SubmitSearch(ctx context.Context, field, value string) error {
	value = strings.TrimSpace(value)

	if field != "" {
		ff, known := s.cat.FilterField(field)
		if !known {
			return s.fail(common.NewErrValidation("Unknown filter field: " + field))
		}
		if ff.RequiresValue && value == "" {
			return s.fail(common.NewErrValidation("Please enter a search term."))
		}
	} else if value == "" {
		return s.fail(common.NewErrValidation("Please enter a search term."))
	}

	s.mu.Lock()
	menuID := s.menuID
	s.mu.Unlock()

	epoch := s.beginQuery(menuID, value)

	var (
		shells []*model.AssetAdministrationShell
		bodies []*model.Submodel
		err    error
	)
	if field != "" {
		p, ferr := s.ctl.SearchByField(ctx, field, value)
		if ferr != nil {
			err = ferr
		} else {
			shells, bodies = p.Shells, p.Submodels
		}
	} else {
		result, cerr := s.ctl.CollectSearch(ctx, "search:"+value, []string{value}, s.opts.AssetTypeID)
		if cerr == fetch.ErrChainRunning {
			return nil
		}
		if cerr != nil {
			err = cerr
		} else {
			shells, bodies = result.Shells, result.Bodies
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return nil
	}
	if err != nil {
		return s.failLocked(err)
	}

	shells = classify.FilterByMenu(s.cat, shells, menuID)
	if len(shells) == 0 {
		return s.failLocked(common.NewErrEmptyResult("No search results found for the current menu."))
	}
	s.applyResultLocked(shells, bodies, value)
	return nil
}

// ToggleNode flips a node's expansion. The first expansion of a submodel
// whose children are still the placeholder resolves the real children
// exactly once: from the body already on hand when the listing carried it
// inline, otherwise through the one-time element fetch. A failed fetch
// replaces the placeholder with a synthetic error child instead of leaving
// it stuck.
func (s *Store) ToggleNode(ctx context.Context, nodeID string) error {
	s.mu.Lock()
	node := tree.FindNode(s.nodes, nodeID)
	if node == nil {
		s.mu.Unlock()
		return common.NewErrValidation("Unknown node: " + nodeID)
	}
	needResolve := !node.Expanded && node.Kind == tree.KindSubmodel && node.HasOnlyPlaceholder()
	inline := node.Body
	s.nodes = tree.ToggleExpanded(s.nodes, nodeID)
	epoch := s.epoch

	if !needResolve {
		s.mu.Unlock()
		return nil
	}
	if inline != nil {
		s.materializeBodyLocked(nodeID, inline)
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()
	s.resolveSubmodel(ctx, epoch, nodeID)
	return nil
}

// SelectNode marks a node as the exclusive selection. A submodel selected
// before its body was loaded gets the same on-demand fetch as expansion;
// an inline body resolves locally.
func (s *Store) SelectNode(ctx context.Context, nodeID string) error {
	s.mu.Lock()
	node := tree.FindNode(s.nodes, nodeID)
	if node == nil {
		s.mu.Unlock()
		return common.NewErrValidation("Unknown node: " + nodeID)
	}
	if node.Kind == tree.KindPlaceholder {
		s.mu.Unlock()
		return nil
	}
	if node.Kind == tree.KindSubmodel && node.HasOnlyPlaceholder() && node.Body != nil {
		s.materializeBodyLocked(nodeID, node.Body)
	}
	needFetch := node.Kind == tree.KindSubmodel && node.Body == nil
	epoch := s.epoch
	s.mu.Unlock()

	if needFetch {
		s.resolveSubmodel(ctx, epoch, nodeID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return nil
	}
	s.nodes = tree.SelectExclusive(s.nodes, nodeID)
	s.selectedID = nodeID
	return nil
}

// resolveSubmodel fetches a submodel body and swaps the node's placeholder
// children for real ones. Failures are contained to the node.
func (s *Store) resolveSubmodel(ctx context.Context, epoch uuid.UUID, submodelID string) {
	body, err := s.ctl.FetchSubmodel(ctx, submodelID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return
	}
	if err != nil {
		logger.LogError("submodel "+submodelID, err)
		s.nodes = tree.ReplaceChildren(s.nodes, submodelID,
			[]*tree.Node{tree.NewErrorChild(submodelID)}, nil)
		return
	}
	s.materializeBodyLocked(submodelID, body)
}

// materializeBodyLocked swaps a submodel's placeholder children for nodes
// transformed from an already loaded body. Caller holds the lock.
func (s *Store) materializeBodyLocked(submodelID string, body *model.Submodel) {
	parentID := body.ID
	if parentID == "" {
		parentID = submodelID
	}
	children := tree.TransformElements(body.SubmodelElements, parentID, s.elementOptionsLocked())
	s.nodes = tree.ReplaceChildren(s.nodes, submodelID, children, body)
}

// LoadMore appends the next display page of the already collected result
// set. Valid only from Ready with pages remaining; duplicate UI events
// inside the debounce interval are absorbed.
func (s *Store) LoadMore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusReady || !s.hasMore {
		return nil
	}
	if !s.ctl.AllowLoadMore() {
		return nil
	}

	nextPage := s.currentPage + 1
	pageShells, more := s.ctl.Repaginate(s.shells, nextPage)
	s.nodes = tree.MergePage(s.nodes, pageShells, s.bodies, s.elementOptionsLocked())
	s.currentPage = nextPage
	s.hasMore = more
	return nil
}

// LoadDashboard scans the full catalog and refreshes the per-menu counts.
// Failures keep the previous counts.
func (s *Store) LoadDashboard(ctx context.Context) error {
	result, err := s.ctl.CollectAll(ctx, "dashboard")
	if err == fetch.ErrChainRunning {
		return nil
	}
	if err != nil {
		logger.LogError("dashboard scan", err)
		return err
	}
	counts := classify.CountsByCategory(s.cat, result.Shells)

	s.mu.Lock()
	s.counts = counts
	s.mu.Unlock()
	return nil
}

// beginQuery stamps a fresh epoch and resets the session to Loading for a
// new query. Any chain still running for the previous epoch becomes stale.
func (s *Store) beginQuery(menuID, searchTerm string) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch = uuid.New()
	s.status = StatusLoading
	s.errText = ""
	s.menuID = menuID
	s.searchTerm = searchTerm
	s.currentPage = 0
	s.hasMore = false
	s.selectedID = ""
	return s.epoch
}

func (s *Store) applyResultLocked(shells []*model.AssetAdministrationShell, bodies []*model.Submodel, searchTerm string) {
	s.shells = shells
	s.bodies = bodies
	pageShells, more := s.ctl.Repaginate(shells, 1)
	s.nodes = tree.Build(pageShells, bodies, tree.ElementOptions{
		SearchTerm: searchTerm,
		Language:   s.opts.PreferredLanguage,
	})
	s.currentPage = 1
	s.hasMore = more
	s.status = StatusReady
	s.errText = ""
}

func (s *Store) elementOptionsLocked() tree.ElementOptions {
	return tree.ElementOptions{
		SearchTerm: s.searchTerm,
		Language:   s.opts.PreferredLanguage,
	}
}

func (s *Store) fail(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failLocked(err)
}

func (s *Store) failLocked(err error) error {
	s.status = StatusError
	s.errText = common.ErrorText(err)
	s.nodes = nil
	s.shells = nil
	s.bodies = nil
	s.currentPage = 0
	s.hasMore = false
	s.selectedID = ""
	logger.LogDebug(fmt.Sprintf("query failed: %v", err))
	return err
}

func excludeComponents(shells []*model.AssetAdministrationShell) []*model.AssetAdministrationShell {
	out := make([]*model.AssetAdministrationShell, 0, len(shells))
	for _, shell := range shells {
		if classify.IsExcluded(shell) {
			continue
		}
		out = append(out, shell)
	}
	return out
}
