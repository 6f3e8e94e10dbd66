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

// Package fetch orchestrates paginated reads from the upstream catalog:
// page-by-page auto-continuation under a ceiling, multi-keyword collection
// with identifier deduplication, client-side re-pagination of the merged
// result set, and the guards that keep continuation chains from piling up.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/eclipse-basyx/basyx-aas-explorer/internal/common/model"
	"github.com/eclipse-basyx/basyx-aas-explorer/internal/explorer/client"
	"github.com/eclipse-basyx/basyx-aas-explorer/internal/explorer/logger"
)

// Source is the upstream surface the controller paginates over. The HTTP
// client implements it; tests substitute fakes.
type Source interface {
	ListAll(ctx context.Context, page int) (*client.Page, error)
	ListByCategory(ctx context.Context, keyword string, page int) (*client.Page, error)
	SearchByField(ctx context.Context, field, value string) (*client.Page, error)
	SearchByKeywordAndAsset(ctx context.Context, keyword, assetTypeID string, page int) (*client.Page, error)
	FetchSubmodel(ctx context.Context, submodelID string) (*model.Submodel, error)
}

// ErrChainRunning is returned when a continuation chain is already in
// flight for the same query.
var ErrChainRunning = errors.New("continuation chain already running for this query")

// Options tune the controller. Zero values select the defaults below.
type Options struct {
	// ListPageSize is the bare-list page threshold: a page of exactly this
	// size implies more pages likely exist.
	ListPageSize int
	// SearchPageSize is the threshold of the keyword/asset search endpoint.
	SearchPageSize int
	// DisplayPageSize is the client-side page size the merged result set is
	// re-paginated into.
	DisplayPageSize int
	// MaxPages caps auto-continuation per keyword.
	MaxPages int
	// LoadMoreInterval is the minimum gap between load-more invocations;
	// duplicate UI events inside the gap are absorbed.
	LoadMoreInterval time.Duration
}

const (
	defaultListPageSize    = 10
	defaultSearchPageSize  = 60
	defaultDisplayPageSize = 10
	defaultMaxPages        = 50
	defaultLoadMoreGap     = 300 * time.Millisecond
)

// Controller runs paginated fetches against a Source.
type Controller struct {
	src  Source
	opts Options

	mu           sync.Mutex
	lastLoadMore time.Time
	inflight     map[string]struct{}
}

// NewController builds a controller over the given source.
func NewController(src Source, opts Options) *Controller {
	if opts.ListPageSize <= 0 {
		opts.ListPageSize = defaultListPageSize
	}
	if opts.SearchPageSize <= 0 {
		opts.SearchPageSize = defaultSearchPageSize
	}
	if opts.DisplayPageSize <= 0 {
		opts.DisplayPageSize = defaultDisplayPageSize
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = defaultMaxPages
	}
	if opts.LoadMoreInterval <= 0 {
		opts.LoadMoreInterval = defaultLoadMoreGap
	}
	return &Controller{
		src:      src,
		opts:     opts,
		inflight: make(map[string]struct{}),
	}
}

// DisplayPageSize exposes the configured client-side page size.
func (c *Controller) DisplayPageSize() int {
	return c.opts.DisplayPageSize
}

// hasMore decides whether another page should be fetched. An empty page is
// always final. An explicit envelope flag wins over size inference; without
// one, a full page of exactly the endpoint threshold implies continuation.
func hasMore(page *client.Page, threshold int) bool {
	if len(page.Shells) == 0 {
		return false
	}
	if page.Last != nil {
		return !*page.Last
	}
	return len(page.Shells) >= threshold
}

// Result is the union of every page a collection chain fetched: shells
// deduplicated by id in first-seen order, plus whatever submodel bodies the
// upstream envelopes carried inline, deduplicated the same way.
type Result struct {
	Shells []*model.AssetAdministrationShell
	Bodies []*model.Submodel
}

// CollectCategory queries every keyword of a category across its own full
// page range and returns the union, deduplicated by shell id in first-seen
// order. Deduplication happens here, before any client-side re-pagination.
//
// At most one collection chain runs per query key; a second caller gets
// ErrChainRunning. A failure on the very first request surfaces as an
// error; failures later in the chain are logged, stop further
// continuation, and leave the partial union usable.
func (c *Controller) CollectCategory(ctx context.Context, queryKey string, keywords []string) (*Result, error) {
	if !c.beginChain(queryKey) {
		return nil, ErrChainRunning
	}
	defer c.endChain(queryKey)

	return c.collect(ctx, keywords, func(ctx context.Context, keyword string, pageNum int) (*client.Page, bool, error) {
		page, err := c.src.ListByCategory(ctx, keyword, pageNum)
		if err != nil {
			return nil, false, err
		}
		return page, hasMore(page, c.opts.ListPageSize), nil
	})
}

// CollectSearch is CollectCategory for the keyword/asset search endpoint.
func (c *Controller) CollectSearch(ctx context.Context, queryKey string, keywords []string, assetTypeID string) (*Result, error) {
	if !c.beginChain(queryKey) {
		return nil, ErrChainRunning
	}
	defer c.endChain(queryKey)

	return c.collect(ctx, keywords, func(ctx context.Context, keyword string, pageNum int) (*client.Page, bool, error) {
		page, err := c.src.SearchByKeywordAndAsset(ctx, keyword, assetTypeID, pageNum)
		if err != nil {
			return nil, false, err
		}
		return page, hasMore(page, c.opts.SearchPageSize), nil
	})
}

// CollectAll walks the complete shell listing, page by page. Used for the
// dashboard category counts.
func (c *Controller) CollectAll(ctx context.Context, queryKey string) (*Result, error) {
	if !c.beginChain(queryKey) {
		return nil, ErrChainRunning
	}
	defer c.endChain(queryKey)

	return c.collect(ctx, []string{""}, func(ctx context.Context, _ string, pageNum int) (*client.Page, bool, error) {
		page, err := c.src.ListAll(ctx, pageNum)
		if err != nil {
			return nil, false, err
		}
		return page, hasMore(page, c.opts.ListPageSize), nil
	})
}

type pageFetch func(ctx context.Context, keyword string, pageNum int) (*client.Page, bool, error)

func (c *Controller) collect(ctx context.Context, keywords []string, fetchOne pageFetch) (*Result, error) {
	seenShells := make(map[string]struct{})
	seenBodies := make(map[string]struct{})
	result := &Result{}
	firstRequest := true

	for _, keyword := range keywords {
		for pageNum := 1; pageNum <= c.opts.MaxPages; pageNum++ {
			page, more, err := fetchOne(ctx, keyword, pageNum)
			if err != nil {
				if firstRequest {
					return nil, err
				}
				// Later pages fail quietly; what arrived stays usable.
				logger.LogError(fmt.Sprintf("page %d for keyword %q", pageNum, keyword), err)
				return result, nil
			}
			firstRequest = false
			mergePage(result, page, seenShells, seenBodies)

			if !more {
				break
			}
		}
	}
	return result, nil
}

func mergePage(result *Result, page *client.Page, seenShells, seenBodies map[string]struct{}) {
	for _, shell := range page.Shells {
		if shell == nil {
			continue
		}
		if _, dup := seenShells[shell.ID]; dup {
			continue
		}
		seenShells[shell.ID] = struct{}{}
		result.Shells = append(result.Shells, shell)
	}
	for _, body := range page.Submodels {
		if body == nil {
			continue
		}
		if _, dup := seenBodies[body.ID]; dup {
			continue
		}
		seenBodies[body.ID] = struct{}{}
		result.Bodies = append(result.Bodies, body)
	}
}

// SearchByField runs the single-page field search.
func (c *Controller) SearchByField(ctx context.Context, field, value string) (*client.Page, error) {
	return c.src.SearchByField(ctx, field, value)
}

// FetchSubmodel retrieves one submodel body.
func (c *Controller) FetchSubmodel(ctx context.Context, submodelID string) (*model.Submodel, error) {
	return c.src.FetchSubmodel(ctx, submodelID)
}

// Repaginate slices one display page out of the merged, deduplicated result
// set. Page numbers start at 1. The second return reports whether further
// display pages remain.
func (c *Controller) Repaginate(shells []*model.AssetAdministrationShell, pageNum int) ([]*model.AssetAdministrationShell, bool) {
	if pageNum < 1 {
		pageNum = 1
	}
	start := (pageNum - 1) * c.opts.DisplayPageSize
	if start >= len(shells) {
		return nil, false
	}
	end := start + c.opts.DisplayPageSize
	if end > len(shells) {
		end = len(shells)
	}
	return shells[start:end], end < len(shells)
}

// AllowLoadMore absorbs duplicate load-more events: it returns true at most
// once per configured interval.
func (c *Controller) AllowLoadMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	if now.Sub(c.lastLoadMore) < c.opts.LoadMoreInterval {
		return false
	}
	c.lastLoadMore = now
	return true
}

func (c *Controller) beginChain(queryKey string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, running := c.inflight[queryKey]; running {
		return false
	}
	c.inflight[queryKey] = struct{}{}
	return true
}

func (c *Controller) endChain(queryKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, queryKey)
}
