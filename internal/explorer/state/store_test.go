package state

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eclipse-basyx/basyx-aas-explorer/internal/common"
	"github.com/eclipse-basyx/basyx-aas-explorer/internal/common/model"
	"github.com/eclipse-basyx/basyx-aas-explorer/internal/explorer/catalog"
	"github.com/eclipse-basyx/basyx-aas-explorer/internal/explorer/client"
	"github.com/eclipse-basyx/basyx-aas-explorer/internal/explorer/fetch"
	"github.com/eclipse-basyx/basyx-aas-explorer/internal/explorer/tree"
)

// fakeSource serves scripted single pages per keyword and scripted submodel
// bodies per id.
type fakeSource struct {
	mu            sync.Mutex
	pages         map[string]*client.Page
	submodels     map[string]*model.Submodel
	failSubmodels map[string]bool
	blockOn       map[string]chan struct{}
	requests      int
	submodelCalls int
}

func (f *fakeSource) page(keyword string) (*client.Page, error) {
	f.mu.Lock()
	block := f.blockOn[keyword]
	f.requests++
	page := f.pages[keyword]
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	if page == nil {
		return &client.Page{}, nil
	}
	return page, nil
}

func (f *fakeSource) ListAll(context.Context, int) (*client.Page, error) {
	return f.page("")
}

func (f *fakeSource) ListByCategory(_ context.Context, keyword string, _ int) (*client.Page, error) {
	return f.page(keyword)
}

func (f *fakeSource) SearchByField(_ context.Context, field, value string) (*client.Page, error) {
	return f.page(field + "=" + value)
}

func (f *fakeSource) SearchByKeywordAndAsset(_ context.Context, keyword, _ string, _ int) (*client.Page, error) {
	return f.page(keyword)
}

func (f *fakeSource) FetchSubmodel(_ context.Context, submodelID string) (*model.Submodel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submodelCalls++
	if f.failSubmodels[submodelID] {
		return nil, errors.New("upstream down")
	}
	if sm, ok := f.submodels[submodelID]; ok {
		return sm, nil
	}
	return &model.Submodel{ID: submodelID}, nil
}

func tigShell(n int, submodelIDs ...string) *model.AssetAdministrationShell {
	s := &model.AssetAdministrationShell{
		ID:      fmt.Sprintf("https://example.com/aas/TungstenInsertGasType/M%d/1/0", n),
		IdShort: fmt.Sprintf("TIG%02d", n),
	}
	for _, smID := range submodelIDs {
		s.Submodels = append(s.Submodels, model.SubmodelRef{ID: smID})
	}
	return s
}

func newTestStore(src *fakeSource, opts fetch.Options) *Store {
	if opts.LoadMoreInterval == 0 {
		opts.LoadMoreInterval = time.Microsecond
	}
	ctl := fetch.NewController(src, opts)
	return NewStore(catalog.Default(), ctl, Options{
		PreferredLanguage: "en",
		InitialMenu:       "TIG",
	})
}

func TestChangeMenuBuildsTree(t *testing.T) {
	src := &fakeSource{pages: map[string]*client.Page{
		"TungstenInsertGasType": {Shells: []*model.AssetAdministrationShell{
			tigShell(1, "sm-1"),
			tigShell(2),
		}},
	}}
	store := newTestStore(src, fetch.Options{})

	require.NoError(t, store.ChangeMenu(context.Background(), "TIG"))

	snap := store.Snapshot()
	assert.Equal(t, StatusReady, snap.Status)
	assert.Empty(t, snap.Error)
	assert.Equal(t, "TIG", snap.CurrentMenu)
	require.Len(t, snap.TreeNodes, 2)
	assert.Equal(t, "TIG01 (M1)", snap.TreeNodes[0].Name)
	assert.Equal(t, 1, snap.Pagination.CurrentPage)
	assert.False(t, snap.Pagination.HasMorePages)

	// Browsing defers element expansion behind placeholders.
	submodel := snap.TreeNodes[0].Children[0]
	assert.True(t, submodel.HasOnlyPlaceholder())
}

func TestChangeMenuAllIsRejected(t *testing.T) {
	src := &fakeSource{}
	store := newTestStore(src, fetch.Options{})

	err := store.ChangeMenu(context.Background(), catalog.MenuAll)
	require.Error(t, err)
	assert.True(t, common.IsErrValidation(err))
	assert.Equal(t, 0, src.requests)
	assert.Equal(t, "Please start by searching or select a category.", store.Snapshot().Error)
}

func TestChangeMenuUnknownMenu(t *testing.T) {
	src := &fakeSource{}
	store := newTestStore(src, fetch.Options{})

	err := store.ChangeMenu(context.Background(), "LASER")
	require.Error(t, err)
	assert.True(t, common.IsErrValidation(err))
	assert.Equal(t, 0, src.requests)
}

func TestChangeMenuWithoutKeywords(t *testing.T) {
	cat := catalog.New([]catalog.Menu{{ID: "INFO", DisplayName: "Info Only"}}, nil)
	src := &fakeSource{}
	store := NewStore(cat, fetch.NewController(src, fetch.Options{}), Options{})

	err := store.ChangeMenu(context.Background(), "INFO")
	require.Error(t, err)
	assert.Contains(t, store.Snapshot().Error, "No API keyword defined for menu: INFO")
	assert.Equal(t, 0, src.requests)
}

func TestChangeMenuEmptyAfterExclusion(t *testing.T) {
	excluded := &model.AssetAdministrationShell{ID: "urn:shell:c1", IdShort: "component"}
	src := &fakeSource{pages: map[string]*client.Page{
		"TungstenInsertGasType": {Shells: []*model.AssetAdministrationShell{excluded}},
	}}
	store := newTestStore(src, fetch.Options{})

	err := store.ChangeMenu(context.Background(), "TIG")
	require.Error(t, err)
	assert.True(t, common.IsErrEmptyResult(err))

	snap := store.Snapshot()
	assert.Equal(t, StatusError, snap.Status)
	assert.Equal(t, "TIG Welding Equipment: No data in range.", snap.Error)
	assert.Empty(t, snap.TreeNodes)
}

func TestChangeMenuSameMenuIsNoOp(t *testing.T) {
	src := &fakeSource{pages: map[string]*client.Page{
		"TungstenInsertGasType": {Shells: []*model.AssetAdministrationShell{tigShell(1)}},
	}}
	store := newTestStore(src, fetch.Options{})

	require.NoError(t, store.ChangeMenu(context.Background(), "TIG"))
	before := src.requests

	require.NoError(t, store.ChangeMenu(context.Background(), "TIG"))
	assert.Equal(t, before, src.requests)
}

func TestClearSearchReloadsSameMenu(t *testing.T) {
	src := &fakeSource{pages: map[string]*client.Page{
		"TungstenInsertGasType": {Shells: []*model.AssetAdministrationShell{tigShell(1)}},
	}}
	store := newTestStore(src, fetch.Options{})

	require.NoError(t, store.ChangeMenu(context.Background(), "TIG"))
	before := src.requests

	// Unlike ChangeMenu, clearing always reloads.
	require.NoError(t, store.ClearSearch(context.Background()))
	assert.Greater(t, src.requests, before)
	assert.Empty(t, store.Snapshot().SearchTerm)
}

func TestSubmitSearchEmptyValueNoNetwork(t *testing.T) {
	src := &fakeSource{}
	store := newTestStore(src, fetch.Options{})

	err := store.SubmitSearch(context.Background(), "", "   ")
	require.Error(t, err)
	assert.True(t, common.IsErrValidation(err))
	assert.Equal(t, 0, src.requests)
	assert.Equal(t, "Please enter a search term.", store.Snapshot().Error)
}

func TestSubmitSearchValueRequiringFieldRejectsEmpty(t *testing.T) {
	src := &fakeSource{}
	store := newTestStore(src, fetch.Options{})

	err := store.SubmitSearch(context.Background(), "ratedoutputcurrent", "")
	require.Error(t, err)
	assert.True(t, common.IsErrValidation(err))
	assert.Equal(t, 0, src.requests)
}

func TestSubmitSearchUnknownField(t *testing.T) {
	src := &fakeSource{}
	store := newTestStore(src, fetch.Options{})

	err := store.SubmitSearch(context.Background(), "nosuchfield", "350")
	require.Error(t, err)
	assert.True(t, common.IsErrValidation(err))
	assert.Equal(t, 0, src.requests)
}

func TestSubmitSearchFreeTextMarksMatches(t *testing.T) {
	src := &fakeSource{pages: map[string]*client.Page{
		"M1": {Shells: []*model.AssetAdministrationShell{tigShell(1)}},
	}}
	store := newTestStore(src, fetch.Options{})

	require.NoError(t, store.SubmitSearch(context.Background(), "", "M1"))

	snap := store.Snapshot()
	assert.Equal(t, StatusReady, snap.Status)
	assert.Equal(t, "M1", snap.SearchTerm)
	require.Len(t, snap.TreeNodes, 1)
	// "M1" appears in the shell id, so the equipment node is marked.
	assert.True(t, snap.TreeNodes[0].Matched)
}

func TestSubmitSearchFiltersByCurrentMenu(t *testing.T) {
	// The search hit belongs to MAG, not to the current TIG menu.
	mag := &model.AssetAdministrationShell{
		ID:      "https://example.com/aas/MetalActiveGasType/W7/1/0",
		IdShort: "MAG01",
	}
	src := &fakeSource{pages: map[string]*client.Page{
		"W7": {Shells: []*model.AssetAdministrationShell{mag}},
	}}
	store := newTestStore(src, fetch.Options{})

	err := store.SubmitSearch(context.Background(), "", "W7")
	require.Error(t, err)
	assert.True(t, common.IsErrEmptyResult(err))
	assert.Equal(t, "No search results found for the current menu.", store.Snapshot().Error)
}

func TestSubmitSearchByFieldUsesFieldEndpoint(t *testing.T) {
	src := &fakeSource{pages: map[string]*client.Page{
		"ratedoutputcurrent=350": {
			Shells:    []*model.AssetAdministrationShell{tigShell(1, "sm-1")},
			Submodels: []*model.Submodel{{ID: "sm-1", IdShort: "TechnicalData"}},
		},
	}}
	store := newTestStore(src, fetch.Options{})

	require.NoError(t, store.SubmitSearch(context.Background(), "ratedoutputcurrent", "350"))

	snap := store.Snapshot()
	assert.Equal(t, StatusReady, snap.Status)
	require.Len(t, snap.TreeNodes, 1)
	// The inline body names the submodel row.
	assert.Equal(t, "TechnicalData", snap.TreeNodes[0].Children[0].Name)
}

func TestToggleNodeFetchesSubmodelOnce(t *testing.T) {
	src := &fakeSource{
		pages: map[string]*client.Page{
			"TungstenInsertGasType": {Shells: []*model.AssetAdministrationShell{tigShell(1, "sm-1")}},
		},
		submodels: map[string]*model.Submodel{
			"sm-1": {ID: "sm-1", SubmodelElements: []model.SubmodelElement{{
				ModelType: model.ModelTypeProperty,
				IdShort:   "RatedOutputCurrent",
				Value:     []byte(`"350"`),
			}}},
		},
	}
	store := newTestStore(src, fetch.Options{})
	require.NoError(t, store.ChangeMenu(context.Background(), "TIG"))

	require.NoError(t, store.ToggleNode(context.Background(), "sm-1"))

	node := tree.FindNode(store.Snapshot().TreeNodes, "sm-1")
	require.NotNil(t, node)
	assert.True(t, node.Expanded)
	require.Len(t, node.Children, 1)
	assert.Equal(t, "RatedOutputCurrent: 350 A", node.Children[0].Name)
	assert.Equal(t, 1, src.submodelCalls)

	// Collapse and re-expand reuse the loaded body.
	require.NoError(t, store.ToggleNode(context.Background(), "sm-1"))
	require.NoError(t, store.ToggleNode(context.Background(), "sm-1"))
	assert.Equal(t, 1, src.submodelCalls)
}

func TestToggleNodeResolvesInlineBodyWithoutFetch(t *testing.T) {
	// The listing page carries the submodel body inline; the first expansion
	// must transform it locally instead of waiting on a fetch that never
	// fires.
	src := &fakeSource{pages: map[string]*client.Page{
		"TungstenInsertGasType": {
			Shells: []*model.AssetAdministrationShell{tigShell(1, "sm-1")},
			Submodels: []*model.Submodel{{
				ID:      "sm-1",
				IdShort: "Nameplate",
				SubmodelElements: []model.SubmodelElement{{
					ModelType: model.ModelTypeProperty,
					IdShort:   "ManufacturerName",
					Value:     []byte(`"ACME Welding"`),
				}},
			}},
		},
	}}
	store := newTestStore(src, fetch.Options{})
	require.NoError(t, store.ChangeMenu(context.Background(), "TIG"))

	node := tree.FindNode(store.Snapshot().TreeNodes, "sm-1")
	require.NotNil(t, node)
	require.NotNil(t, node.Body)
	require.True(t, node.HasOnlyPlaceholder())

	require.NoError(t, store.ToggleNode(context.Background(), "sm-1"))

	node = tree.FindNode(store.Snapshot().TreeNodes, "sm-1")
	assert.True(t, node.Expanded)
	assert.False(t, node.HasOnlyPlaceholder())
	require.Len(t, node.Children, 1)
	assert.Equal(t, "ManufacturerName: ACME Welding", node.Children[0].Name)
	assert.Equal(t, 0, src.submodelCalls)
}

func TestToggleNodeFetchFailureShowsErrorChild(t *testing.T) {
	src := &fakeSource{
		pages: map[string]*client.Page{
			"TungstenInsertGasType": {Shells: []*model.AssetAdministrationShell{tigShell(1, "sm-1")}},
		},
		failSubmodels: map[string]bool{"sm-1": true},
	}
	store := newTestStore(src, fetch.Options{})
	require.NoError(t, store.ChangeMenu(context.Background(), "TIG"))

	require.NoError(t, store.ToggleNode(context.Background(), "sm-1"))

	node := tree.FindNode(store.Snapshot().TreeNodes, "sm-1")
	require.Len(t, node.Children, 1)
	assert.Equal(t, "Failed to load data", node.Children[0].Name)
	// The failure stays contained to the node.
	assert.Equal(t, StatusReady, store.Snapshot().Status)
}

func TestToggleUnknownNode(t *testing.T) {
	src := &fakeSource{pages: map[string]*client.Page{
		"TungstenInsertGasType": {Shells: []*model.AssetAdministrationShell{tigShell(1)}},
	}}
	store := newTestStore(src, fetch.Options{})
	require.NoError(t, store.ChangeMenu(context.Background(), "TIG"))

	err := store.ToggleNode(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, common.IsErrValidation(err))
}

func TestSelectNodeIsExclusive(t *testing.T) {
	src := &fakeSource{pages: map[string]*client.Page{
		"TungstenInsertGasType": {Shells: []*model.AssetAdministrationShell{
			tigShell(1, "sm-1"),
			tigShell(2),
		}},
	}}
	store := newTestStore(src, fetch.Options{})
	require.NoError(t, store.ChangeMenu(context.Background(), "TIG"))

	eq1 := store.Snapshot().TreeNodes[0].ID
	eq2 := store.Snapshot().TreeNodes[1].ID

	require.NoError(t, store.SelectNode(context.Background(), eq1))
	assert.Equal(t, eq1, store.Snapshot().SelectedNodeID)

	require.NoError(t, store.SelectNode(context.Background(), eq2))
	snap := store.Snapshot()
	assert.Equal(t, eq2, snap.SelectedNodeID)
	assert.False(t, tree.FindNode(snap.TreeNodes, eq1).Selected)
	assert.True(t, tree.FindNode(snap.TreeNodes, eq2).Selected)
}

func TestSelectSubmodelLoadsBody(t *testing.T) {
	src := &fakeSource{pages: map[string]*client.Page{
		"TungstenInsertGasType": {Shells: []*model.AssetAdministrationShell{tigShell(1, "sm-1")}},
	}}
	store := newTestStore(src, fetch.Options{})
	require.NoError(t, store.ChangeMenu(context.Background(), "TIG"))

	require.NoError(t, store.SelectNode(context.Background(), "sm-1"))

	node := tree.FindNode(store.Snapshot().TreeNodes, "sm-1")
	assert.True(t, node.Selected)
	require.NotNil(t, node.Body)
	assert.Equal(t, 1, src.submodelCalls)
}

func TestLoadMoreAppendsNextDisplayPage(t *testing.T) {
	var all []*model.AssetAdministrationShell
	for i := 1; i <= 5; i++ {
		all = append(all, tigShell(i))
	}
	src := &fakeSource{pages: map[string]*client.Page{
		"TungstenInsertGasType": {Shells: all},
	}}
	store := newTestStore(src, fetch.Options{DisplayPageSize: 2})
	require.NoError(t, store.ChangeMenu(context.Background(), "TIG"))

	snap := store.Snapshot()
	assert.Len(t, snap.TreeNodes, 2)
	assert.True(t, snap.Pagination.HasMorePages)

	require.NoError(t, store.LoadMore(context.Background()))
	snap = store.Snapshot()
	assert.Len(t, snap.TreeNodes, 4)
	assert.Equal(t, 2, snap.Pagination.CurrentPage)
	assert.True(t, snap.Pagination.HasMorePages)
	// Load-more completes under the lock, so a snapshot never reports it
	// in flight.
	assert.False(t, snap.Pagination.IsLoadingMore)

	time.Sleep(10 * time.Microsecond)
	require.NoError(t, store.LoadMore(context.Background()))
	snap = store.Snapshot()
	assert.Len(t, snap.TreeNodes, 5)
	assert.False(t, snap.Pagination.HasMorePages)

	// Further calls are no-ops.
	time.Sleep(10 * time.Microsecond)
	require.NoError(t, store.LoadMore(context.Background()))
	assert.Len(t, store.Snapshot().TreeNodes, 5)
}

func TestLoadMoreDebounce(t *testing.T) {
	var all []*model.AssetAdministrationShell
	for i := 1; i <= 6; i++ {
		all = append(all, tigShell(i))
	}
	src := &fakeSource{pages: map[string]*client.Page{
		"TungstenInsertGasType": {Shells: all},
	}}
	store := newTestStore(src, fetch.Options{
		DisplayPageSize:  2,
		LoadMoreInterval: time.Hour,
	})
	require.NoError(t, store.ChangeMenu(context.Background(), "TIG"))

	require.NoError(t, store.LoadMore(context.Background()))
	assert.Len(t, store.Snapshot().TreeNodes, 4)

	// The duplicate event inside the interval is absorbed.
	require.NoError(t, store.LoadMore(context.Background()))
	assert.Len(t, store.Snapshot().TreeNodes, 4)
}

func TestStaleQueryResultsAreDiscarded(t *testing.T) {
	block := make(chan struct{})
	src := &fakeSource{
		pages: map[string]*client.Page{
			"TungstenInsertGasType": {Shells: []*model.AssetAdministrationShell{tigShell(1)}},
			"MetalInsertGasType": {Shells: []*model.AssetAdministrationShell{{
				ID:      "https://example.com/aas/MetalInsertGasType/W9/1/0",
				IdShort: "MIG01",
			}}},
		},
		blockOn: map[string]chan struct{}{"TungstenInsertGasType": block},
	}
	store := newTestStore(src, fetch.Options{})

	done := make(chan error, 1)
	go func() {
		done <- store.ChangeMenu(context.Background(), "TIG")
	}()

	// The MIG query supersedes the still-blocked TIG one.
	require.Eventually(t, func() bool {
		return store.Snapshot().CurrentMenu == "TIG"
	}, time.Second, time.Millisecond)
	require.NoError(t, store.ChangeMenu(context.Background(), "MIG"))

	close(block)
	require.NoError(t, <-done)

	// The late TIG result never overwrites the newer MIG view.
	snap := store.Snapshot()
	assert.Equal(t, "MIG", snap.CurrentMenu)
	require.Len(t, snap.TreeNodes, 1)
	assert.Equal(t, "MIG01 (W9)", snap.TreeNodes[0].Name)
}

func TestLoadDashboardCounts(t *testing.T) {
	src := &fakeSource{pages: map[string]*client.Page{
		"": {Shells: []*model.AssetAdministrationShell{
			tigShell(1),
			tigShell(2),
			{ID: "urn:shell:c1", IdShort: "component"},
		}},
	}}
	store := newTestStore(src, fetch.Options{})

	require.NoError(t, store.LoadDashboard(context.Background()))

	counts := store.Snapshot().MenuCounts
	assert.Equal(t, 2, counts["TIG"])
	assert.Equal(t, 2, counts[catalog.MenuAll])
	assert.Equal(t, 0, counts["MAG"])
}
