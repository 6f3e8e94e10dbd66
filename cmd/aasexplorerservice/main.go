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

package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/eclipse-basyx/basyx-aas-explorer/internal/common"
	"github.com/eclipse-basyx/basyx-aas-explorer/internal/explorer/api"
	"github.com/eclipse-basyx/basyx-aas-explorer/internal/explorer/catalog"
	"github.com/eclipse-basyx/basyx-aas-explorer/internal/explorer/client"
	"github.com/eclipse-basyx/basyx-aas-explorer/internal/explorer/fetch"
	"github.com/eclipse-basyx/basyx-aas-explorer/internal/explorer/state"
)

//go:embed openapi.yaml
var specFS embed.FS

func runServer(ctx context.Context, configPath string) error {
	common.PrintSplash()
	log.Default().Println("Loading AAS Explorer Service...")
	log.Default().Println("Config Path:", configPath)

	config, err := common.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
		return err
	}
	common.PrintConfiguration(config)

	cat, err := catalog.Load(config.Explorer.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load menu catalog: %v", err)
		return err
	}

	r := chi.NewRouter()
	common.AddCors(r, config)
	common.AddHealthEndpoint(r, config)

	upstream := client.New(client.Config{
		BaseURL:     config.Upstream.BaseURL,
		Timeout:     time.Duration(config.Upstream.TimeoutSeconds) * time.Second,
		BearerToken: config.Upstream.BearerToken,
	})
	controller := fetch.NewController(upstream, fetch.Options{
		ListPageSize:     config.Upstream.ListPageSize,
		SearchPageSize:   config.Upstream.SearchPageSize,
		DisplayPageSize:  config.Explorer.DisplayPageSize,
		MaxPages:         config.Upstream.MaxPages,
		LoadMoreInterval: time.Duration(config.Explorer.LoadMoreIntervalMillis) * time.Millisecond,
	})
	store := state.NewStore(cat, controller, state.Options{
		PreferredLanguage: config.Explorer.PreferredLanguage,
		InitialMenu:       config.Explorer.InitialMenu,
		AssetTypeID:       config.Upstream.AssetTypeID,
	})

	base := common.NormalizeBasePath(config.Server.ContextPath)
	apiCtrl := api.NewExplorerAPIController(store, cat)
	for _, rt := range apiCtrl.Routes() {
		r.Method(rt.Method, base+rt.Pattern, rt.HandlerFunc)
	}

	if err := common.AddSwaggerUIFromFS(r, specFS, "openapi.yaml",
		"BaSyx AAS Explorer", base+"/swagger-ui", base+"/swagger-ui/openapi.yaml", config); err != nil {
		log.Printf("❌ Failed to mount Swagger UI: %v", err)
	}

	// Warm up the dashboard counts in the background; the first snapshot
	// request should not wait on a full catalog scan.
	go func() {
		if err := store.LoadDashboard(ctx); err != nil {
			log.Printf("Dashboard warm-up failed: %v", err)
		}
	}()

	addr := fmt.Sprintf("0.0.0.0:%d", config.Server.Port)
	log.Printf("▶️  AAS Explorer listening on %s\n", addr)
	go func() {
		if err := http.ListenAndServe(addr, r); err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	configPath := ""
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()
	if err := runServer(ctx, configPath); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
