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

// Package client is the transport adapter of the explorer. It speaks the
// upstream AAS catalog's HTTP dialects and normalizes every response into
// the internal Page shape at this boundary, so nothing above it has to know
// about envelope variants.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/eclipse-basyx/basyx-aas-explorer/internal/common"
	"github.com/eclipse-basyx/basyx-aas-explorer/internal/common/model"
)

// Config carries the upstream connection settings.
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	BearerToken string
}

// Client calls the upstream AAS catalog.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	bearerToken string
}

// New builds a catalog client. A zero timeout falls back to two minutes;
// full-catalog scans for dashboard counts are slow on large fleets.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     cfg.BaseURL,
		bearerToken: cfg.BearerToken,
	}
}

// ListAll fetches one page of the complete shell listing.
func (c *Client) ListAll(ctx context.Context, page int) (*Page, error) {
	query := url.Values{"page": {strconv.Itoa(page)}}
	raw, err := c.get(ctx, "/shells", query)
	if err != nil {
		return nil, err
	}
	return decodePage(raw)
}

// ListByCategory fetches one page of shells matching a category keyword.
func (c *Client) ListByCategory(ctx context.Context, keyword string, page int) (*Page, error) {
	query := url.Values{
		"keyword": {keyword},
		"page":    {strconv.Itoa(page)},
	}
	raw, err := c.get(ctx, "/shells/keyword", query)
	if err != nil {
		return nil, err
	}
	return decodePage(raw)
}

// SearchByField runs the single-page field search. The response may carry
// submodel bodies next to the shells; both end up in the returned Page.
func (c *Client) SearchByField(ctx context.Context, field, value string) (*Page, error) {
	query := url.Values{
		"filterType":  {field},
		"filterValue": {value},
	}
	raw, err := c.get(ctx, "/search", query)
	if err != nil {
		return nil, err
	}
	return decodePage(raw)
}

// SearchByKeywordAndAsset fetches one page of the keyword search scoped to
// an asset type.
func (c *Client) SearchByKeywordAndAsset(ctx context.Context, keyword, assetTypeID string, page int) (*Page, error) {
	query := url.Values{
		"keyword": {keyword},
		"page":    {strconv.Itoa(page)},
	}
	if assetTypeID != "" {
		query.Set("assetTypeId", assetTypeID)
	}
	raw, err := c.get(ctx, "/shells/search", query)
	if err != nil {
		return nil, err
	}
	return decodePage(raw)
}

// FetchSubmodel retrieves one submodel body. The identifier is a URI and is
// base64url-encoded into the request path.
func (c *Client) FetchSubmodel(ctx context.Context, submodelID string) (*model.Submodel, error) {
	raw, err := c.get(ctx, "/submodel/"+common.EncodeString(submodelID), nil)
	if err != nil {
		return nil, err
	}
	return decodeSubmodel(raw)
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, common.NewErrFetch(fmt.Sprintf("build request %s: %v", path, err))
	}
	req.Header.Set("Accept", "application/json")
	if c.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, common.NewErrFetch(fmt.Sprintf("GET %s: %v", path, err))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, common.NewErrFetch(fmt.Sprintf("GET %s: upstream returned %d", path, resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, common.NewErrFetch(fmt.Sprintf("read %s response: %v", path, err))
	}
	return body, nil
}
