// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package credential

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/mcpenv/pkg/config"
)

// Cap on how much of an endpoint response is read for error reporting.
const maxResponseBytes = 1 << 16

// 🎫 Record is the payload posted to the endpoint on each refresh.
type Record struct {
	Token     string   `json:"token"`
	UserInfo  UserInfo `json:"userInfo"`
	Timestamp string   `json:"timestamp"`
}

// ⚙️ ClientOptions configures a Client. The zero value is usable.
type ClientOptions struct {
	Timeout    time.Duration // Zero means config.DefaultHTTPTimeout
	HTTPClient *http.Client  // Overrides Timeout when set
}

// 📮 Client posts credential records to an endpoint URL.
type Client struct {
	httpClient *http.Client
}

// 🏭 NewClient creates a client, applying defaults for unset options.
func NewClient(opts ClientOptions) *Client {
	if opts.HTTPClient != nil {
		return &Client{httpClient: opts.HTTPClient}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	return &Client{httpClient: &http.Client{Timeout: timeout}}
}

// Send posts one credential record. Success is any status in [200, 300).
func (c *Client) Send(ctx context.Context, url string, record Record) error {
	body, err := json.Marshal(record)
	if err != nil {
		return errors.Errorf("marshaling credential record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errors.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Errorf("posting credential record: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errors.Errorf("reading endpoint response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("endpoint returned status %d: %s", resp.StatusCode, string(respBody))
	}

	zerolog.Ctx(ctx).Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Msg("credential record accepted")

	return nil
}
