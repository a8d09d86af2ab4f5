// Package dictionary looks up English word definitions from a
// dictionaryapi.dev compatible service.
package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultEndpoint is the base URL the looked up word is appended to.
const DefaultEndpoint = "https://api.dictionaryapi.dev/api/v2/entries/en/"

var (
	// ErrNotFound is returned when the service has no usable definition.
	ErrNotFound = errors.New("no definition found")
	// ErrNetwork is returned when the service could not be reached.
	ErrNetwork = errors.New("dictionary lookup failed")
)

// Definition is the word as the service spells it and its meanings in
// response order.
type Definition struct {
	Word     string
	Meanings []string
}

// Client performs lookups.
type Client struct {
	endpoint string
	http     *http.Client
}

// New returns a client for endpoint with a request timeout.
func New(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

// Lookup fetches the definition of word.
func (c *Client) Lookup(ctx context.Context, word string) (Definition, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return Definition{}, ErrNotFound
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+url.PathEscape(word), nil)
	if err != nil {
		return Definition{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "booklet")

	resp, err := c.http.Do(req)
	if err != nil {
		return Definition{}, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Debug().Err(err).Msg("dictionary: close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		log.Debug().Str("word", word).Int("status", resp.StatusCode).Msg("dictionary: no entry")
		return Definition{}, ErrNotFound
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Definition{}, fmt.Errorf("%w: read body: %w", ErrNetwork, err)
	}

	return Parse(body)
}

type entry struct {
	Word     string `json:"word"`
	Meanings []struct {
		Definitions []struct {
			Definition string `json:"definition"`
		} `json:"definitions"`
	} `json:"meanings"`
}

// Parse decodes a service response. Only the first entry is used; any
// other shape yields ErrNotFound.
func Parse(body []byte) (Definition, error) {
	var entries []entry
	if err := json.Unmarshal(body, &entries); err != nil {
		log.Debug().Err(err).Msg("dictionary: unexpected response shape")
		return Definition{}, ErrNotFound
	}
	if len(entries) == 0 || entries[0].Word == "" {
		return Definition{}, ErrNotFound
	}

	first := entries[0]
	def := Definition{Word: first.Word}
	for _, m := range first.Meanings {
		for _, d := range m.Definitions {
			if text := strings.TrimSpace(d.Definition); text != "" {
				def.Meanings = append(def.Meanings, text)
			}
		}
	}
	if len(def.Meanings) == 0 {
		return Definition{}, ErrNotFound
	}
	return def, nil
}
