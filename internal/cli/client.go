package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Leo-Carroll/EconBot/internal/economy"
)

// Client talks to the read-only economy API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Health(ctx context.Context) error {
	return c.jsonRequest(ctx, http.MethodGet, "/healthz", nil, nil)
}

func (c *Client) Leaderboard(ctx context.Context, limit int) ([]economy.LeaderboardRow, error) {
	var out struct {
		Leaderboard []economy.LeaderboardRow `json:"leaderboard"`
	}
	path := "/v1/leaderboard"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	err := c.jsonRequest(ctx, http.MethodGet, path, nil, &out)
	return out.Leaderboard, err
}

func (c *Client) Profile(ctx context.Context, userID string) (economy.Profile, error) {
	var out economy.Profile
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/profiles/"+url.PathEscape(userID), nil, &out)
	return out, err
}

func (c *Client) LoansGiven(ctx context.Context, userID string) ([]economy.Loan, error) {
	var out struct {
		Loans []economy.Loan `json:"loans"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/profiles/"+url.PathEscape(userID)+"/loans", nil, &out)
	return out.Loans, err
}

func (c *Client) LoansOwed(ctx context.Context, userID string) ([]economy.Loan, error) {
	var out struct {
		Debts []economy.Loan `json:"debts"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/profiles/"+url.PathEscape(userID)+"/debts", nil, &out)
	return out.Debts, err
}

func (c *Client) CatalogHouses(ctx context.Context) ([]economy.Asset, error) {
	var out struct {
		Houses []economy.Asset `json:"houses"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/catalog/houses", nil, &out)
	return out.Houses, err
}

func (c *Client) CatalogBusinesses(ctx context.Context) ([]economy.Asset, error) {
	var out struct {
		Businesses []economy.Asset `json:"businesses"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/catalog/businesses", nil, &out)
	return out.Businesses, err
}

func (c *Client) CatalogIllegal(ctx context.Context) (int64, []economy.IllegalBusiness, error) {
	var out struct {
		Minimum    int64                     `json:"minimum_balance"`
		Businesses []economy.IllegalBusiness `json:"illegal_businesses"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/catalog/illegal-businesses", nil, &out)
	return out.Minimum, out.Businesses, err
}

func (c *Client) CatalogDrugs(ctx context.Context) ([]economy.Drug, error) {
	var out struct {
		Drugs []economy.Drug `json:"drugs"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/catalog/drugs", nil, &out)
	return out.Drugs, err
}

func (c *Client) jsonRequest(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("api status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
