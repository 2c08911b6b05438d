// Package manus is a client for the Manus workforce-scheduling REST API. It
// exposes the three operations the service consumes: the password-grant token
// exchange, the authenticated profile lookup, and the per-ISO-week schedule
// lookup. Operations never retry, back off, or cache; every failure is
// reported to the caller.
package manus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// oauthClientID is the fixed public client the upstream token endpoint expects
// for employee logins.
const oauthClientID = "employee"

// Client performs requests against one Manus deployment.
type Client struct {
	baseURL    string
	httpClient *http.Client
	oauth      *oauth2.Config
}

// NewClient builds a client for the deployment rooted at baseURL, e.g.
// "https://server.manus.plus/intergamma". A nil httpClient selects a default
// with a 30 second timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	base := strings.TrimRight(baseURL, "/")
	return &Client{
		baseURL:    base,
		httpClient: httpClient,
		oauth: &oauth2.Config{
			ClientID: oauthClientID,
			Endpoint: oauth2.Endpoint{
				TokenURL:  base + "/app/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
	}
}

// Authenticate exchanges a username/secret pair for a bearer token using the
// OAuth2 password grant.
func (c *Client) Authenticate(ctx context.Context, username, secret string) (Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := c.oauth.PasswordCredentialsToken(ctx, username, secret)
	if err != nil {
		return Token{}, fmt.Errorf("token exchange for %q: %w", username, err)
	}

	token := Token{AccessToken: tok.AccessToken, TokenType: tok.TokenType}
	if v, ok := tok.Extra("expires_in").(float64); ok {
		token.ExpiresIn = int(v)
	}
	return token, nil
}

// FetchProfile looks up the identity behind the token.
func (c *Client) FetchProfile(ctx context.Context, token Token) (Profile, error) {
	var profile Profile
	if err := c.getJSON(ctx, token, c.baseURL+"/api/user/me", &profile); err != nil {
		return Profile{}, fmt.Errorf("fetch profile: %w", err)
	}
	return profile, nil
}

// FetchSchedule retrieves one ISO week's schedule for one employee at one
// work site.
func (c *Client) FetchSchedule(ctx context.Context, nodeID, employeeID string, year, week int, token Token) (ScheduleWeek, error) {
	url := fmt.Sprintf("%s/api/node/%s/employee/%s/schedule/%d/%d/fromData",
		c.baseURL, nodeID, employeeID, year, week)

	var schedule ScheduleWeek
	if err := c.getJSON(ctx, token, url, &schedule); err != nil {
		return ScheduleWeek{}, fmt.Errorf("fetch schedule %d/%d: %w", year, week, err)
	}
	return schedule, nil
}

// getJSON performs a bearer-authenticated GET and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, token Token, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.bearerClient(ctx, token).Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// bearerClient wraps the configured transport so every request carries the
// token as an Authorization header.
func (c *Client) bearerClient(ctx context.Context, token Token) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	source := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
	})
	return oauth2.NewClient(ctx, source)
}
