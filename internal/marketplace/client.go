// Package marketplace queries GitHub Marketplace purchase state for billing.
package marketplace

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Plan describes the marketplace plan an account is subscribed to.
type Plan struct {
	Name      string `json:"name"`
	IsPaid    bool   `json:"is_paid"`
	OnTrial   bool   `json:"on_trial"`
	UnitCount int    `json:"unit_count"`
}

type accountPurchase struct {
	MarketplacePurchase struct {
		OnFreeTrial bool `json:"on_free_trial"`
		UnitCount   int  `json:"unit_count"`
		Plan        struct {
			Name         string `json:"name"`
			MonthlyPrice int    `json:"monthly_price_in_cents"`
		} `json:"plan"`
	} `json:"marketplace_purchase"`
}

// Client queries the GitHub API for marketplace purchases.
type Client struct {
	http *resty.Client
}

// New returns a marketplace client. Token needs the marketplace scope of the
// app's owner.
func New(apiBaseURL, token string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(apiBaseURL).
			SetTimeout(10 * time.Second).
			SetAuthToken(token).
			SetHeader("Accept", "application/vnd.github+json").
			SetHeader("User-Agent", "resumin-api"),
	}
}

// AccountPlan returns the plan the given GitHub account is subscribed to, or
// nil when the account has no marketplace purchase.
func (c *Client) AccountPlan(ctx context.Context, githubLogin string) (*Plan, error) {
	var got accountPurchase
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&got).
		Get(fmt.Sprintf("/marketplace_listing/accounts/%s", githubLogin))
	if err != nil {
		return nil, fmt.Errorf("marketplace lookup failed: %w", err)
	}
	if resp.StatusCode() == 404 {
		return nil, nil
	}
	if resp.IsError() {
		return nil, fmt.Errorf("marketplace lookup failed: %s", resp.Status())
	}

	purchase := got.MarketplacePurchase
	return &Plan{
		Name:      purchase.Plan.Name,
		IsPaid:    purchase.Plan.MonthlyPrice > 0,
		OnTrial:   purchase.OnFreeTrial,
		UnitCount: purchase.UnitCount,
	}, nil
}
