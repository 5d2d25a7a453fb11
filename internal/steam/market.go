package steam

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// PriceOverview is the market price lookup response. LowestPrice is
// free-form localized price text and may be absent.
type PriceOverview struct {
	Success     bool   `json:"success"`
	LowestPrice string `json:"lowest_price"`
	MedianPrice string `json:"median_price"`
	Volume      string `json:"volume"`
}

// GetPriceOverview queries the market price overview for one item by its
// market hash name.
func (c *Client) GetPriceOverview(ctx context.Context, marketHashName string) (*PriceOverview, error) {
	query := url.Values{
		"appid":            {strconv.Itoa(c.appID)},
		"market_hash_name": {marketHashName},
		"currency":         {strconv.Itoa(c.currency)},
	}

	var overview PriceOverview
	if err := c.get(ctx, "/market/priceoverview/", query, &overview); err != nil {
		return nil, fmt.Errorf("fetch price overview: %w", err)
	}

	return &overview, nil
}
