package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// ReviewFilter selects the sentiment side of the appreviews endpoint.
type ReviewFilter string

const (
	ReviewsPositive ReviewFilter = "positive"
	ReviewsNegative ReviewFilter = "negative"
)

type reviewsResponse struct {
	Success int    `json:"success"`
	Cursor  string `json:"cursor"`
	Reviews []struct {
		Review string `json:"review"`
	} `json:"reviews"`
}

// Reviews pages through the appreviews endpoint and returns up to maxCount
// review texts of the requested sentiment, newest window first. Paging stops
// when the cursor repeats or a page comes back empty.
func (c *Client) Reviews(ctx context.Context, appID int64, filter ReviewFilter, dayRange, pageSize, maxCount int) ([]string, error) {
	texts := make([]string, 0, maxCount)
	cursor := "*"

	for len(texts) < maxCount {
		u := fmt.Sprintf(
			"%s/appreviews/%d?json=1&filter=all&day_range=%d&review_type=%s&num_per_page=%d&cursor=%s",
			c.storeBase, appID, dayRange, filter, pageSize, url.QueryEscape(cursor),
		)
		body, err := c.fetch(ctx, u, false)
		if err != nil {
			return nil, err
		}

		var page reviewsResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decode reviews page: %w", err)
		}
		if page.Success != 1 || len(page.Reviews) == 0 {
			break
		}
		for _, r := range page.Reviews {
			if len(texts) >= maxCount {
				break
			}
			texts = append(texts, r.Review)
		}
		if page.Cursor == "" || page.Cursor == cursor {
			break
		}
		cursor = page.Cursor
	}
	return texts, nil
}
