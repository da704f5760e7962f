package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"game_mate/models"
)

// SearchByTags queries the store's tag-filtered listing, ignoring the
// visitor's store preferences so results depend on tags alone. Up to limit
// result rows are returned, each with the small tag-id list the listing
// itself carries.
func (c *Client) SearchByTags(ctx context.Context, tagIDs []int64, limit int) ([]models.SearchEntry, error) {
	tagStrs := make([]string, len(tagIDs))
	for i, id := range tagIDs {
		tagStrs[i] = strconv.FormatInt(id, 10)
	}
	u := fmt.Sprintf("%s/search/?ignore_preferences=1&tags=%s&ndl=1", c.storeBase, strings.Join(tagStrs, ","))
	return c.searchPage(ctx, u, limit)
}

// SearchByTerm queries the store search by free-text term.
func (c *Client) SearchByTerm(ctx context.Context, term string, limit int) ([]models.SearchEntry, error) {
	u := fmt.Sprintf("%s/search/?ignore_preferences=1&term=%s&ndl=1", c.storeBase, url.QueryEscape(term))
	return c.searchPage(ctx, u, limit)
}

func (c *Client) searchPage(ctx context.Context, url string, limit int) ([]models.SearchEntry, error) {
	body, err := c.fetch(ctx, url, false)
	if err != nil {
		return nil, err
	}
	return parseSearchResults(body, limit)
}

// parseSearchResults walks the search page for the results container and
// reads the data-ds attributes off its direct anchor children. Rows without
// an app id (bundles) or without tag data are kept only as far as their app
// id allows; callers decide what to do with empty tag lists.
func parseSearchResults(body []byte, limit int) ([]models.SearchEntry, error) {
	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}

	container := findNode(doc, func(n *html.Node) bool {
		return n.Data == "div" && hasID(n, "search_resultsRows")
	})
	if container == nil {
		return nil, nil
	}

	entries := make([]models.SearchEntry, 0, limit)
	for c := container.FirstChild; c != nil && len(entries) < limit; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "a" {
			continue
		}
		appIDStr := attrVal(c, "data-ds-appid")
		if appIDStr == "" {
			continue
		}
		// Multi-app rows list ids comma separated; take the first.
		if idx := strings.IndexByte(appIDStr, ','); idx >= 0 {
			appIDStr = appIDStr[:idx]
		}
		appID, err := strconv.ParseInt(appIDStr, 10, 64)
		if err != nil {
			continue
		}

		var tagIDs []int64
		if raw := attrVal(c, "data-ds-tagids"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &tagIDs); err != nil {
				tagIDs = nil
			}
		}
		entries = append(entries, models.SearchEntry{AppID: appID, TagIDs: tagIDs})
	}
	return entries, nil
}
