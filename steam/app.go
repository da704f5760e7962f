package steam

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"game_mate/models"
)

// PopularTags returns the text labels of the app page's popular-tag panel.
// A missing panel yields an empty slice, not an error; results are cached
// per app for the configured TTL.
func (c *Client) PopularTags(ctx context.Context, appID int64) ([]string, error) {
	key := fmt.Sprintf("popular_tags:%d", appID)
	return c.tagCache.GetSet(ctx, key, func(ctx context.Context) ([]string, error) {
		body, err := c.fetch(ctx, c.appURL(appID), true)
		if err != nil {
			return nil, err
		}
		return parsePopularTags(body)
	}, c.tagTTL)
}

// Detail scrapes the app page for the description blocks and the header
// fields of one enrichment entry. Missing blocks come back empty; the
// caller substitutes its fixed fallback text.
func (c *Client) Detail(ctx context.Context, appID int64) (models.GameDetail, models.GameData, error) {
	body, err := c.fetch(ctx, c.appURL(appID), true)
	if err != nil {
		return models.GameDetail{}, models.GameData{}, err
	}
	detail, data := parseAppPage(body, appID)
	return detail, data, nil
}

func (c *Client) appURL(appID int64) string {
	return fmt.Sprintf("%s/app/%d/", c.storeBase, appID)
}

func parsePopularTags(body []byte) ([]string, error) {
	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parse app page: %w", err)
	}

	panel := findNode(doc, func(n *html.Node) bool {
		return n.Data == "div" && hasClass(n, "glance_tags") && hasClass(n, "popular_tags")
	})
	if panel == nil {
		return nil, nil
	}

	anchors := findNodes(panel, func(n *html.Node) bool {
		return n.Data == "a" && hasClass(n, "app_tag")
	})
	labels := make([]string, 0, len(anchors))
	for _, a := range anchors {
		if label := textContent(a); label != "" {
			labels = append(labels, label)
		}
	}
	return labels, nil
}

func parseAppPage(body []byte, appID int64) (models.GameDetail, models.GameData) {
	var detail models.GameDetail
	data := models.GameData{SteamAppID: appID, Title: "Unknown Title"}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return detail, data
	}

	if n := findNode(doc, func(n *html.Node) bool {
		return n.Data == "div" && hasClass(n, "game_description_snippet")
	}); n != nil {
		detail.ShortInform = textContent(n)
	}
	if n := findNode(doc, func(n *html.Node) bool {
		return n.Data == "div" && hasID(n, "game_area_description")
	}); n != nil {
		detail.LongInform = textContent(n)
	}
	if n := findNode(doc, func(n *html.Node) bool {
		return n.Data == "div" && hasID(n, "appHubAppName")
	}); n != nil {
		if title := textContent(n); title != "" {
			data.Title = title
		}
	}
	if n := findNode(doc, func(n *html.Node) bool {
		return n.Data == "img" && hasClass(n, "game_header_image_full")
	}); n != nil {
		data.Image = attrVal(n, "src")
	}

	return detail, data
}
