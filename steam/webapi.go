package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

type playerSummariesResponse struct {
	Response struct {
		Players []struct {
			CommunityVisibilityState int `json:"communityvisibilitystate"`
		} `json:"players"`
	} `json:"response"`
}

// ProfileVisible reports whether the player's community profile is public.
// An unknown steam id counts as not visible.
func (c *Client) ProfileVisible(ctx context.Context, steamID string) (bool, error) {
	u := fmt.Sprintf("%s/ISteamUser/GetPlayerSummaries/v2/?key=%s&steamids=%s", c.apiBase, c.apiKey, steamID)
	body, err := c.fetch(ctx, u, false)
	if err != nil {
		return false, err
	}

	var summaries playerSummariesResponse
	if err := json.Unmarshal(body, &summaries); err != nil {
		return false, fmt.Errorf("decode player summaries: %w", err)
	}
	if len(summaries.Response.Players) == 0 {
		return false, nil
	}
	return summaries.Response.Players[0].CommunityVisibilityState == 3, nil
}

type ownedGamesResponse struct {
	Response struct {
		Games []struct {
			AppID           int64 `json:"appid"`
			PlaytimeForever int   `json:"playtime_forever"`
		} `json:"games"`
	} `json:"response"`
}

// TopPlaytimeAppIDs returns the player's most-played app ids, highest
// lifetime playtime first, up to limit.
func (c *Client) TopPlaytimeAppIDs(ctx context.Context, steamID string, limit int) ([]int64, error) {
	u := fmt.Sprintf("%s/IPlayerService/GetOwnedGames/v1/?key=%s&steamid=%s&include_appinfo=0", c.apiBase, c.apiKey, steamID)
	body, err := c.fetch(ctx, u, false)
	if err != nil {
		return nil, err
	}

	var owned ownedGamesResponse
	if err := json.Unmarshal(body, &owned); err != nil {
		return nil, fmt.Errorf("decode owned games: %w", err)
	}

	games := owned.Response.Games
	sort.SliceStable(games, func(i, j int) bool {
		return games[i].PlaytimeForever > games[j].PlaytimeForever
	})

	ids := make([]int64, 0, limit)
	for _, g := range games {
		if len(ids) >= limit {
			break
		}
		ids = append(ids, g.AppID)
	}
	return ids, nil
}

// OwnedAppIDs returns every app id in the player's library, used as the
// don't-recommend-what-they-own exclusion set.
func (c *Client) OwnedAppIDs(ctx context.Context, steamID string) ([]int64, error) {
	u := fmt.Sprintf("%s/IPlayerService/GetOwnedGames/v1/?key=%s&steamid=%s&include_appinfo=0", c.apiBase, c.apiKey, steamID)
	body, err := c.fetch(ctx, u, false)
	if err != nil {
		return nil, err
	}

	var owned ownedGamesResponse
	if err := json.Unmarshal(body, &owned); err != nil {
		return nil, fmt.Errorf("decode owned games: %w", err)
	}

	ids := make([]int64, 0, len(owned.Response.Games))
	for _, g := range owned.Response.Games {
		ids = append(ids, g.AppID)
	}
	return ids, nil
}

// RecommendedAppIDs scrapes the player's community review page and returns
// the app ids of the latest positively reviewed games, up to limit.
func (c *Client) RecommendedAppIDs(ctx context.Context, steamID string, limit int) ([]int64, error) {
	u := fmt.Sprintf("%s/profiles/%s/recommended/", c.communityBase, steamID)
	body, err := c.fetch(ctx, u, false)
	if err != nil {
		return nil, err
	}
	return parseRecommendedReviews(body, limit)
}

func parseRecommendedReviews(body []byte, limit int) ([]int64, error) {
	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parse review page: %w", err)
	}

	boxes := findNodes(doc, func(n *html.Node) bool {
		return n.Data == "div" && hasClass(n, "review_box")
	})

	ids := make([]int64, 0, limit)
	for _, box := range boxes {
		if len(ids) >= limit {
			break
		}
		header := findNode(box, func(n *html.Node) bool {
			return n.Data == "div" && hasClass(n, "vote_header")
		})
		if header == nil {
			continue
		}
		title := findNode(header, func(n *html.Node) bool {
			return n.Data == "div" && hasClass(n, "title")
		})
		if title == nil {
			continue
		}
		link := findNode(title, func(n *html.Node) bool {
			return n.Data == "a"
		})
		if link == nil || !isPositiveVote(textContent(link)) {
			continue
		}
		if appID, ok := appIDFromReviewHref(attrVal(link, "href")); ok {
			ids = append(ids, appID)
		}
	}
	return ids, nil
}

// isPositiveVote reports whether a review title reads as a positive vote.
// "Not Recommended" also contains the positive word, so it is checked first.
func isPositiveVote(title string) bool {
	return strings.Contains(title, "Recommended") && !strings.Contains(title, "Not Recommended")
}

// appIDFromReviewHref pulls the app id out of a review link of the form
// .../recommended/{appid}/.
func appIDFromReviewHref(href string) (int64, bool) {
	idx := strings.Index(href, "/recommended/")
	if idx < 0 {
		return 0, false
	}
	rest := strings.Trim(href[idx+len("/recommended/"):], "/")
	if cut := strings.IndexByte(rest, '/'); cut >= 0 {
		rest = rest[:cut]
	}
	appID, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return appID, true
}
