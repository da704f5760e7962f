package llm

import (
	"context"
	"fmt"
	"strings"

	"game_mate/models"
)

const extractSystemPrompt = `You map a game request onto Steam tag ids.
Below is the tag catalog, one "name: id" pair per line.

%s

Pick at most 3 ids whose names directly match what the user asked for.
Answer with a JSON array of integers only, for example [19, 122]. If nothing
matches, answer [].`

const inferSystemPrompt = `You map a game request onto Steam tag ids.
Below is the allowed tag vocabulary, one "name: id" pair per line.

%s

Pick at most %d ids for tags related to the request's mood, theme, or play
style. Do not pick broad genre tags such as Action, Adventure, RPG, Strategy,
Simulation, Casual, or Indie. Answer with a JSON array of integers only. If
nothing fits, answer [].`

// ExtractTags asks for tags named directly by the query, at most three,
// restricted to the supplied catalog. Ids outside the catalog are dropped.
func (c *Client) ExtractTags(ctx context.Context, query string, catalog []models.TagOption) ([]int64, error) {
	content, err := c.complete(ctx, fmt.Sprintf(extractSystemPrompt, formatTagOptions(catalog)), query)
	if err != nil {
		return nil, fmt.Errorf("extract tags: %w", err)
	}

	ids, err := extractIntList(content)
	if err != nil {
		return nil, fmt.Errorf("extract tags: %w", err)
	}
	return filterKnownIDs(ids, catalog, 3), nil
}

// InferTags asks for up to maxTags non-genre tags related to the query,
// restricted to the supplied vocabulary. Ids outside it are dropped.
func (c *Client) InferTags(ctx context.Context, query string, vocabulary []models.TagOption, maxTags int) ([]int64, error) {
	content, err := c.complete(ctx, fmt.Sprintf(inferSystemPrompt, formatTagOptions(vocabulary), maxTags), query)
	if err != nil {
		return nil, fmt.Errorf("infer tags: %w", err)
	}

	ids, err := extractIntList(content)
	if err != nil {
		return nil, fmt.Errorf("infer tags: %w", err)
	}
	return filterKnownIDs(ids, vocabulary, maxTags), nil
}

func formatTagOptions(options []models.TagOption) string {
	var sb strings.Builder
	for _, opt := range options {
		fmt.Fprintf(&sb, "%s: %d\n", opt.NameKO, opt.SteamTagID)
	}
	return sb.String()
}

// filterKnownIDs keeps ids present in the vocabulary, preserving reply
// order, deduplicated, capped at limit.
func filterKnownIDs(ids []int64, vocabulary []models.TagOption, limit int) []int64 {
	known := make(map[int64]bool, len(vocabulary))
	for _, opt := range vocabulary {
		known[opt.SteamTagID] = true
	}

	kept := make([]int64, 0, limit)
	seen := make(map[int64]bool, limit)
	for _, id := range ids {
		if len(kept) >= limit {
			break
		}
		if !known[id] || seen[id] {
			continue
		}
		seen[id] = true
		kept = append(kept, id)
	}
	return kept
}
