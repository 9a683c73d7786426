package snippets

import (
	"sort"
	"strings"

	"github.com/snipstash/snipstash/internal/api"
)

// sortMatches orders search results in place. newest/oldest sort by
// UpdatedAt descending/ascending, alpha-asc case-insensitively by title;
// ties break by id ascending. alpha-desc is the exact reverse of
// alpha-asc over the same set, so there equal titles appear in
// id-descending order.
func sortMatches(items []api.Snippet, order api.SortOrder) {
	switch order {
	case api.SortAlphaAsc, api.SortAlphaDesc:
		sort.SliceStable(items, func(i, j int) bool {
			ti, tj := strings.ToLower(items[i].Title), strings.ToLower(items[j].Title)
			if ti != tj {
				return ti < tj
			}
			return items[i].ID < items[j].ID
		})
		if order == api.SortAlphaDesc {
			reverse(items)
		}
	case api.SortOldest:
		sort.SliceStable(items, func(i, j int) bool {
			if !items[i].UpdatedAt.Equal(items[j].UpdatedAt) {
				return items[i].UpdatedAt.Before(items[j].UpdatedAt)
			}
			return items[i].ID < items[j].ID
		})
	default: // SortNewest
		sort.SliceStable(items, func(i, j int) bool {
			if !items[i].UpdatedAt.Equal(items[j].UpdatedAt) {
				return items[i].UpdatedAt.After(items[j].UpdatedAt)
			}
			return items[i].ID < items[j].ID
		})
	}
}

func reverse(items []api.Snippet) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}
