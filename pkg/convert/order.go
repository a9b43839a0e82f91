package convert

import (
	"cmp"
	"slices"
	"strings"

	"github.com/blackcoderx/postman2md/pkg/collection"
)

// Group is a run of items sharing a resource name.
type Group struct {
	Name  string
	Items []collection.Item
}

// SortItems returns the items ordered by name, then method, using byte-wise
// comparison. The input slice is left untouched.
func SortItems(items []collection.Item) []collection.Item {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b collection.Item) int {
		return cmp.Or(
			strings.Compare(a.Name, b.Name),
			strings.Compare(a.Request.Method, b.Request.Method),
		)
	})
	return sorted
}

// GroupByName splits items into runs of consecutive equal names. It expects
// items already ordered by SortItems; equal names that are not adjacent end up
// in separate groups.
func GroupByName(items []collection.Item) []Group {
	var groups []Group
	for _, item := range items {
		if n := len(groups); n > 0 && groups[n-1].Name == item.Name {
			groups[n-1].Items = append(groups[n-1].Items, item)
			continue
		}
		groups = append(groups, Group{Name: item.Name, Items: []collection.Item{item}})
	}
	return groups
}
