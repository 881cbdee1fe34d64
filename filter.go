package inkpress

import "sort"

// Published returns the non-draft items in their original order.
func Published(items []ContentItem) []ContentItem {
	out := make([]ContentItem, 0, len(items))
	for _, it := range items {
		if !it.Draft {
			out = append(out, it)
		}
	}
	return out
}

// FilterByCategory keeps the items whose category equals label exactly,
// preserving order. An empty label returns items unchanged.
func FilterByCategory(items []ContentItem, label string) []ContentItem {
	if label == "" {
		return items
	}
	filtered := []ContentItem{}
	for _, it := range items {
		if it.Category == label {
			filtered = append(filtered, it)
		}
	}
	return filtered
}

// RelatedPosts returns the published posts sharing target's related key,
// newest first. A target without a key has no related posts.
func RelatedPosts(target ContentItem, items []ContentItem) []ContentItem {
	if target.Related == "" {
		return nil
	}
	var related []ContentItem
	for _, it := range items {
		if it.Draft || it.ID == target.ID {
			continue
		}
		if it.Related == target.Related {
			related = append(related, it)
		}
	}
	sortNewestFirst(related)
	return related
}

// Categories returns the sorted, distinct categories of the published items.
func Categories(items []ContentItem) []string {
	set := make(map[string]struct{})
	for _, it := range items {
		if it.Draft || it.Category == "" {
			continue
		}
		set[it.Category] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
