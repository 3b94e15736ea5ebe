package catalog

import (
	"strings"

	"github.com/02priyeshraj/Tomato_Restaurant_Website/models"
)

// Filter narrows the menu. Every set field must hold for an item to match.
type Filter struct {
	Search       string
	Category     string
	Dietary      []string
	FeaturedOnly bool
}

func (f Filter) Match(item models.MenuItem) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(item.Name), q) &&
			!strings.Contains(strings.ToLower(item.Description), q) {
			return false
		}
	}

	if c := strings.TrimSpace(f.Category); c != "" && !strings.EqualFold(c, "all") {
		if !strings.EqualFold(item.Category, c) {
			return false
		}
	}

	for _, tag := range f.Dietary {
		if !hasTag(item.Dietary, tag) {
			return false
		}
	}

	if f.FeaturedOnly && !item.Featured {
		return false
	}
	return true
}

// Apply keeps input order.
func Apply(items []models.MenuItem, f Filter) []models.MenuItem {
	out := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if f.Match(item) {
			out = append(out, item)
		}
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func Categories(items []models.MenuItem) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, item := range items {
		key := strings.ToLower(item.Category)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item.Category)
	}
	return out
}

// ParseTags splits repeated and comma separated dietary query values.
func ParseTags(values []string) []string {
	out := []string{}
	for _, v := range values {
		for _, tag := range strings.Split(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				out = append(out, tag)
			}
		}
	}
	return out
}

func hasTag(tags []string, want string) bool {
	want = strings.TrimSpace(want)
	if want == "" {
		return true
	}
	for _, t := range tags {
		if strings.EqualFold(t, want) {
			return true
		}
	}
	return false
}
