package menu

import (
	"strings"

	"aurevo-menu/models"
)

// Search returns the items whose name, description or category contains query,
// ignoring case, in catalog order. A blank query matches nothing.
func Search(query string, doc models.MenuDocument) []models.MenuItem {
	results := []models.MenuItem{}
	if strings.TrimSpace(query) == "" {
		return results
	}

	needle := strings.ToLower(query)
	for _, item := range doc.Items {
		if Matches(item, needle) {
			results = append(results, item)
		}
	}
	return results
}

// Matches reports whether a lower-cased needle occurs in any searchable field of item.
func Matches(item models.MenuItem, needle string) bool {
	return strings.Contains(strings.ToLower(item.Name), needle) ||
		strings.Contains(strings.ToLower(item.Description), needle) ||
		strings.Contains(strings.ToLower(item.Category), needle)
}

// Featured returns the items flagged as featured, in catalog order.
func Featured(doc models.MenuDocument) []models.MenuItem {
	var out []models.MenuItem
	for _, item := range doc.Items {
		if item.Featured() {
			out = append(out, item)
		}
	}
	return out
}

// Section is a category heading with the items filed under it.
type Section struct {
	Name  string
	Items []models.MenuItem
}

// Sections groups items by category. Declared categories come first in
// document order; categories only seen on items follow in order of appearance.
func Sections(doc models.MenuDocument) []Section {
	index := map[string]int{}
	var sections []Section

	add := func(name string) int {
		if i, ok := index[name]; ok {
			return i
		}
		index[name] = len(sections)
		sections = append(sections, Section{Name: name})
		return index[name]
	}

	for _, c := range doc.Categories {
		add(c.Name)
	}
	for _, item := range doc.Items {
		i := add(item.Category)
		sections[i].Items = append(sections[i].Items, item)
	}

	out := sections[:0]
	for _, s := range sections {
		if len(s.Items) > 0 {
			out = append(out, s)
		}
	}
	return out
}
