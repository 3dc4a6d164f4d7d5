package catalog

import (
	"strings"

	"langpedia/internal/domain"
)

// SplitTags splits a comma separated field, trimming blanks and dropping empty entries.
func SplitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// Eligible reports whether item carries everything quiz generation needs:
// a type, at least one usage tag and at least one trait.
func Eligible(item domain.CatalogItem) bool {
	return strings.TrimSpace(item.Type) != "" &&
		len(SplitTags(item.Usage)) > 0 &&
		len(SplitTags(item.Traits)) > 0
}

// EligibleItems filters items down to the quiz-eligible ones, keeping order.
func EligibleItems(items []domain.CatalogItem) []domain.CatalogItem {
	out := make([]domain.CatalogItem, 0, len(items))
	for _, item := range items {
		if Eligible(item) {
			out = append(out, item)
		}
	}
	return out
}
