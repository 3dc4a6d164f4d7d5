package catalog

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-enry/go-enry/v2"
	"langpedia/internal/domain"
)

const fallbackColor = "#6c757d"

// enry reports this for languages it does not know.
const enryUnknownColor = "#cccccc"

// resolveColor keeps an explicit colour and otherwise borrows the linguist colour for the
// language name.
func resolveColor(item domain.CatalogItem) string {
	if c := strings.TrimSpace(item.Color); c != "" {
		return c
	}
	if c := enry.GetColor(item.Name); c != "" && !strings.EqualFold(c, enryUnknownColor) {
		return c
	}
	return fallbackColor
}

// LogoURL returns the item image or a placeholder tinted with the item colour.
func LogoURL(item domain.CatalogItem, size int, label string) string {
	if img := strings.TrimSpace(item.Image); img != "" {
		return img
	}
	color := strings.TrimPrefix(item.Color, "#")
	if len(color) > 6 {
		color = color[:6]
	}
	return fmt.Sprintf("https://placehold.co/%dx%d/%s/FFFFFF?text=%s", size, size, color, url.QueryEscape(label))
}
