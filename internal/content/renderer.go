package content

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"langpedia/internal/catalog"
	"langpedia/internal/domain"
)

// Renderer turns catalog text into sanitized HTML article sections.
// It is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	strict *bluemonday.Policy
}

func NewRenderer() *Renderer {
	return &Renderer{
		md:     goldmark.New(),
		policy: bluemonday.UGCPolicy(),
		strict: bluemonday.StrictPolicy(),
	}
}

// Markdown renders src and strips anything the UGC policy does not allow.
func (r *Renderer) Markdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return strings.TrimSpace(r.policy.Sanitize(buf.String())), nil
}

// Article builds the detail page for item. Empty fields produce empty sections so the
// table of contents stays stable across languages.
func (r *Renderer) Article(item domain.CatalogItem, favorite bool) (domain.Article, error) {
	blocks := []struct{ title, body string }{
		{"What is " + item.Name + "?", item.Summary},
		{"History", item.History},
		{"Key features", bulletList(catalog.SplitTags(item.Traits))},
		{"What benefits does it offer?", item.Benefits},
		{"How is it used?", item.HowToUse},
		{"Where is it used?", "**Applications:** " + item.Usage},
		{"What kind of language is it?", "**Type:** " + item.Type},
		{"Fun fact", item.FunFact},
	}
	article := domain.Article{
		ID:       item.ID,
		Name:     item.Name,
		Logo:     catalog.LogoURL(item, 80, "Logo"),
		Favorite: favorite,
		Code:     item.Code,
		Sections: make([]domain.ArticleSection, 0, len(blocks)+1),
	}
	for i, b := range blocks {
		body, err := r.Markdown(b.body)
		if err != nil {
			return domain.Article{}, fmt.Errorf("section %q of %s: %w", b.title, item.ID, err)
		}
		article.Sections = append(article.Sections, domain.ArticleSection{
			ID:    fmt.Sprintf("section-%d", i),
			Title: b.title,
			Body:  body,
		})
	}
	// code is shown verbatim, escaping is left to the presentation layer
	article.Sections = append(article.Sections, domain.ArticleSection{
		ID:    fmt.Sprintf("section-%d", len(blocks)),
		Title: "Simple code example",
	})
	return article, nil
}

// Teaser returns the summary as plain text, cut to limit runes.
func (r *Renderer) Teaser(item domain.CatalogItem, limit int) string {
	var buf bytes.Buffer
	plain := item.Summary
	if err := r.md.Convert([]byte(item.Summary), &buf); err == nil {
		plain = strings.TrimSpace(html.UnescapeString(r.strict.Sanitize(buf.String())))
	}
	runes := []rune(plain)
	if len(runes) <= limit {
		return plain
	}
	return string(runes[:limit]) + "..."
}

func bulletList(items []string) string {
	var b strings.Builder
	for _, it := range items {
		b.WriteString("- ")
		b.WriteString(it)
		b.WriteString("\n")
	}
	return b.String()
}
