package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"langpedia/internal/domain"
)

func sample() []domain.CatalogItem {
	return []domain.CatalogItem{
		{ID: "python", Name: "Python", Type: "interpreted", Usage: "web, data", Traits: "readable"},
		{ID: "javascript", Name: "JavaScript", Type: "interpreted", Usage: "web", Traits: "dynamic"},
		{ID: "java", Name: "Java", Type: "compiled", Usage: "enterprise", Traits: "jvm"},
	}
}

func TestNewRejectsInvalidItems(t *testing.T) {
	tests := []struct {
		name  string
		items []domain.CatalogItem
		want  error
	}{
		{"empty id", []domain.CatalogItem{{ID: " ", Name: "X"}}, domain.ErrEmptyID},
		{"empty name", []domain.CatalogItem{{ID: "x", Name: ""}}, domain.ErrEmptyName},
		{"duplicate id", []domain.CatalogItem{{ID: "x", Name: "X"}, {ID: "x", Name: "Y"}}, domain.ErrDuplicateID},
		{"duplicate name", []domain.CatalogItem{{ID: "x", Name: "X"}, {ID: "y", Name: " X "}}, domain.ErrDuplicateName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.items)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCatalogLookups(t *testing.T) {
	c, err := New(sample())
	require.NoError(t, err)

	assert.Equal(t, 3, c.Len())
	item, ok := c.Get("java")
	require.True(t, ok)
	assert.Equal(t, "Java", item.Name)
	assert.False(t, c.Has("cobol"))

	assert.Equal(t, 0, c.Position("python"))
	assert.Equal(t, 2, c.Position("java"))
	assert.Equal(t, 3, c.Position("cobol"))

	filtered := c.Filter([]string{"java", "python", "cobol"})
	require.Len(t, filtered, 2)
	assert.Equal(t, "python", filtered[0].ID)
	assert.Equal(t, "java", filtered[1].ID)

	items := c.Items()
	items[0].Name = "changed"
	again, _ := c.Get("python")
	assert.Equal(t, "Python", again.Name, "Items must return a copy")
}

func TestSearch(t *testing.T) {
	c := MustNew(sample())

	hits := c.Search("JAVA")
	require.Len(t, hits, 2)
	assert.Equal(t, domain.SearchHit{ID: "javascript", Name: "JavaScript"}, hits[0])
	assert.Equal(t, domain.SearchHit{ID: "java", Name: "Java"}, hits[1])

	assert.Nil(t, c.Search("   "))
	assert.Empty(t, c.Search("cobol"))
	assert.Len(t, c.Search("thon"), 1)
}

func TestEligibility(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitTags(" a, ,b ,"))
	assert.Empty(t, SplitTags(" , "))

	assert.True(t, Eligible(domain.CatalogItem{Type: "t", Usage: "u", Traits: "x"}))
	assert.False(t, Eligible(domain.CatalogItem{Type: " ", Usage: "u", Traits: "x"}))
	assert.False(t, Eligible(domain.CatalogItem{Type: "t", Usage: " , ", Traits: "x"}))
	assert.False(t, Eligible(domain.CatalogItem{Type: "t", Usage: "u"}))

	items := append(sample(), domain.CatalogItem{ID: "sql", Name: "SQL", Type: "declarative", Usage: "databases"})
	eligible := EligibleItems(items)
	assert.Len(t, eligible, 3)
}

func TestColors(t *testing.T) {
	c := MustNew([]domain.CatalogItem{
		{ID: "py", Name: "Python", Color: "#123456"},
		{ID: "go", Name: "Go"},
		{ID: "made-up", Name: "Made Up Lang"},
	})

	py, _ := c.Get("py")
	assert.Equal(t, "#123456", py.Color)
	goItem, _ := c.Get("go")
	assert.Regexp(t, `^#[0-9A-Fa-f]{6}$`, goItem.Color)
	assert.NotEqual(t, fallbackColor, goItem.Color)
	unknown, _ := c.Get("made-up")
	assert.Equal(t, fallbackColor, unknown.Color)

	assert.Equal(t, "https://placehold.co/80x80/6c757d/FFFFFF?text=Logo", LogoURL(unknown, 80, "Logo"))
	assert.Equal(t, "https://placehold.co/100x100/6c757d/FFFFFF?text=Made+Up+Lang", LogoURL(unknown, 100, unknown.Name))
	unknown.Image = "https://example.com/logo.png"
	assert.Equal(t, "https://example.com/logo.png", LogoURL(unknown, 80, "Logo"))
}
