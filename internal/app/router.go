package app

import (
	"strings"

	"langpedia/internal/catalog"
	"langpedia/internal/domain"
)

// Reserved fragments for the fixed views. Home uses the empty fragment.
const (
	FragmentAbout      = "about"
	FragmentFavorites  = "favorites"
	FragmentComparison = "compare"
)

// Route identifies one ActiveView.
type Route struct {
	View   domain.ViewKind
	ItemID string
}

var HomeRoute = Route{View: domain.ViewHome}

// Fragment is the URL fragment that addresses r. NotFound keeps no fragment of its own.
func (r Route) Fragment() string {
	switch r.View {
	case domain.ViewArticle:
		return r.ItemID
	case domain.ViewAbout:
		return FragmentAbout
	case domain.ViewFavorites:
		return FragmentFavorites
	case domain.ViewComparison:
		return FragmentComparison
	default:
		return ""
	}
}

// NormalizeFragment strips the leading '#' and surrounding blanks.
func NormalizeFragment(raw string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "#"))
}

// Router maps fragments and persisted state to routes.
type Router struct {
	catalog *catalog.Catalog
}

func NewRouter(c *catalog.Catalog) Router {
	return Router{catalog: c}
}

// Resolve picks the view to show when a client enters, first match wins: the explicitly
// requested view, a fragment naming a known item, the last visited item, Home.
func (r Router) Resolve(requested *Route, fragment, lastVisited string) Route {
	if requested != nil && requested.View != "" {
		return *requested
	}
	if id := NormalizeFragment(fragment); id != "" && r.catalog.Has(id) {
		return Route{View: domain.ViewArticle, ItemID: id}
	}
	if lastVisited != "" && r.catalog.Has(lastVisited) {
		return Route{View: domain.ViewArticle, ItemID: lastVisited}
	}
	return HomeRoute
}

// FragmentChanged resolves an external fragment change such as back/forward navigation.
// Known item ids open the article, the empty fragment goes Home, anything else is an
// in-page anchor and is ignored (ok is false).
func (r Router) FragmentChanged(fragment string) (Route, bool) {
	id := NormalizeFragment(fragment)
	if id == "" {
		return HomeRoute, true
	}
	if r.catalog.Has(id) {
		return Route{View: domain.ViewArticle, ItemID: id}, true
	}
	return Route{}, false
}

// ParseView maps a requested view name to a route. Unknown names yield nil.
func ParseView(view domain.ViewKind, itemID string) *Route {
	switch view {
	case domain.ViewHome, domain.ViewAbout, domain.ViewFavorites:
		return &Route{View: view}
	case domain.ViewArticle:
		if itemID == "" {
			return nil
		}
		return &Route{View: view, ItemID: itemID}
	default:
		return nil
	}
}
