package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"langpedia/internal/catalog"
	"langpedia/internal/content"
	"langpedia/internal/domain"
)

const teaserLength = 120

// State is the whole application state of one client. It is not safe for concurrent use;
// Session serializes access to it.
type State struct {
	catalog  *catalog.Catalog
	router   Router
	prefs    Preferences
	renderer *content.Renderer
	engine   *QuizEngine
	logger   *zap.Logger

	route Route
	// back is where closing the comparison view returns to.
	back      Route
	fragment  string
	favorites *Favorites
	compare   *Comparison
	theme     domain.Theme
	query     string
	game      *Game
	notice    *domain.Notice
}

// StateDeps are the collaborators a State reads from.
type StateDeps struct {
	Catalog  *catalog.Catalog
	Store    Store
	Renderer *content.Renderer
	Engine   *QuizEngine
	Logger   *zap.Logger
}

// NewState loads the persisted preferences of one client. Nothing is rendered until Enter.
func NewState(ctx context.Context, deps StateDeps) *State {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Renderer == nil {
		deps.Renderer = content.NewRenderer()
	}
	if deps.Engine == nil {
		deps.Engine = NewQuizEngine(nil)
	}
	prefs := NewPreferences(deps.Store, logger)
	rank := deps.Catalog.Position

	var favorites []string
	for _, id := range prefs.Favorites(ctx) {
		if deps.Catalog.Has(id) {
			favorites = append(favorites, id)
		}
	}

	return &State{
		catalog:   deps.Catalog,
		router:    NewRouter(deps.Catalog),
		prefs:     prefs,
		renderer:  deps.Renderer,
		engine:    deps.Engine,
		logger:    logger,
		route:     HomeRoute,
		back:      HomeRoute,
		favorites: NewFavorites(favorites, rank),
		compare:   NewComparison(rank),
		theme:     prefs.Theme(ctx),
	}
}

// Enter performs the initial resolution for a client arriving with fragment.
func (s *State) Enter(ctx context.Context, requested *Route, fragment string) {
	route := s.router.Resolve(requested, fragment, s.prefs.LastVisited(ctx))
	s.Navigate(ctx, route)
}

// Navigate renders route and keeps the fragment and the persisted last visited id in step
// with it. Unknown article ids render NotFound and leave both untouched.
func (s *State) Navigate(ctx context.Context, route Route) {
	if route.View == domain.ViewNotFound {
		route.View = domain.ViewArticle
	}
	s.leaveComparison(route)
	if route.View == domain.ViewArticle && !s.catalog.Has(route.ItemID) {
		s.logger.Debug("article not found", zap.String("item_id", route.ItemID))
		s.route = Route{View: domain.ViewNotFound, ItemID: route.ItemID}
		return
	}

	switch route.View {
	case domain.ViewArticle:
		s.prefs.SetLastVisited(ctx, route.ItemID)
	case domain.ViewHome, domain.ViewAbout, domain.ViewFavorites:
		s.prefs.ClearLastVisited(ctx)
	}
	s.route = route
	s.fragment = route.Fragment()
	s.query = ""
}

func (s *State) leaveComparison(next Route) {
	if s.route.View == domain.ViewComparison && next.View != domain.ViewComparison {
		s.compare.Clear()
	}
}

// FragmentChanged handles an external fragment change. It reports whether anything was
// re-rendered.
func (s *State) FragmentChanged(ctx context.Context, fragment string) bool {
	route, ok := s.router.FragmentChanged(fragment)
	if !ok {
		return false
	}
	s.Navigate(ctx, route)
	return true
}

// ToggleFavorite flips id in the favorites set and persists the whole set.
func (s *State) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	if !s.catalog.Has(id) {
		return false, fmt.Errorf("favorite %q: %w", id, domain.ErrItemNotFound)
	}
	added := s.favorites.Toggle(id)
	s.prefs.SaveFavorites(ctx, s.favorites.IDs())
	return added, nil
}

// ToggleCompare flips id in the comparison selection.
func (s *State) ToggleCompare(id string) (bool, error) {
	if !s.catalog.Has(id) {
		return false, fmt.Errorf("compare %q: %w", id, domain.ErrItemNotFound)
	}
	added, err := s.compare.Toggle(id)
	if err != nil {
		return false, fmt.Errorf("compare %q: %w", id, err)
	}
	return added, nil
}

// OpenComparison shows the side-by-side table. At least two languages must be selected.
func (s *State) OpenComparison() error {
	if s.compare.Len() < 2 {
		return domain.ErrComparisonTooSmall
	}
	if s.route.View != domain.ViewComparison {
		s.back = s.route
	}
	s.route = Route{View: domain.ViewComparison}
	s.fragment = FragmentComparison
	return nil
}

// CloseComparison returns to the view the comparison was opened from.
func (s *State) CloseComparison(ctx context.Context) {
	if s.route.View != domain.ViewComparison {
		return
	}
	s.Navigate(ctx, s.back)
}

func (s *State) Search(query string) {
	s.query = query
}

func (s *State) SetTheme(ctx context.Context, theme domain.Theme) {
	if theme != domain.ThemeDark {
		theme = domain.ThemeLight
	}
	s.theme = theme
	s.prefs.SetTheme(ctx, theme)
}

// StartQuiz replaces any running game with a freshly generated one.
func (s *State) StartQuiz() *Game {
	s.game = NewGame(s.engine.GenerateQuestions(s.catalog.Items()))
	return s.game
}

func (s *State) AnswerQuiz(choice int) (bool, error) {
	if s.game == nil {
		return false, domain.ErrNoActiveQuiz
	}
	return s.game.Answer(choice)
}

func (s *State) CloseQuiz() {
	s.game = nil
}

func (s *State) Game() *Game {
	return s.game
}

func (s *State) SetNotice(n *domain.Notice) {
	s.notice = n
}

func (s *State) Notice() *domain.Notice {
	return s.notice
}

func (s *State) Route() Route {
	return s.route
}

func (s *State) Fragment() string {
	return s.fragment
}

func (s *State) Favorites() []string {
	return s.favorites.IDs()
}

func (s *State) Compared() []string {
	return s.compare.IDs()
}

func (s *State) Theme() domain.Theme {
	return s.theme
}

// View describes the current state for the presentation layer.
func (s *State) View() (domain.ViewState, error) {
	v := domain.ViewState{
		View:         s.route.View,
		ItemID:       s.route.ItemID,
		Fragment:     s.fragment,
		Favorites:    s.favorites.IDs(),
		Compare:      s.compare.IDs(),
		CompareReady: s.compare.Len() >= 2,
		Search:       s.catalog.Search(s.query),
		Notice:       s.notice,
		Theme:        s.theme,
	}
	if s.game != nil {
		quiz := s.game.View()
		v.Quiz = &quiz
	}

	switch s.route.View {
	case domain.ViewHome:
		v.Cards = s.cards(s.catalog.Items())
	case domain.ViewFavorites:
		v.Cards = s.cards(s.catalog.Filter(s.favorites.IDs()))
	case domain.ViewArticle:
		item, _ := s.catalog.Get(s.route.ItemID)
		article, err := s.renderer.Article(item, s.favorites.Has(item.ID))
		if err != nil {
			return domain.ViewState{}, err
		}
		v.Article = &article
	case domain.ViewComparison:
		v.Comparison = s.comparisonTable()
	}
	return v, nil
}

func (s *State) cards(items []domain.CatalogItem) []domain.Card {
	cards := make([]domain.Card, 0, len(items))
	for _, item := range items {
		cards = append(cards, domain.Card{
			ID:      item.ID,
			Name:    item.Name,
			Logo:    catalog.LogoURL(item, 100, item.Name),
			Color:   item.Color,
			Teaser:  s.renderer.Teaser(item, teaserLength),
			Favored: s.favorites.Has(item.ID),
			Compare: s.compare.Has(item.ID),
		})
	}
	return cards
}

func (s *State) comparisonTable() *domain.ComparisonTable {
	items := s.catalog.Filter(s.compare.IDs())
	properties := []struct {
		label string
		value func(domain.CatalogItem) string
	}{
		{"Name", func(i domain.CatalogItem) string { return i.Name }},
		{"Year created", func(i domain.CatalogItem) string { return i.Year }},
		{"Author", func(i domain.CatalogItem) string { return i.Author }},
		{"Type", func(i domain.CatalogItem) string { return i.Type }},
		{"Main usage", func(i domain.CatalogItem) string { return i.Usage }},
	}
	table := &domain.ComparisonTable{Columns: make([]string, 0, len(items))}
	for _, item := range items {
		table.Columns = append(table.Columns, item.Name)
	}
	for _, p := range properties {
		row := domain.ComparisonRow{Label: p.label, Values: make([]string, 0, len(items))}
		for _, item := range items {
			row.Values = append(row.Values, p.value(item))
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}
