package domain

import "time"

// CatalogItem is one language record. Only Name, Type, Usage and Traits feed the quiz;
// the remaining fields are descriptive payload for the article and comparison views.
type CatalogItem struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Usage    string `json:"usage" yaml:"usage"`
	Traits   string `json:"traits" yaml:"traits"`
	Summary  string `json:"summary,omitempty" yaml:"summary,omitempty"`
	History  string `json:"history,omitempty" yaml:"history,omitempty"`
	Benefits string `json:"benefits,omitempty" yaml:"benefits,omitempty"`
	HowToUse string `json:"howToUse,omitempty" yaml:"howToUse,omitempty"`
	FunFact  string `json:"funFact,omitempty" yaml:"funFact,omitempty"`
	Code     string `json:"code,omitempty" yaml:"code,omitempty"`
	Year     string `json:"year,omitempty" yaml:"year,omitempty"`
	Author   string `json:"author,omitempty" yaml:"author,omitempty"`
	Image    string `json:"image,omitempty" yaml:"image,omitempty"`
	Color    string `json:"color,omitempty" yaml:"color,omitempty"`
}

// Answer is one choice of a quiz question.
type Answer struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// Question models an MCQ question with exactly one correct answer.
type Question struct {
	Prompt  string   `json:"prompt"`
	ItemID  string   `json:"itemId"`
	Answers []Answer `json:"answers"`
}

// ViewKind enumerates the pages a client can be looking at.
type ViewKind string

const (
	ViewHome       ViewKind = "home"
	ViewArticle    ViewKind = "article"
	ViewAbout      ViewKind = "about"
	ViewFavorites  ViewKind = "favorites"
	ViewComparison ViewKind = "comparison"
	ViewNotFound   ViewKind = "not_found"
)

// Theme is the persisted colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// IntentKind enumerates the user actions the presentation layer can send.
type IntentKind string

const (
	IntentEnter           IntentKind = "enter"
	IntentOpenHome        IntentKind = "open_home"
	IntentOpenArticle     IntentKind = "open_article"
	IntentOpenAbout       IntentKind = "open_about"
	IntentOpenFavorites   IntentKind = "open_favorites"
	IntentOpenComparison  IntentKind = "open_comparison"
	IntentCloseComparison IntentKind = "close_comparison"
	IntentFragmentChanged IntentKind = "fragment_changed"
	IntentToggleFavorite  IntentKind = "toggle_favorite"
	IntentToggleCompare   IntentKind = "toggle_compare"
	IntentSearch          IntentKind = "search"
	IntentSetTheme        IntentKind = "set_theme"
	IntentStartQuiz       IntentKind = "start_quiz"
	IntentAnswerQuiz      IntentKind = "answer_quiz"
	IntentCloseQuiz       IntentKind = "close_quiz"
	IntentCopyResult      IntentKind = "copy_result"
)

// Intent is a single user action. Only the fields relevant to Kind are read.
type Intent struct {
	Kind     IntentKind `json:"kind"`
	View     ViewKind   `json:"view,omitempty"`
	ItemID   string     `json:"itemId,omitempty"`
	Fragment string     `json:"fragment,omitempty"`
	Query    string     `json:"query,omitempty"`
	Theme    Theme      `json:"theme,omitempty"`
	Choice   int        `json:"choice,omitempty"`
	Success  bool       `json:"success,omitempty"`
}

// Card is the summary of a language shown in grids.
type Card struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Logo    string `json:"logo"`
	Color   string `json:"color"`
	Teaser  string `json:"teaser"`
	Favored bool   `json:"favored"`
	Compare bool   `json:"compare"`
}

// ArticleSection is one titled block of an article. Body is sanitized HTML.
type ArticleSection struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Article is the detail page of a language.
type Article struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Logo     string           `json:"logo"`
	Favorite bool             `json:"favorite"`
	Code     string           `json:"code"`
	Sections []ArticleSection `json:"sections"`
}

// ComparisonRow is one property across the compared languages.
type ComparisonRow struct {
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

// ComparisonTable is the side-by-side view of the selected languages.
type ComparisonTable struct {
	Columns []string        `json:"columns"`
	Rows    []ComparisonRow `json:"rows"`
}

// SearchHit is one search result.
type SearchHit struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// QuizStatus is the state of the quiz state machine.
type QuizStatus string

const (
	QuizAwaitingAnswer QuizStatus = "awaiting_answer"
	QuizFinished       QuizStatus = "finished"
)

// QuizView is the quiz overlay state sent to the client.
type QuizView struct {
	Status   QuizStatus `json:"status"`
	Index    int        `json:"index"`
	Total    int        `json:"total"`
	Score    int        `json:"score"`
	Prompt   string     `json:"prompt,omitempty"`
	Choices  []string   `json:"choices,omitempty"`
	Revealed bool       `json:"revealed"`
	Selected int        `json:"selected"`
	// Correct is only populated once the answer has been revealed.
	Correct []bool `json:"correct,omitempty"`
	Won     bool   `json:"won"`
}

// Notice is a transient message that disappears on its own.
type Notice struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ViewState is the declarative description of what the client should render.
type ViewState struct {
	View         ViewKind         `json:"view"`
	ItemID       string           `json:"itemId,omitempty"`
	Fragment     string           `json:"fragment"`
	Article      *Article         `json:"article,omitempty"`
	Cards        []Card           `json:"cards,omitempty"`
	Comparison   *ComparisonTable `json:"comparison,omitempty"`
	Favorites    []string         `json:"favorites"`
	Compare      []string         `json:"compare"`
	CompareReady bool             `json:"compareReady"`
	Search       []SearchHit      `json:"search,omitempty"`
	Quiz         *QuizView        `json:"quiz,omitempty"`
	Notice       *Notice          `json:"notice,omitempty"`
	Theme        Theme            `json:"theme"`
}
