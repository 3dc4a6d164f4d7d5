package terminal

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"testing"

	"langpedia/internal/app"
	"langpedia/internal/domain"
)

func TestPlayerCompletesGame(t *testing.T) {
	items := []domain.CatalogItem{
		{ID: "go", Name: "Go", Type: "compiled", Usage: "cloud", Traits: "simple"},
		{ID: "python", Name: "Python", Type: "interpreted", Usage: "data", Traits: "readable"},
	}
	// 6 questions; invalid input first, then always pick the first choice.
	input := "seven\n9\n" + strings.Repeat("1\n", 6)
	var out bytes.Buffer
	player := NewPlayer(app.NewQuizEngine(rand.New(rand.NewSource(1))), strings.NewReader(input), &out, false)

	game, err := player.Play(context.Background(), items)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if !game.Finished() {
		t.Fatalf("expected finished game")
	}
	if game.Total() != 6 {
		t.Fatalf("expected 6 questions, got %d", game.Total())
	}
	text := out.String()
	if !strings.Contains(text, "Enter a number between 1 and 2.") {
		t.Fatalf("expected invalid input hint, got:\n%s", text)
	}
	if !strings.Contains(text, "Final score:") {
		t.Fatalf("expected final score, got:\n%s", text)
	}
	if strings.Count(text, "✓") != 6 {
		t.Fatalf("expected one revealed answer per question, got:\n%s", text)
	}
}

func TestPlayerQuitsEarly(t *testing.T) {
	items := []domain.CatalogItem{
		{ID: "go", Name: "Go", Type: "compiled", Usage: "cloud", Traits: "simple"},
		{ID: "python", Name: "Python", Type: "interpreted", Usage: "data", Traits: "readable"},
	}
	var out bytes.Buffer
	player := NewPlayer(nil, strings.NewReader("1\nq\n"), &out, false)

	game, err := player.Play(context.Background(), items)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if game.Finished() || game.Index() != 1 {
		t.Fatalf("expected game stopped at question 2, index=%d", game.Index())
	}
	if !strings.Contains(out.String(), "Quiz closed.") {
		t.Fatalf("expected close message, got:\n%s", out.String())
	}
}

func TestPlayerEmptyCatalogFinishesImmediately(t *testing.T) {
	var out bytes.Buffer
	player := NewPlayer(nil, strings.NewReader(""), &out, false)

	game, err := player.Play(context.Background(), nil)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if game.Total() != 0 || game.Won() {
		t.Fatalf("expected empty lost game, total=%d won=%v", game.Total(), game.Won())
	}
	if !strings.Contains(out.String(), "Final score: 0 of 0") {
		t.Fatalf("expected 0 of 0, got:\n%s", out.String())
	}
}
