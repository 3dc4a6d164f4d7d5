package app

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"langpedia/internal/catalog"
	"langpedia/internal/domain"
)

const (
	// MaxQuestions caps the length of a game.
	MaxQuestions = 8
	// MaxDistractors is the number of wrong answers sampled per question.
	MaxDistractors = 3
)

// QuizEngine generates randomized multiple-choice questions from catalog items.
// The random source is shared, so every use goes through mu.
type QuizEngine struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewQuizEngine builds an engine around rnd; nil seeds one from the clock.
func NewQuizEngine(rnd *rand.Rand) *QuizEngine {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &QuizEngine{rnd: rnd}
}

// GenerateQuestions builds three questions per eligible item (type, one usage tag, one
// trait), shuffles the pool and keeps at most MaxQuestions of them.
func (e *QuizEngine) GenerateQuestions(items []domain.CatalogItem) []domain.Question {
	e.mu.Lock()
	defer e.mu.Unlock()

	eligible := catalog.EligibleItems(items)
	questions := make([]domain.Question, 0, 3*len(eligible))
	for _, item := range eligible {
		usage := catalog.SplitTags(item.Usage)
		traits := catalog.SplitTags(item.Traits)
		prompts := []string{
			fmt.Sprintf("Which language is primarily of type %q?", item.Type),
			fmt.Sprintf("Which of these languages is popular for %q?", usage[e.rnd.Intn(len(usage))]),
			fmt.Sprintf("Which language is described by the trait %q?", traits[e.rnd.Intn(len(traits))]),
		}
		for _, prompt := range prompts {
			questions = append(questions, domain.Question{
				Prompt:  prompt,
				ItemID:  item.ID,
				Answers: e.answers(eligible, item),
			})
		}
	}

	e.rnd.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	if len(questions) > MaxQuestions {
		questions = questions[:MaxQuestions]
	}
	return questions
}

// GenerateAnswers returns the shuffled choices for a question whose answer is correct.Name.
// Distractors are drawn without replacement from pool; when the pool holds fewer than
// MaxDistractors other distinct names the question simply has fewer choices.
// An empty correct name yields no answers.
func (e *QuizEngine) GenerateAnswers(pool []domain.CatalogItem, correct domain.CatalogItem) []domain.Answer {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.answers(pool, correct)
}

func (e *QuizEngine) answers(pool []domain.CatalogItem, correct domain.CatalogItem) []domain.Answer {
	if correct.Name == "" {
		return nil
	}

	others := make([]domain.CatalogItem, 0, len(pool))
	for _, item := range pool {
		if item.ID != correct.ID {
			others = append(others, item)
		}
	}

	answers := make([]domain.Answer, 1, MaxDistractors+1)
	answers[0] = domain.Answer{Text: correct.Name, Correct: true}
	seen := map[string]struct{}{correct.Name: {}}
	for len(answers) <= MaxDistractors && len(others) > 0 {
		i := e.rnd.Intn(len(others))
		candidate := others[i]
		others[i] = others[len(others)-1]
		others = others[:len(others)-1]

		if candidate.Name == "" {
			continue
		}
		if _, dup := seen[candidate.Name]; dup {
			continue
		}
		seen[candidate.Name] = struct{}{}
		answers = append(answers, domain.Answer{Text: candidate.Name})
	}

	e.rnd.Shuffle(len(answers), func(i, j int) {
		answers[i], answers[j] = answers[j], answers[i]
	})
	return answers
}

// Game is one quiz run: AwaitingAnswer(i) for each question index, then Finished.
// After an answer the choices are revealed until Advance moves to the next question.
type Game struct {
	questions []domain.Question
	index     int
	score     int
	revealed  bool
	selected  int
}

func NewGame(questions []domain.Question) *Game {
	return &Game{questions: questions, selected: -1}
}

// Answer records choice for the current question and reveals the correct one.
func (g *Game) Answer(choice int) (bool, error) {
	if g.Finished() {
		return false, domain.ErrQuizFinished
	}
	if g.revealed {
		return false, domain.ErrAnswerPending
	}
	q := g.questions[g.index]
	if choice < 0 || choice >= len(q.Answers) {
		return false, fmt.Errorf("choice %d of %d: %w", choice, len(q.Answers), domain.ErrAnswerOutOfRange)
	}
	correct := q.Answers[choice].Correct
	if correct {
		g.score++
	}
	g.revealed = true
	g.selected = choice
	return correct, nil
}

// Advance leaves the feedback state for the next question. It is a no-op unless the
// current answer has been revealed.
func (g *Game) Advance() bool {
	if !g.revealed {
		return false
	}
	g.revealed = false
	g.selected = -1
	g.index++
	return true
}

func (g *Game) Finished() bool {
	return g.index >= len(g.questions)
}

func (g *Game) Revealed() bool {
	return g.revealed
}

func (g *Game) Score() int {
	return g.score
}

func (g *Game) Total() int {
	return len(g.questions)
}

func (g *Game) Index() int {
	return g.index
}

// Won reports a strict majority of correct answers. An empty game is never won.
func (g *Game) Won() bool {
	return g.score*2 > len(g.questions)
}

// View renders the game for the client. Correctness flags are withheld until revealed.
func (g *Game) View() domain.QuizView {
	v := domain.QuizView{
		Status:   domain.QuizAwaitingAnswer,
		Index:    g.index,
		Total:    len(g.questions),
		Score:    g.score,
		Revealed: g.revealed,
		Selected: g.selected,
	}
	if g.Finished() {
		v.Status = domain.QuizFinished
		v.Won = g.Won()
		return v
	}
	q := g.questions[g.index]
	v.Prompt = q.Prompt
	v.Choices = make([]string, len(q.Answers))
	for i, a := range q.Answers {
		v.Choices[i] = a.Text
	}
	if g.revealed {
		v.Correct = make([]bool, len(q.Answers))
		for i, a := range q.Answers {
			v.Correct[i] = a.Correct
		}
	}
	return v
}
