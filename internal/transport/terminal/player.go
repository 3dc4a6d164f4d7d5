package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"langpedia/internal/app"
	"langpedia/internal/domain"
)

type styles struct {
	title   lipgloss.Style
	prompt  lipgloss.Style
	correct lipgloss.Style
	wrong   lipgloss.Style
	muted   lipgloss.Style
	win     lipgloss.Style
	lose    lipgloss.Style
}

func newStyles(out io.Writer, color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain, plain}
	}
	r := lipgloss.NewRenderer(out)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		prompt:  r.NewStyle().Bold(true),
		correct: r.NewStyle().Foreground(lipgloss.Color("#28a745")),
		wrong:   r.NewStyle().Foreground(lipgloss.Color("#dc3545")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#6c757d")),
		win:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("#28a745")).Border(lipgloss.RoundedBorder()).Padding(0, 1),
		lose:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#dc3545")).Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

// ColorEnabled reports whether f is an interactive terminal worth styling.
func ColorEnabled(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Player runs the quiz in a line-oriented terminal: one question at a time, numbered
// choices, feedback after each answer and a final score.
type Player struct {
	engine *app.QuizEngine
	in     *bufio.Scanner
	out    io.Writer
	st     styles
}

func NewPlayer(engine *app.QuizEngine, in io.Reader, out io.Writer, color bool) *Player {
	if engine == nil {
		engine = app.NewQuizEngine(nil)
	}
	return &Player{
		engine: engine,
		in:     bufio.NewScanner(in),
		out:    out,
		st:     newStyles(out, color),
	}
}

// Play runs one game over items and returns it once finished. Entering q or closing the
// input ends the game early; the partial game is returned without error.
func (p *Player) Play(ctx context.Context, items []domain.CatalogItem) (*app.Game, error) {
	game := app.NewGame(p.engine.GenerateQuestions(items))
	fmt.Fprintln(p.out, p.st.title.Render("Programming language quiz"))

	for !game.Finished() {
		if err := ctx.Err(); err != nil {
			return game, err
		}
		view := game.View()
		p.printQuestion(view)

		choice, ok := p.readChoice(len(view.Choices))
		if !ok {
			fmt.Fprintln(p.out, p.st.muted.Render("Quiz closed."))
			return game, nil
		}
		if _, err := game.Answer(choice); err != nil {
			return game, err
		}
		p.printFeedback(game.View())
		game.Advance()
	}

	p.printResult(game.View())
	return game, nil
}

func (p *Player) printQuestion(v domain.QuizView) {
	fmt.Fprintf(p.out, "\n%s\n", p.st.muted.Render(fmt.Sprintf("Question %d of %d | Score: %d", v.Index+1, v.Total, v.Score)))
	fmt.Fprintln(p.out, p.st.prompt.Render(v.Prompt))
	for i, choice := range v.Choices {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, choice)
	}
}

// readChoice returns the zero-based choice, re-asking until the input is a valid number.
func (p *Player) readChoice(n int) (int, bool) {
	for {
		fmt.Fprintf(p.out, "Your answer [1-%d, q to quit]: ", n)
		if !p.in.Scan() {
			fmt.Fprintln(p.out)
			return 0, false
		}
		line := strings.TrimSpace(p.in.Text())
		if strings.EqualFold(line, "q") {
			return 0, false
		}
		choice, err := strconv.Atoi(line)
		if err != nil || choice < 1 || choice > n {
			fmt.Fprintln(p.out, p.st.wrong.Render(fmt.Sprintf("Enter a number between 1 and %d.", n)))
			continue
		}
		return choice - 1, true
	}
}

func (p *Player) printFeedback(v domain.QuizView) {
	for i, choice := range v.Choices {
		switch {
		case v.Correct[i]:
			fmt.Fprintln(p.out, p.st.correct.Render("  ✓ "+choice))
		case i == v.Selected:
			fmt.Fprintln(p.out, p.st.wrong.Render("  ✗ "+choice))
		}
	}
}

func (p *Player) printResult(v domain.QuizView) {
	summary := fmt.Sprintf("Game over! Final score: %d of %d", v.Score, v.Total)
	if v.Won {
		fmt.Fprintln(p.out, p.st.win.Render(summary+"\nWell done!"))
		return
	}
	fmt.Fprintln(p.out, p.st.lose.Render(summary+"\nBetter luck next time."))
}
