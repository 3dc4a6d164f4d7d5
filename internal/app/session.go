package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"langpedia/internal/domain"
)

const (
	DefaultFeedbackDelay = 1500 * time.Millisecond
	DefaultNoticeTTL     = 3 * time.Second
)

// Notice texts.
const (
	NoticeComparisonFull  = "You can compare up to 3 languages."
	NoticeComparisonSmall = "Pick at least 2 languages to compare."
	NoticeCopied          = "Code copied to clipboard!"
	NoticeCopyFailed      = "Could not copy the code."
)

// Timer is the part of *time.Timer the session needs.
type Timer interface {
	Stop() bool
}

// Clock schedules the feedback and notice timers.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

// SessionOptions tune the timers of a session.
type SessionOptions struct {
	// FeedbackDelay is how long a revealed answer stays up. Zero or less advances at once.
	FeedbackDelay time.Duration
	NoticeTTL     time.Duration
	Clock         Clock
	Logger        *zap.Logger
}

func (o SessionOptions) withDefaults() SessionOptions {
	if o.NoticeTTL <= 0 {
		o.NoticeTTL = DefaultNoticeTTL
	}
	if o.Clock == nil {
		o.Clock = SystemClock
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Session owns the State of one client, serializes intents and timer callbacks on it, and
// fans view updates out to subscribers.
type Session struct {
	id   string
	opts SessionOptions

	mu          sync.Mutex
	state       *State
	feedback    Timer
	noticeTimer Timer
	// gameGen invalidates feedback timers of replaced or closed games.
	gameGen     int
	subscribers map[chan domain.ViewState]struct{}
	closed      bool
}

func NewSession(id string, state *State, opts SessionOptions) *Session {
	opts = opts.withDefaults()
	opts.Logger = opts.Logger.With(zap.String("client_id", id))
	return &Session{
		id:          id,
		opts:        opts,
		state:       state,
		subscribers: make(map[chan domain.ViewState]struct{}),
	}
}

func (s *Session) ID() string {
	return s.id
}

// Dispatch applies intent and returns the resulting view. Rejected intents return the
// unchanged view together with the rejection error.
func (s *Session) Dispatch(ctx context.Context, intent domain.Intent) (domain.ViewState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.applyLocked(ctx, intent)
	if err != nil {
		s.opts.Logger.Debug("intent rejected", zap.String("intent", string(intent.Kind)), zap.Error(err))
	}
	view, viewErr := s.broadcastLocked()
	if viewErr != nil {
		return domain.ViewState{}, viewErr
	}
	return view, err
}

// Snapshot returns the current view without changing anything.
func (s *Session) Snapshot() (domain.ViewState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.View()
}

func (s *Session) applyLocked(ctx context.Context, intent domain.Intent) error {
	st := s.state
	switch intent.Kind {
	case domain.IntentEnter:
		st.Enter(ctx, ParseView(intent.View, intent.ItemID), intent.Fragment)
	case domain.IntentOpenHome:
		st.Navigate(ctx, HomeRoute)
	case domain.IntentOpenArticle:
		st.Navigate(ctx, Route{View: domain.ViewArticle, ItemID: intent.ItemID})
	case domain.IntentOpenAbout:
		st.Navigate(ctx, Route{View: domain.ViewAbout})
	case domain.IntentOpenFavorites:
		st.Navigate(ctx, Route{View: domain.ViewFavorites})
	case domain.IntentOpenComparison:
		if err := st.OpenComparison(); err != nil {
			s.notifyLocked(NoticeComparisonSmall)
			return err
		}
	case domain.IntentCloseComparison:
		st.CloseComparison(ctx)
	case domain.IntentFragmentChanged:
		st.FragmentChanged(ctx, intent.Fragment)
	case domain.IntentToggleFavorite:
		if _, err := st.ToggleFavorite(ctx, intent.ItemID); err != nil {
			return err
		}
	case domain.IntentToggleCompare:
		if _, err := st.ToggleCompare(intent.ItemID); err != nil {
			if errors.Is(err, domain.ErrComparisonFull) {
				s.notifyLocked(NoticeComparisonFull)
			}
			return err
		}
	case domain.IntentSearch:
		st.Search(intent.Query)
	case domain.IntentSetTheme:
		st.SetTheme(ctx, intent.Theme)
	case domain.IntentStartQuiz:
		s.resetGameLocked()
		st.StartQuiz()
	case domain.IntentAnswerQuiz:
		if _, err := st.AnswerQuiz(intent.Choice); err != nil {
			return err
		}
		s.scheduleAdvanceLocked()
	case domain.IntentCloseQuiz:
		s.resetGameLocked()
		st.CloseQuiz()
	case domain.IntentCopyResult:
		if intent.Success {
			s.notifyLocked(NoticeCopied)
		} else {
			s.notifyLocked(NoticeCopyFailed)
		}
	default:
		return domain.ErrUnknownIntent
	}
	return nil
}

func (s *Session) resetGameLocked() {
	s.gameGen++
	if s.feedback != nil {
		s.feedback.Stop()
		s.feedback = nil
	}
}

func (s *Session) scheduleAdvanceLocked() {
	if s.opts.FeedbackDelay <= 0 {
		s.state.Game().Advance()
		return
	}
	gen := s.gameGen
	s.feedback = s.opts.Clock.AfterFunc(s.opts.FeedbackDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.gameGen || s.closed {
			return
		}
		s.feedback = nil
		if game := s.state.Game(); game != nil && game.Advance() {
			if _, err := s.broadcastLocked(); err != nil {
				s.opts.Logger.Error("render after quiz advance", zap.Error(err))
			}
		}
	})
}

// notifyLocked shows msg, replacing any live notice, and schedules its removal.
func (s *Session) notifyLocked(msg string) {
	if s.noticeTimer != nil {
		s.noticeTimer.Stop()
	}
	notice := &domain.Notice{
		ID:        uuid.NewString(),
		Message:   msg,
		ExpiresAt: s.opts.Clock.Now().Add(s.opts.NoticeTTL),
	}
	s.state.SetNotice(notice)
	s.noticeTimer = s.opts.Clock.AfterFunc(s.opts.NoticeTTL, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		current := s.state.Notice()
		if s.closed || current == nil || current.ID != notice.ID {
			return
		}
		s.state.SetNotice(nil)
		s.noticeTimer = nil
		if _, err := s.broadcastLocked(); err != nil {
			s.opts.Logger.Error("render after notice expiry", zap.Error(err))
		}
	})
}

// Subscribe returns a channel of view updates, primed with the current view.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *Session) Subscribe() (<-chan domain.ViewState, func(), error) {
	ch := make(chan domain.ViewState, 8)

	s.mu.Lock()
	initial, err := s.state.View()
	if err != nil {
		s.mu.Unlock()
		return nil, nil, err
	}
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	ch <- initial

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel, nil
}

// IsIdle reports whether nobody is subscribed.
func (s *Session) IsIdle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers) == 0
}

// Close stops pending timers. Subscribers are left to their cancel functions.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.gameGen++
	if s.feedback != nil {
		s.feedback.Stop()
		s.feedback = nil
	}
	if s.noticeTimer != nil {
		s.noticeTimer.Stop()
		s.noticeTimer = nil
	}
}

func (s *Session) broadcastLocked() (domain.ViewState, error) {
	view, err := s.state.View()
	if err != nil {
		return domain.ViewState{}, err
	}
	for ch := range s.subscribers {
		select {
		case ch <- view:
		default:
			// slow subscriber: drop its stale update so the newest view wins
			select {
			case <-ch:
			default:
			}
			ch <- view
		}
	}
	return view, nil
}
