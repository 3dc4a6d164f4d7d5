package app

import (
	"context"

	"go.uber.org/zap"
	"langpedia/internal/catalog"
	"langpedia/internal/content"
	"langpedia/internal/domain"
)

// SessionRepository abstracts where live client sessions are kept (in-memory, Redis-marked).
type SessionRepository interface {
	GetOrCreate(clientID string, create func() *Session) (*Session, bool)
	Get(clientID string) (*Session, bool)
	DeleteIfIdle(clientID string)
}

// CatalogRepository loads the catalog (from cache/backing store).
type CatalogRepository interface {
	GetCatalog(ctx context.Context) (*catalog.Catalog, error)
}

// ServiceOptions configure every session the service creates.
type ServiceOptions struct {
	Session  SessionOptions
	Engine   *QuizEngine
	Renderer *content.Renderer
	Logger   *zap.Logger
}

// BrowserService contains the encyclopedia use cases.
type BrowserService struct {
	sessions SessionRepository
	catalogs CatalogRepository
	stores   StoreProvider
	engine   *QuizEngine
	renderer *content.Renderer
	opts     SessionOptions
	logger   *zap.Logger
}

func NewBrowserService(sessions SessionRepository, catalogs CatalogRepository, stores StoreProvider, opts ServiceOptions) *BrowserService {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Engine == nil {
		opts.Engine = NewQuizEngine(nil)
	}
	if opts.Renderer == nil {
		opts.Renderer = content.NewRenderer()
	}
	if opts.Session.Logger == nil {
		opts.Session.Logger = opts.Logger
	}
	return &BrowserService{
		sessions: sessions,
		catalogs: catalogs,
		stores:   stores,
		engine:   opts.Engine,
		renderer: opts.Renderer,
		opts:     opts.Session,
		logger:   opts.Logger,
	}
}

// Connect creates or resumes the session of clientID and runs the entry resolution with
// the optional requested view and the client's current fragment.
func (s *BrowserService) Connect(ctx context.Context, clientID string, requested domain.ViewKind, itemID, fragment string) (domain.ViewState, error) {
	// Load the catalog up front; nothing can render without it.
	cat, err := s.catalogs.GetCatalog(ctx)
	if err != nil {
		return domain.ViewState{}, err
	}

	session, created := s.sessions.GetOrCreate(clientID, func() *Session {
		state := NewState(ctx, StateDeps{
			Catalog:  cat,
			Store:    s.stores.StoreFor(clientID),
			Renderer: s.renderer,
			Engine:   s.engine,
			Logger:   s.logger.With(zap.String("client_id", clientID)),
		})
		return NewSession(clientID, state, s.opts)
	})
	if created {
		s.logger.Debug("session created", zap.String("client_id", clientID))
	}
	return session.Dispatch(ctx, domain.Intent{
		Kind:     domain.IntentEnter,
		View:     requested,
		ItemID:   itemID,
		Fragment: fragment,
	})
}

// Dispatch applies one intent to the session of clientID.
func (s *BrowserService) Dispatch(ctx context.Context, clientID string, intent domain.Intent) (domain.ViewState, error) {
	session, ok := s.sessions.Get(clientID)
	if !ok {
		return domain.ViewState{}, domain.ErrSessionNotFound
	}
	return session.Dispatch(ctx, intent)
}

// Subscribe returns a channel that receives view updates for clientID, including those
// triggered by timers. The caller must invoke the returned cancel function to avoid leaks.
func (s *BrowserService) Subscribe(_ context.Context, clientID string) (<-chan domain.ViewState, func(), error) {
	session, ok := s.sessions.Get(clientID)
	if !ok {
		return nil, nil, domain.ErrSessionNotFound
	}
	return session.Subscribe()
}

// Leave drops the session once no subscriber is left.
func (s *BrowserService) Leave(_ context.Context, clientID string) {
	if _, ok := s.sessions.Get(clientID); !ok {
		return
	}
	s.sessions.DeleteIfIdle(clientID)
}

// Catalog exposes the current catalog for read-only endpoints.
func (s *BrowserService) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	return s.catalogs.GetCatalog(ctx)
}

// PreviewQuiz generates a question list without starting a game.
func (s *BrowserService) PreviewQuiz(ctx context.Context) ([]domain.Question, error) {
	cat, err := s.catalogs.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return s.engine.GenerateQuestions(cat.Items()), nil
}
