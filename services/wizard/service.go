package wizard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"skiphire/utils"
)

// Service drives wizard sessions: one State per session id, every action
// funnelled through the reducer so the store only ever holds states the
// reducer could produce.
type Service interface {
	StartSession(ctx context.Context) (string, State, error)
	GetSession(ctx context.Context, id string) (State, error)
	Apply(ctx context.Context, id string, action Action) (State, error)
	EndSession(ctx context.Context, id string) error
}

type service struct {
	store  SessionStore
	logger *zap.Logger
	now    func() time.Time
}

// NewService builds the wizard service over the given store.
func NewService(store SessionStore) Service {
	return &service{
		store:  store,
		logger: utils.GetLogger().Named("wizard"),
		now:    time.Now,
	}
}

func (s *service) StartSession(ctx context.Context) (string, State, error) {
	id := uuid.New().String()
	state := NewState()
	if err := s.store.Save(ctx, id, state); err != nil {
		return "", State{}, err
	}
	s.logger.Info("wizard session started", zap.String("session", id))
	return id, state, nil
}

func (s *service) GetSession(ctx context.Context, id string) (State, error) {
	return s.store.Load(ctx, id)
}

func (s *service) Apply(ctx context.Context, id string, action Action) (State, error) {
	state, err := s.store.Load(ctx, id)
	if err != nil {
		return State{}, err
	}

	next, err := Reduce(state, action, s.now())
	if err != nil {
		return state, err
	}

	if err := s.store.Save(ctx, id, next); err != nil {
		return State{}, err
	}

	if next.Step != state.Step {
		s.logger.Debug("wizard step changed",
			zap.String("session", id),
			zap.Int("from", state.Step), zap.Int("to", next.Step))
	}
	return next, nil
}

func (s *service) EndSession(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("wizard session ended", zap.String("session", id))
	return nil
}
