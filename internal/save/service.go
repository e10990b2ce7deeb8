// Package save persists a GameState to a single durable slot and detects
// corrupted saves on the way back.
package save

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/mazecrawl/internal/gamestate"
	"github.com/samdwyer/mazecrawl/internal/storage"
	"github.com/samdwyer/mazecrawl/internal/telemetry"
)

// DefaultSlotKey names the slot games are saved to.
const DefaultSlotKey = "mazecrawl-save"

// Service reads and writes the save slot.
type Service struct {
	store  storage.Store
	key    string
	logger *slog.Logger
	tracer trace.Tracer
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithSlotKey overrides the slot key.
func WithSlotKey(key string) Option {
	return func(s *Service) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger used for swallowed failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTracer overrides the tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithClock overrides the clock used to stamp saves.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService returns a Service that saves to store.
func NewService(store storage.Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		key:    DefaultSlotKey,
		logger: slog.Default(),
		tracer: telemetry.Tracer("save"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SlotKey returns the key the service saves under.
func (s *Service) SlotKey() string {
	return s.key
}

// CheckForSaveData reports whether the slot holds anything. Storage failures
// are logged and reported as false.
func (s *Service) CheckForSaveData(ctx context.Context) bool {
	ctx, span := s.tracer.Start(ctx, "save.check")
	defer span.End()

	_, err := s.store.Get(ctx, s.key)
	switch {
	case err == nil:
		span.SetAttributes(attribute.Bool("save.present", true))
		return true
	case errors.Is(err, storage.ErrNotFound):
	default:
		span.RecordError(err)
		s.logger.WarnContext(ctx, "check for save data", "slot", s.key, "error", err)
	}
	span.SetAttributes(attribute.Bool("save.present", false))
	return false
}

// SaveGame overwrites the slot with state.
func (s *Service) SaveGame(ctx context.Context, state *gamestate.GameState) error {
	ctx, span := s.tracer.Start(ctx, "save.write")
	defer span.End()

	if state == nil {
		err := errors.New("game state is nil")
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	data, err := Encode(state, s.now())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "encode")
		return err
	}
	span.SetAttributes(
		attribute.String("save.slot", s.key),
		attribute.Int("save.bytes", len(data)),
		attribute.Int("roster.size", len(state.Roster)),
		attribute.Int("party.size", state.Party.Size()),
		attribute.String("scene", state.CurrentScene.String()),
	)

	if err := s.store.Put(ctx, s.key, data); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store")
		return storageFailure("write save slot", err)
	}
	s.logger.InfoContext(ctx, "game saved", "slot", s.key, "bytes", len(data))
	return nil
}

// LoadGame reads the slot. It returns ErrNotFound when nothing is saved and
// ErrCorrupted when the content is not a valid game.
func (s *Service) LoadGame(ctx context.Context) (*gamestate.GameState, error) {
	ctx, span := s.tracer.Start(ctx, "save.load")
	defer span.End()
	span.SetAttributes(attribute.String("save.slot", s.key))

	data, err := s.store.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			span.SetAttributes(attribute.Bool("save.present", false))
			return nil, ErrNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "store")
		return nil, storageFailure("read save slot", err)
	}

	state, err := Decode(data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "corrupted")
		s.logger.WarnContext(ctx, "save data corrupted", "slot", s.key, "error", err)
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("save.bytes", len(data)),
		attribute.Int("roster.size", len(state.Roster)),
	)
	return state, nil
}

// ValidateSaveData reports whether LoadGame would currently succeed.
func (s *Service) ValidateSaveData(ctx context.Context) bool {
	_, err := s.LoadGame(ctx)
	return err == nil
}

// DeleteSave empties the slot. Deleting an empty slot is not an error.
func (s *Service) DeleteSave(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "save.delete")
	defer span.End()

	if err := s.store.Delete(ctx, s.key); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store")
		return storageFailure("delete save slot", err)
	}
	s.logger.InfoContext(ctx, "save deleted", "slot", s.key)
	return nil
}
