package shortener

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultMaxAttempts bounds the generate-check-insert loop.
const DefaultMaxAttempts = 10

// Service creates short-code mappings. It is safe for concurrent use and holds
// no locks of its own: uniqueness rests on the Repository's conflict detection.
type Service struct {
	store       Repository
	generate    CodeGenerator
	maxAttempts int
	now         func() time.Time
	newID       func() uuid.UUID
	logger      *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithMaxAttempts sets how many candidates are tried before giving up.
func WithMaxAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithClock overrides the time source used for audit fields.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides how mapping IDs are assigned.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(s *Service) { s.newID = newID }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService creates a new shortening service.
func NewService(store Repository, generate CodeGenerator, opts ...Option) *Service {
	s := &Service{
		store:       store,
		generate:    generate,
		maxAttempts: DefaultMaxAttempts,
		now:         time.Now,
		newID:       uuid.New,
		logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// MaxAttempts returns the configured attempt budget.
func (s *Service) MaxAttempts() int {
	return s.maxAttempts
}

// Shorten validates the input and commits a new mapping under a code no other
// mapping owns. Calling it twice with the same longURL yields two mappings.
//
// Errors match ErrValidation for bad input and ErrExhausted when the budget
// runs out. Storage errors are returned as-is; conflicts are retried.
func (s *Service) Shorten(ctx context.Context, longURL, hostURL string) (*Mapping, error) {
	if err := Validate(longURL, hostURL); err != nil {
		return nil, err
	}

	codeLength := 0

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		code, err := s.generate()
		if err != nil {
			return nil, fmt.Errorf("generate code: %w", err)
		}

		codeLength = len(code)

		taken, err := s.store.Exists(ctx, code)
		if err != nil {
			return nil, err
		}

		if taken {
			s.logger.Debug("short code collision",
				zap.String("code", string(code)),
				zap.Int("attempt", attempt),
			)

			continue
		}

		now := s.now()
		mapping := &Mapping{
			ID:          s.newID(),
			OriginalURL: longURL,
			ShortCode:   code,
			ShortURL:    ComposeShortURL(hostURL, code),
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		err = s.store.Insert(ctx, mapping)
		if err == nil {
			return mapping, nil
		}

		if !errors.Is(err, ErrConflict) {
			return nil, err
		}

		s.logger.Debug("short code claimed concurrently",
			zap.String("code", string(code)),
			zap.Int("attempt", attempt),
		)
	}

	s.logger.Warn("short code attempts exhausted",
		zap.Int("attempts", s.maxAttempts),
		zap.Int("codeLength", codeLength),
	)

	return nil, &ExhaustedError{Attempts: s.maxAttempts, CodeLength: codeLength}
}
