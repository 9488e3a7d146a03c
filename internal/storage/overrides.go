package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/cabanas/quote-service/internal/metrics"
	"github.com/cabanas/quote-service/internal/tariff"
)

// DefaultOverridesKey is the key the override blob is stored under.
const DefaultOverridesKey = "tariffOverrides"

// OverrideStore persists tariff overrides as one JSON blob. Loads are
// cached for a short TTL and concurrent loads share one backend read.
type OverrideStore struct {
	backend Storage
	key     string
	ttl     time.Duration
	logger  zerolog.Logger

	sf singleflight.Group

	mu       sync.RWMutex
	cached   *tariff.Overrides
	loadedAt time.Time
	now      func() time.Time

	// writes are serialised so read-modify-write helpers do not lose updates
	writeMu sync.Mutex
}

// OverrideStoreOption configures an OverrideStore.
type OverrideStoreOption func(*OverrideStore)

// WithKey sets the storage key.
func WithKey(key string) OverrideStoreOption {
	return func(s *OverrideStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithCacheTTL sets how long a loaded blob is served from memory.
// Zero disables caching.
func WithCacheTTL(ttl time.Duration) OverrideStoreOption {
	return func(s *OverrideStore) { s.ttl = ttl }
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) OverrideStoreOption {
	return func(s *OverrideStore) { s.logger = logger.With().Str("component", "override_store").Logger() }
}

// NewOverrideStore creates an override store on top of a backend.
func NewOverrideStore(backend Storage, opts ...OverrideStoreOption) *OverrideStore {
	s := &OverrideStore{
		backend: backend,
		key:     DefaultOverridesKey,
		logger:  zerolog.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key of the blob.
func (s *OverrideStore) Key() string {
	return s.key
}

// Load returns the stored overrides. A missing blob yields empty overrides.
func (s *OverrideStore) Load(ctx context.Context) (tariff.Overrides, error) {
	if o, ok := s.fromCache(); ok {
		return o, nil
	}

	v, err, shared := s.sf.Do(s.key, func() (interface{}, error) {
		// one caller cancelling must not fail the others sharing this load
		o, err := s.read(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		s.store(o)
		return o, nil
	})
	if err != nil {
		return tariff.Overrides{}, err
	}
	if shared {
		s.logger.Debug().Str("key", s.key).Msg("Shared in-flight override load")
	}

	return v.(tariff.Overrides).Clone(), nil
}

// Active returns the built-in table for season merged with its stored override.
func (s *OverrideStore) Active(ctx context.Context, season tariff.Season) (tariff.Table, error) {
	o, err := s.Load(ctx)
	if err != nil {
		return tariff.Table{}, err
	}
	return tariff.Active(season, o), nil
}

// Save validates and persists the overrides, replacing the stored blob.
// Validation warnings are logged and returned; validation errors abort.
func (s *OverrideStore) Save(ctx context.Context, o tariff.Overrides) ([]tariff.Warning, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.save(ctx, o)
}

// Update applies fn to the stored overrides and saves the result. Updates
// are serialised so concurrent edits do not lose each other's changes.
func (s *OverrideStore) Update(ctx context.Context, fn func(tariff.Overrides) (tariff.Overrides, error)) ([]tariff.Warning, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	next, err := fn(current)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, next)
}

// SetSeason replaces one season's override wholesale.
func (s *OverrideStore) SetSeason(ctx context.Context, season tariff.Season, ov *tariff.Override) ([]tariff.Warning, error) {
	if !season.IsValid() {
		return nil, fmt.Errorf("%w: %q", tariff.ErrUnknownSeason, season)
	}
	return s.Update(ctx, func(current tariff.Overrides) (tariff.Overrides, error) {
		return current.With(season, ov), nil
	})
}

// ResetSeason removes one season's override so the built-in table applies.
func (s *OverrideStore) ResetSeason(ctx context.Context, season tariff.Season) error {
	_, err := s.SetSeason(ctx, season, nil)
	return err
}

// Checksum returns the SHA256 of the stored blob, or "" when none exists.
func (s *OverrideStore) Checksum(ctx context.Context) (string, error) {
	data, err := s.backend.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return ComputeChecksum(data), nil
}

// Invalidate drops the cached blob.
func (s *OverrideStore) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

func (s *OverrideStore) save(ctx context.Context, o tariff.Overrides) ([]tariff.Warning, error) {
	warnings, err := tariff.ValidateOverrides(o)
	if err != nil {
		return warnings, err
	}
	for _, w := range warnings {
		s.logger.Warn().Str("field", w.Field).Msg(w.Message)
	}

	data, err := json.Marshal(o)
	if err != nil {
		return warnings, fmt.Errorf("failed to encode overrides: %w", err)
	}
	if err := s.backend.Put(ctx, s.key, data); err != nil {
		return warnings, fmt.Errorf("failed to save overrides: %w", err)
	}

	s.store(o)
	s.logger.Info().
		Bool("summer", o.Summer != nil).
		Bool("spring", o.Spring != nil).
		Msg("Saved tariff overrides")
	return warnings, nil
}

func (s *OverrideStore) read(ctx context.Context) (tariff.Overrides, error) {
	start := time.Now()
	data, err := s.backend.Get(ctx, s.key)
	metrics.ObserveOverrideLoad(time.Since(start))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return tariff.Overrides{}, nil
		}
		return tariff.Overrides{}, fmt.Errorf("failed to load overrides: %w", err)
	}

	var o tariff.Overrides
	if len(data) == 0 {
		return o, nil
	}
	if err := json.Unmarshal(data, &o); err != nil {
		return tariff.Overrides{}, fmt.Errorf("failed to decode overrides: %w", err)
	}
	return o, nil
}

func (s *OverrideStore) fromCache() (tariff.Overrides, bool) {
	if s.ttl <= 0 {
		return tariff.Overrides{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cached == nil || s.now().Sub(s.loadedAt) >= s.ttl {
		return tariff.Overrides{}, false
	}
	return s.cached.Clone(), true
}

func (s *OverrideStore) store(o tariff.Overrides) {
	if s.ttl <= 0 {
		return
	}
	c := o.Clone()
	s.mu.Lock()
	s.cached = &c
	s.loadedAt = s.now()
	s.mu.Unlock()
}
