package game

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"guessgame/internal/models"
	"guessgame/internal/repository"
)

// stubRepo is a test-only in-memory implementation of repository.Repository.
// It keeps enough of the real semantics (active-guess predicate, resolve-once
// guards, due-guess ordering) for engine and poller tests to exercise the
// lifecycle end to end.
type stubRepo struct {
	players  map[uint64]*models.Player
	samples  []models.PriceSample
	guesses  map[uint64]*models.Guess
	settings map[string]*models.SystemSetting

	nextGuessID uint64
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		players:     map[uint64]*models.Player{},
		guesses:     map[uint64]*models.Guess{},
		settings:    map[string]*models.SystemSetting{},
		nextGuessID: 1,
	}
}

func (s *stubRepo) addPlayer(id uint64, score int) *models.Player {
	p := &models.Player{ID: id, ExternalID: "p", Score: score}
	s.players[id] = p
	return p
}

func (s *stubRepo) addSample(id uint64, cents int64, fetchedAt time.Time) *models.PriceSample {
	sm := models.PriceSample{ID: id, PriceCents: cents, FetchedAt: fetchedAt, SourceUpdatedAt: fetchedAt}
	s.samples = append(s.samples, sm)
	return &s.samples[len(s.samples)-1]
}

func (s *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

func (s *stubRepo) GetPlayerByExternalID(ctx context.Context, externalID string) (*models.Player, error) {
	for _, p := range s.players {
		if p.ExternalID == externalID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) CreatePlayer(ctx context.Context, item *models.Player) error {
	item.ID = uint64(len(s.players) + 1)
	s.players[item.ID] = item
	return nil
}

func (s *stubRepo) GetPlayerForUpdateTx(tx *gorm.DB, id uint64) (*models.Player, error) {
	p, ok := s.players[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *stubRepo) UpdatePlayerScoreTx(tx *gorm.DB, id uint64, score int) error {
	if p, ok := s.players[id]; ok {
		p.Score = score
	}
	return nil
}

func (s *stubRepo) LatestPriceSample(ctx context.Context) (*models.PriceSample, error) {
	if len(s.samples) == 0 {
		return nil, nil
	}
	cp := s.samples[len(s.samples)-1]
	return &cp, nil
}

func (s *stubRepo) InsertPriceSample(ctx context.Context, item *models.PriceSample) error {
	item.ID = uint64(len(s.samples) + 1)
	s.samples = append(s.samples, *item)
	return nil
}

func (s *stubRepo) ListMinuteAverages(ctx context.Context, limit int) ([]repository.MinuteAverage, error) {
	return nil, nil
}

func (s *stubRepo) activeGuess(playerID uint64, now time.Time) *models.Guess {
	var best *models.Guess
	for _, g := range s.guesses {
		if g.PlayerID != playerID || g.ResolvedAt != nil || !g.ExpiresAt.After(now) {
			continue
		}
		if best == nil || g.CreatedAt.After(best.CreatedAt) {
			best = g
		}
	}
	return best
}

func (s *stubRepo) ActiveGuess(ctx context.Context, playerID uint64, now time.Time) (*models.Guess, error) {
	if g := s.activeGuess(playerID, now); g != nil {
		cp := *g
		return &cp, nil
	}
	return nil, nil
}

func (s *stubRepo) ActiveGuessTx(tx *gorm.DB, playerID uint64, now time.Time) (*models.Guess, error) {
	if g := s.activeGuess(playerID, now); g != nil {
		cp := *g
		return &cp, nil
	}
	return nil, nil
}

func (s *stubRepo) GetGuessTx(tx *gorm.DB, id uint64) (*models.Guess, error) {
	g, ok := s.guesses[id]
	if !ok {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

func (s *stubRepo) InsertGuessTx(tx *gorm.DB, item *models.Guess) error {
	item.ID = s.nextGuessID
	s.nextGuessID++
	cp := *item
	s.guesses[item.ID] = &cp
	return nil
}

func (s *stubRepo) MarkGuessVoidTx(tx *gorm.DB, id uint64, resolvedAt time.Time, sampleID uint64) error {
	g, ok := s.guesses[id]
	if !ok || g.ResolvedAt != nil {
		return nil
	}
	t := resolvedAt
	g.ResolvedAt = &t
	g.PriceSampleIDAtResolve = &sampleID
	return nil
}

func (s *stubRepo) MarkGuessScoredTx(tx *gorm.DB, id uint64, resolvedAt time.Time, correct bool, priceAtResolve int64, sampleID uint64) error {
	g, ok := s.guesses[id]
	if !ok || g.ResolvedAt != nil {
		return nil
	}
	t := resolvedAt
	g.ResolvedAt = &t
	var v int16
	if correct {
		v = 1
	}
	g.IsCorrect = &v
	g.PriceAtResolve = &priceAtResolve
	g.PriceSampleIDAtResolve = &sampleID
	return nil
}

func (s *stubRepo) ListDueGuesses(ctx context.Context, dueBefore, now time.Time, limit int) ([]models.Guess, error) {
	var out []models.Guess
	for _, g := range s.guesses {
		if g.ResolvedAt != nil || !g.ExpiresAt.After(now) || g.CreatedAt.After(dueBefore) {
			continue
		}
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubRepo) GetSystemSettingByKey(ctx context.Context, key string) (*models.SystemSetting, error) {
	if st, ok := s.settings[key]; ok {
		cp := *st
		return &cp, nil
	}
	return nil, nil
}

func (s *stubRepo) UpsertSystemSetting(ctx context.Context, item *models.SystemSetting) error {
	s.settings[item.Key] = item
	return nil
}

func (s *stubRepo) ListSystemSettings(ctx context.Context) ([]models.SystemSetting, error) {
	out := make([]models.SystemSetting, 0, len(s.settings))
	for _, st := range s.settings {
		out = append(out, *st)
	}
	return out, nil
}

var _ repository.Repository = (*stubRepo)(nil)
