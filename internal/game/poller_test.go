package game

import (
	"context"
	"testing"
	"time"
)

func testPoller(repo *stubRepo, now time.Time) *Poller {
	return &Poller{
		Repo:   repo,
		Engine: testEngine(repo, now),
		Config: testGameConfig,
		Now:    func() time.Time { return now },
	}
}

func TestPollerResolvesDueGuesses(t *testing.T) {
	start := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	repo := newStubRepo()
	repo.addPlayer(1, 0)
	repo.addSample(1, 5000000, start)
	e := testEngine(repo, start)

	created, err := e.CreateGuess(context.Background(), 1, Up)
	if err != nil {
		t.Fatalf("CreateGuess: %v", err)
	}

	// Past window + buffer the poller settles the guess on its own.
	now := start.Add(testGameConfig.ResolutionWindow + testGameConfig.ResolutionBuffer + time.Second)
	repo.addSample(2, 5030000, now)
	p := testPoller(repo, now)

	if err := p.RunCycle(context.Background()); err != nil {
		t.Fatalf("RunCycle: %v", err)
	}
	g := repo.guesses[created.ID]
	if g.ResolvedAt == nil {
		t.Fatalf("expected guess resolved by poller")
	}
	if g.IsCorrect == nil || *g.IsCorrect != 1 {
		t.Fatalf("is_correct = %v", g.IsCorrect)
	}
	if repo.players[1].Score != 1 {
		t.Fatalf("score = %d, want 1", repo.players[1].Score)
	}
}

func TestPollerSkipsGuessesInsideWindow(t *testing.T) {
	start := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	repo := newStubRepo()
	repo.addPlayer(1, 0)
	repo.addSample(1, 5000000, start)
	e := testEngine(repo, start)

	created, err := e.CreateGuess(context.Background(), 1, Up)
	if err != nil {
		t.Fatalf("CreateGuess: %v", err)
	}

	// Inside the window (plus buffer) the manual resolve path still owns the
	// guess; the poller must leave it alone.
	now := start.Add(testGameConfig.ResolutionWindow + testGameConfig.ResolutionBuffer - time.Second)
	repo.addSample(2, 5030000, now)
	p := testPoller(repo, now)

	if err := p.RunCycle(context.Background()); err != nil {
		t.Fatalf("RunCycle: %v", err)
	}
	if repo.guesses[created.ID].ResolvedAt != nil {
		t.Fatalf("poller must not touch a guess inside its window")
	}
	if repo.players[1].Score != 0 {
		t.Fatalf("score = %d, want 0", repo.players[1].Score)
	}
}

func TestPollerContinuesAfterGuessFailure(t *testing.T) {
	start := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	repo := newStubRepo()
	repo.addPlayer(1, 0)
	repo.addPlayer(2, 0)
	repo.addSample(1, 5000000, start)
	e := testEngine(repo, start)

	bad, err := e.CreateGuess(context.Background(), 1, Up)
	if err != nil {
		t.Fatalf("CreateGuess: %v", err)
	}
	good, err := e.CreateGuess(context.Background(), 2, Up)
	if err != nil {
		t.Fatalf("CreateGuess: %v", err)
	}

	// Deleting player 1 makes its resolution fail inside the transaction.
	delete(repo.players, 1)

	now := start.Add(testGameConfig.ResolutionWindow + testGameConfig.ResolutionBuffer + time.Second)
	repo.addSample(2, 5030000, now)
	p := testPoller(repo, now)

	if err := p.RunCycle(context.Background()); err != nil {
		t.Fatalf("RunCycle: %v", err)
	}
	if repo.guesses[bad.ID].ResolvedAt != nil {
		t.Fatalf("failed guess must stay unresolved")
	}
	if repo.guesses[good.ID].ResolvedAt == nil {
		t.Fatalf("failure on one guess must not abort the batch")
	}
	if repo.players[2].Score != 1 {
		t.Fatalf("score = %d, want 1", repo.players[2].Score)
	}
}

func TestPollerVoidsOnUnchangedPrice(t *testing.T) {
	start := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	repo := newStubRepo()
	repo.addPlayer(1, 4)
	repo.addSample(1, 5000000, start)
	e := testEngine(repo, start)

	created, err := e.CreateGuess(context.Background(), 1, Up)
	if err != nil {
		t.Fatalf("CreateGuess: %v", err)
	}

	now := start.Add(testGameConfig.ResolutionWindow + testGameConfig.ResolutionBuffer + time.Second)
	repo.addSample(2, 5000000, now)
	repo.guesses[created.ID].ExpiresAt = now.Add(time.Minute)
	p := testPoller(repo, now)

	if err := p.RunCycle(context.Background()); err != nil {
		t.Fatalf("RunCycle: %v", err)
	}
	g := repo.guesses[created.ID]
	if g.ResolvedAt == nil || g.IsCorrect != nil {
		t.Fatalf("expected void consumption, got %+v", g)
	}
	if repo.players[1].Score != 4 {
		t.Fatalf("score = %d, want unchanged 4", repo.players[1].Score)
	}
}
