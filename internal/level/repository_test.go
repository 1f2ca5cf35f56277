package level

import (
	"errors"
	"testing"
)

func newTestRepository(seed int64) *Repository {
	return NewRepository(newTestGenerator(seed), quietLogger())
}

func TestRepositoryInitialState(t *testing.T) {
	repo := newTestRepository(1)

	if repo.Count() != 200 {
		t.Errorf("Count() = %d, want 200", repo.Count())
	}
	if !repo.IsUnlocked(1) {
		t.Error("level 1 should start unlocked")
	}
	if repo.IsUnlocked(2) || repo.IsUnlocked(0) || repo.IsUnlocked(201) {
		t.Error("only level 1 should start unlocked")
	}
	if len(repo.StoredLevels()) != 0 {
		t.Error("levels should be generated lazily")
	}
}

func TestRepositoryGet(t *testing.T) {
	repo := newTestRepository(5)

	first, err := repo.Get(42)
	if err != nil {
		t.Fatal(err)
	}
	second, _ := repo.Get(42)
	if !first.Grid.Equal(second.Grid) {
		t.Error("repeated Get should return the stored grid")
	}

	// Mutating a returned copy must not leak into the repository.
	first.Grid.SetType(first.Goal, TileObstacle)
	third, _ := repo.Get(42)
	if third.Grid.At(third.Goal).Type != TileGoal {
		t.Error("Get returned a grid aliased to the stored level")
	}

	if _, err := repo.Get(0); !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("Get(0) error = %v, want ErrUnknownLevel", err)
	}
	if len(repo.StoredLevels()) != 1 {
		t.Errorf("StoredLevels() has %d entries, want 1", len(repo.StoredLevels()))
	}
}

func TestRepositoryRecordCompletion(t *testing.T) {
	repo := newTestRepository(5)

	improved, err := repo.RecordCompletion(1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !improved {
		t.Error("first completion should improve the rating")
	}
	if !repo.IsUnlocked(2) {
		t.Error("completing level 1 should unlock level 2")
	}
	if err := repo.Unlock(4); err != nil || !repo.IsUnlocked(4) || repo.IsUnlocked(3) {
		t.Errorf("Unlock(4) = %v; only level 4 should open", err)
	}
	if err := repo.Unlock(201); !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("Unlock(201) error = %v, want ErrUnknownLevel", err)
	}

	improved, _ = repo.RecordCompletion(1, 1)
	if improved {
		t.Error("a lower rating should not count as improved")
	}
	lvl, _ := repo.Get(1)
	if lvl.Stars != 2 || !lvl.Completed {
		t.Errorf("level 1 = %d stars completed=%v, want 2 stars completed", lvl.Stars, lvl.Completed)
	}

	repo.RecordCompletion(1, 5)
	lvl, _ = repo.Get(1)
	if lvl.Stars != MaxStars {
		t.Errorf("stars = %d, want capped at %d", lvl.Stars, MaxStars)
	}

	if _, err := repo.RecordCompletion(200, 3); err != nil {
		t.Errorf("completing the last level: %v", err)
	}
	if _, err := repo.RecordCompletion(201, 3); !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("RecordCompletion(201) error = %v, want ErrUnknownLevel", err)
	}

	if got := repo.TotalStars(); got != 6 {
		t.Errorf("TotalStars() = %d, want 6", got)
	}
	if got := repo.CompletedCount(); got != 2 {
		t.Errorf("CompletedCount() = %d, want 2", got)
	}
	if got := repo.PerfectCount(); got != 2 {
		t.Errorf("PerfectCount() = %d, want 2", got)
	}
}

func TestRepositoryRestartResetsCollected(t *testing.T) {
	repo := newTestRepository(8)
	lvl, err := repo.Get(10)
	if err != nil {
		t.Fatal(err)
	}

	stored := repo.levels[10]
	for r := range stored.Grid {
		for c := range stored.Grid[r] {
			stored.Grid[r][c].Collected = true
		}
	}

	restarted, repaired, err := repo.Restart(10)
	if err != nil {
		t.Fatal(err)
	}
	if repaired {
		t.Error("a valid level should not be regenerated")
	}
	for r := range restarted.Grid {
		for c := range restarted.Grid[r] {
			if restarted.Grid[r][c].Collected {
				t.Fatalf("tile (%d,%d) still collected after restart", r, c)
			}
		}
	}
	if !restarted.Grid.Equal(lvl.Grid) {
		t.Error("restart should keep the same layout")
	}
}

func TestRepositoryRestartRepairsInvalidLevel(t *testing.T) {
	repo := newTestRepository(8)
	repo.RecordCompletion(3, 2)

	broken, err := repo.Get(3)
	if err != nil {
		t.Fatal(err)
	}
	want := broken.MoveBudget
	broken.MoveBudget = 0
	if err := repo.Store(broken); err != nil {
		t.Fatal(err)
	}

	fixed, repaired, err := repo.Restart(3)
	if err != nil {
		t.Fatal(err)
	}
	if !repaired {
		t.Fatal("expected the stored level to be regenerated")
	}
	if err := Validate(fixed); err != nil {
		t.Errorf("repaired level invalid: %v", err)
	}
	if fixed.MoveBudget != want {
		t.Errorf("MoveBudget = %d, want regenerated %d", fixed.MoveBudget, want)
	}
	if fixed.Stars != 2 || !fixed.Completed {
		t.Error("progress should survive a repair")
	}
}

func TestRepositoryRestoreProgress(t *testing.T) {
	repo := newTestRepository(2)
	repo.RecordCompletion(1, 3)

	repo.RestoreProgress([]Progress{
		{ID: 1, Stars: 1},
		{ID: 2, Stars: 2, Unlocked: true, Completed: true},
		{ID: 999, Stars: 3},
	})

	p := repo.Progress()
	if p[0].Stars != 3 {
		t.Errorf("restore regressed level 1 to %d stars", p[0].Stars)
	}
	if p[1].Stars != 2 || !p[1].Completed {
		t.Errorf("level 2 progress = %+v", p[1])
	}
	if !repo.IsUnlocked(2) {
		t.Error("level 2 should be unlocked")
	}
}

func TestRepositoryGenerateAll(t *testing.T) {
	repo := newTestRepository(4)
	if err := repo.GenerateAll(); err != nil {
		t.Fatal(err)
	}
	levels := repo.StoredLevels()
	if len(levels) != 200 {
		t.Fatalf("StoredLevels() = %d, want 200", len(levels))
	}

	lazy := newTestRepository(4)
	l150, _ := lazy.Get(150)
	if !l150.Grid.Equal(levels[149].Grid) {
		t.Error("eager and lazy generation differ for the same seed")
	}
}
