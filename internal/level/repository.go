package level

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Repository owns the ordered level collection and its lifecycle flags.
// Grids are generated lazily on first access; flags exist for every level
// from the start. Not safe for concurrent use; one repository per player.
type Repository struct {
	gen      *Generator
	levels   map[int]*Level
	progress []Progress // index = id-1
	logger   *log.Logger
}

// NewRepository creates a repository covering every level of the generator's
// tier table. Level 1 starts unlocked.
func NewRepository(gen *Generator, logger *log.Logger) *Repository {
	if logger == nil {
		logger = log.Default()
	}
	count := gen.Config().LastLevel()
	progress := make([]Progress, count)
	for i := range progress {
		progress[i] = Progress{ID: i + 1, Unlocked: i == 0}
	}
	return &Repository{
		gen:      gen,
		levels:   make(map[int]*Level),
		progress: progress,
		logger:   logger,
	}
}

// Count returns the number of levels.
func (r *Repository) Count() int {
	return len(r.progress)
}

// Generator returns the generator backing the repository.
func (r *Repository) Generator() *Generator {
	return r.gen
}

func (r *Repository) checkID(id int) error {
	if id < 1 || id > len(r.progress) {
		return fmt.Errorf("%w: %d", ErrUnknownLevel, id)
	}
	return nil
}

// load returns the stored level, generating it on first access.
func (r *Repository) load(id int) (*Level, error) {
	if err := r.checkID(id); err != nil {
		return nil, err
	}
	if lvl, ok := r.levels[id]; ok {
		return lvl, nil
	}
	lvl, _, err := r.gen.GenerateLevel(id)
	if err != nil {
		return nil, err
	}
	r.levels[id] = &lvl
	return &lvl, nil
}

// Get returns a copy of level id with its current progress flags.
func (r *Repository) Get(id int) (Level, error) {
	lvl, err := r.load(id)
	if err != nil {
		return Level{}, err
	}
	out := lvl.Clone()
	r.applyProgress(&out)
	return out, nil
}

// GenerateAll eagerly generates every level.
func (r *Repository) GenerateAll() error {
	for id := 1; id <= r.Count(); id++ {
		if _, err := r.load(id); err != nil {
			return err
		}
	}
	return nil
}

// Restart prepares level id for a fresh attempt: collected flags are reset,
// and a stored grid that fails validation is regenerated. The returned bool
// reports whether a repair happened.
func (r *Repository) Restart(id int) (Level, bool, error) {
	lvl, err := r.load(id)
	if err != nil {
		return Level{}, false, err
	}
	lvl.Grid.ResetCollected()

	repaired := false
	if verr := Validate(*lvl); verr != nil {
		r.logger.Warn("stored level invalid, regenerating", "level", id, "error", verr)
		fresh, _, genErr := r.gen.GenerateLevel(id)
		if genErr != nil {
			return Level{}, false, genErr
		}
		r.levels[id] = &fresh
		lvl = &fresh
		repaired = true
	}

	out := lvl.Clone()
	r.applyProgress(&out)
	return out, repaired, nil
}

// Store replaces the stored grid data of a level, e.g. when restoring a save.
// Progress flags in l are merged, never regressed.
func (r *Repository) Store(l Level) error {
	if err := r.checkID(l.ID); err != nil {
		return err
	}
	stored := l.Clone()
	r.levels[l.ID] = &stored
	r.progress[l.ID-1] = r.progress[l.ID-1].Merge(l.Progress())
	return nil
}

// RecordCompletion stores a finished attempt: stars keep their maximum, the
// level is marked completed and the next level is unlocked. It returns
// whether the star rating improved.
func (r *Repository) RecordCompletion(id, stars int) (bool, error) {
	if err := r.checkID(id); err != nil {
		return false, err
	}
	p := &r.progress[id-1]
	improved := stars > p.Stars
	*p = p.Merge(Progress{Stars: min(stars, MaxStars), Unlocked: true, Completed: true})

	if id < r.Count() {
		if err := r.Unlock(id + 1); err != nil {
			return improved, err
		}
	}
	return improved, nil
}

// Unlock marks a level playable.
func (r *Repository) Unlock(id int) error {
	if err := r.checkID(id); err != nil {
		return err
	}
	r.progress[id-1].Unlocked = true
	return nil
}

// IsUnlocked reports whether id can be started.
func (r *Repository) IsUnlocked(id int) bool {
	return r.checkID(id) == nil && r.progress[id-1].Unlocked
}

// Progress returns a copy of every level's flags, ordered by ID.
func (r *Repository) Progress() []Progress {
	out := make([]Progress, len(r.progress))
	copy(out, r.progress)
	return out
}

// RestoreProgress merges saved flags into the repository.
func (r *Repository) RestoreProgress(saved []Progress) {
	for _, p := range saved {
		if r.checkID(p.ID) != nil {
			continue
		}
		r.progress[p.ID-1] = r.progress[p.ID-1].Merge(p)
	}
}

// StoredLevels returns copies of every generated level, ordered by ID.
func (r *Repository) StoredLevels() []Level {
	out := make([]Level, 0, len(r.levels))
	for id := 1; id <= r.Count(); id++ {
		if lvl, ok := r.levels[id]; ok {
			c := lvl.Clone()
			r.applyProgress(&c)
			out = append(out, c)
		}
	}
	return out
}

// TotalStars sums the best rating of every level.
func (r *Repository) TotalStars() int {
	total := 0
	for _, p := range r.progress {
		total += p.Stars
	}
	return total
}

// CompletedCount returns how many levels have been completed.
func (r *Repository) CompletedCount() int {
	n := 0
	for _, p := range r.progress {
		if p.Completed {
			n++
		}
	}
	return n
}

// PerfectCount returns how many levels hold the maximum rating.
func (r *Repository) PerfectCount() int {
	n := 0
	for _, p := range r.progress {
		if p.Stars >= MaxStars {
			n++
		}
	}
	return n
}

func (r *Repository) applyProgress(l *Level) {
	p := r.progress[l.ID-1]
	l.Stars = p.Stars
	l.Unlocked = p.Unlocked
	l.Completed = p.Completed
}
