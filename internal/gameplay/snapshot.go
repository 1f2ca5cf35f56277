package gameplay

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/vovakirdan/pathquest/internal/level"
)

// SnapshotVersion is the current save format.
const SnapshotVersion = 2

// Snapshot is a complete save: player state plus per-level progress.
// Level grids are not saved; they regenerate from Seed.
type Snapshot struct {
	Version  int              `json:"version"`
	PlayerID string           `json:"playerId"`
	Seed     int64            `json:"seed"`
	SavedAt  time.Time        `json:"savedAt"`
	State    GameState        `json:"state"`
	Levels   []level.Progress `json:"levels"`
}

// Snapshot captures state and the repository's progress.
func (e *Engine) Snapshot(state GameState, playerID string) Snapshot {
	return Snapshot{
		Version:  SnapshotVersion,
		PlayerID: playerID,
		Seed:     e.repo.Generator().Seed(),
		SavedAt:  e.clock(),
		State:    state.Clone(),
		Levels:   e.repo.Progress(),
	}
}

// Restore merges a snapshot's level progress into the repository and returns
// its state. An attempt in progress comes back idle when it cannot be resumed
// against the repository's current grid.
func (e *Engine) Restore(snap Snapshot) (GameState, error) {
	if snap.Version != SnapshotVersion {
		return GameState{}, fmt.Errorf("restore: snapshot version %d, want %d", snap.Version, SnapshotVersion)
	}
	e.repo.RestoreProgress(snap.Levels)

	state := snap.State.Clone()
	if state.IsPlaying() {
		lvl, err := e.repo.Get(state.CurrentLevelID)
		if err != nil || len(state.Board) != lvl.Size() || !state.Board.InBounds(state.PlayerPos) {
			e.logger.Warn("saved attempt cannot be resumed", "level", state.CurrentLevelID)
			state.Status = StatusIdle
			state.Board = nil
			state.HintPath = nil
		}
	}
	state, _ = e.EvaluateAchievements(state)
	return state, nil
}

// EncodeSnapshot serialises a snapshot.
func EncodeSnapshot(snap Snapshot) ([]byte, error) {
	snap.Version = SnapshotVersion
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a snapshot, migrating older versions forward.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}

	version := 1
	if v, ok := raw["version"]; ok {
		if err := json.Unmarshal(v, &version); err != nil {
			return Snapshot{}, fmt.Errorf("decode snapshot version: %w", err)
		}
	}
	if version > SnapshotVersion {
		return Snapshot{}, fmt.Errorf("decode snapshot: version %d is newer than %d", version, SnapshotVersion)
	}

	for version < SnapshotVersion {
		migrate, ok := migrations[version]
		if !ok {
			return Snapshot{}, fmt.Errorf("decode snapshot: no migration from version %d", version)
		}
		if err := migrate(raw); err != nil {
			return Snapshot{}, fmt.Errorf("decode snapshot: migrate v%d: %w", version, err)
		}
		version++
	}

	migrated, err := json.Marshal(raw)
	if err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(migrated, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	snap.Version = SnapshotVersion
	return snap, nil
}

// migrations upgrade a raw snapshot from the keyed version to the next.
var migrations = map[int]func(raw map[string]json.RawMessage) error{
	1: migrateV1,
}

// migrateV1 upgrades saves that kept level progress inside the state as
// "levelStars", a map of level ID to stars.
func migrateV1(raw map[string]json.RawMessage) error {
	stateRaw, ok := raw["state"]
	if !ok {
		return nil
	}
	var state map[string]json.RawMessage
	if err := json.Unmarshal(stateRaw, &state); err != nil {
		return err
	}

	starsRaw, ok := state["levelStars"]
	if !ok {
		return nil
	}
	var stars map[int]int
	if err := json.Unmarshal(starsRaw, &stars); err != nil {
		return err
	}
	delete(state, "levelStars")

	levels := make([]level.Progress, 0, len(stars)+1)
	for _, id := range slices.Sorted(maps.Keys(stars)) {
		s := stars[id]
		levels = append(levels, level.Progress{ID: id, Stars: s, Unlocked: true, Completed: s > 0})
		if s > 0 {
			levels = append(levels, level.Progress{ID: id + 1, Unlocked: true})
		}
	}

	var err error
	if raw["levels"], err = json.Marshal(levels); err != nil {
		return err
	}
	raw["state"], err = json.Marshal(state)
	return err
}
