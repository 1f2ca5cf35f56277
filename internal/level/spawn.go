package level

import "github.com/vovakirdan/pathquest/internal/config"

// SpawnRange maps a cumulative probability threshold to a tile type.
type SpawnRange struct {
	Type      TileType
	Threshold float64 // Draws below this (and at or above the previous entry) pick Type
}

// SpawnTable is an ordered list of cumulative ranges evaluated against a
// single uniform draw. Draws past the last threshold produce a path tile.
type SpawnTable []SpawnRange

// NewSpawnTable builds the table for a tier in the fixed order
// obstacle, hurdle, coin, hint, life, teleport, wall-break, extra moves.
func NewSpawnTable(tier config.TierBand, rates config.SpawnRates) SpawnTable {
	powerUp := rates.PowerUp / 3
	weights := []struct {
		t TileType
		p float64
	}{
		{TileObstacle, tier.ObstacleRate},
		{TileHurdle, tier.HurdleChance},
		{TileCoin, tier.CoinRate},
		{TileHint, rates.Hint},
		{TileLife, rates.Life},
		{TileTeleport, powerUp},
		{TileWallBreak, powerUp},
		{TileExtraMoves, powerUp},
	}

	table := make(SpawnTable, 0, len(weights))
	cumulative := 0.0
	for _, w := range weights {
		cumulative += w.p
		table = append(table, SpawnRange{Type: w.t, Threshold: cumulative})
	}
	return table
}

// Pick resolves a draw in [0, 1) to a tile type.
func (s SpawnTable) Pick(draw float64) TileType {
	for _, r := range s {
		if draw < r.Threshold {
			return r.Type
		}
	}
	return TilePath
}

// Probability returns the share of draws that produce t.
func (s SpawnTable) Probability(t TileType) float64 {
	prev := 0.0
	total := 0.0
	for _, r := range s {
		if r.Type == t {
			total += r.Threshold - prev
		}
		prev = r.Threshold
	}
	if t == TilePath {
		return 1 - prev
	}
	return total
}
