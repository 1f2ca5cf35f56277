// Package level builds and stores PathQuest levels: tile grids, the
// connectivity checks that keep them solvable, the carver that repairs them,
// the tiered generator and the repository that tracks per-level progress.
package level

import "fmt"

// TileType is the content of one grid cell. Exactly one type per cell.
type TileType uint8

const (
	TilePath TileType = iota
	TileObstacle
	TileStart
	TileGoal
	TileHurdle
	TileCoin
	TileHint
	TileLife
	TileTeleport
	TileWallBreak
	TileExtraMoves
)

var tileNames = [...]string{
	TilePath:       "path",
	TileObstacle:   "obstacle",
	TileStart:      "start",
	TileGoal:       "goal",
	TileHurdle:     "hurdle",
	TileCoin:       "coin",
	TileHint:       "hint",
	TileLife:       "life",
	TileTeleport:   "powerup_teleport",
	TileWallBreak:  "powerup_wallbreak",
	TileExtraMoves: "powerup_extramoves",
}

// ASCII glyphs used by Grid.String and ParseGrid.
var tileGlyphs = [...]byte{
	TilePath:       '.',
	TileObstacle:   '#',
	TileStart:      'S',
	TileGoal:       'G',
	TileHurdle:     'H',
	TileCoin:       'c',
	TileHint:       '?',
	TileLife:       '+',
	TileTeleport:   'T',
	TileWallBreak:  'W',
	TileExtraMoves: 'E',
}

// Default display colours per tile type.
var tileColors = [...]string{
	TilePath:       "#3a3a3a",
	TileObstacle:   "#6b4f3a",
	TileStart:      "#4fc3f7",
	TileGoal:       "#81c784",
	TileHurdle:     "#ff8a65",
	TileCoin:       "#ffd54f",
	TileHint:       "#ba68c8",
	TileLife:       "#e57373",
	TileTeleport:   "#64b5f6",
	TileWallBreak:  "#a1887f",
	TileExtraMoves: "#4db6ac",
}

// String returns the stable name used in config files and saves.
func (t TileType) String() string {
	if int(t) < len(tileNames) {
		return tileNames[t]
	}
	return fmt.Sprintf("tile(%d)", uint8(t))
}

// ParseTileType converts a name produced by String back to a TileType.
func ParseTileType(s string) (TileType, error) {
	for i, name := range tileNames {
		if name == s {
			return TileType(i), nil
		}
	}
	return TilePath, fmt.Errorf("unknown tile type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t TileType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TileType) UnmarshalText(b []byte) error {
	v, err := ParseTileType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Glyph returns the single-character ASCII representation.
func (t TileType) Glyph() byte {
	if int(t) < len(tileGlyphs) {
		return tileGlyphs[t]
	}
	return '?'
}

// Passable reports whether a player may stand on this tile.
func (t TileType) Passable() bool {
	return t != TileObstacle
}

// Collectible reports whether stepping on the tile grants a one-time reward.
func (t TileType) Collectible() bool {
	switch t {
	case TileCoin, TileHint, TileLife, TileTeleport, TileWallBreak, TileExtraMoves:
		return true
	}
	return false
}

// PowerUp is a one-shot special action held in the player's inventory.
type PowerUp string

const (
	PowerUpTeleport   PowerUp = "teleport"
	PowerUpWallBreak  PowerUp = "wallbreak"
	PowerUpExtraMoves PowerUp = "extramoves"
)

// PowerUps lists every power-up kind.
var PowerUps = []PowerUp{PowerUpTeleport, PowerUpWallBreak, PowerUpExtraMoves}

// IsValid returns true if p is a known power-up.
func (p PowerUp) IsValid() bool {
	switch p {
	case PowerUpTeleport, PowerUpWallBreak, PowerUpExtraMoves:
		return true
	}
	return false
}

// PowerUp returns the power-up granted by a tile, if any.
func (t TileType) PowerUp() (PowerUp, bool) {
	switch t {
	case TileTeleport:
		return PowerUpTeleport, true
	case TileWallBreak:
		return PowerUpWallBreak, true
	case TileExtraMoves:
		return PowerUpExtraMoves, true
	}
	return "", false
}

// Tile is one grid cell.
type Tile struct {
	Type      TileType `json:"type" yaml:"type"`
	Color     string   `json:"color,omitempty" yaml:"color,omitempty"`
	Collected bool     `json:"collected,omitempty" yaml:"collected,omitempty"`
}

// NewTile returns an uncollected tile with the type's default colour.
func NewTile(t TileType) Tile {
	color := ""
	if int(t) < len(tileColors) {
		color = tileColors[t]
	}
	return Tile{Type: t, Color: color}
}

// Pending reports whether the tile still holds an unclaimed reward.
func (t Tile) Pending() bool {
	return t.Type.Collectible() && !t.Collected
}
