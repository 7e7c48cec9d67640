// Package core provides fundamental types and utilities for the arena.
// It contains no external dependencies (especially no Bubble Tea) so that
// coordinate math and action definitions stay pure and testable.
package core

import "math"

// TileSize is the default edge length of a square tile in pixels.
const TileSize = 32

// Tile is a discrete grid cell coordinate.
type Tile struct {
	Col, Row int
}

// Pixel is a continuous 2D point in pixel space.
type Pixel struct {
	X, Y float64
}

// Rect represents an axis-aligned rectangle in pixel space.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Grid maps between tile and pixel coordinates for a fixed tile size.
// The zero value uses TileSize.
//
// Pixel coordinates are float64, so tile to pixel round trips are exact
// only for tiles within MaxTile of the origin.
type Grid struct {
	size int
}

// NewGrid creates a grid with the given tile size.
// Non-positive sizes fall back to TileSize.
func NewGrid(tileSize int) Grid {
	if tileSize <= 0 {
		tileSize = TileSize
	}
	return Grid{size: tileSize}
}

// TileSize returns the tile edge length in pixels.
func (g Grid) TileSize() int {
	if g.size <= 0 {
		return TileSize
	}
	return g.size
}

// MaxTile returns the largest column or row magnitude whose center pixel
// is exactly representable, so PixelToTile(TileToPixel(t)) == t.
func (g Grid) MaxTile() int64 {
	return (1<<52)/int64(g.TileSize()) - 1
}

// InRange reports whether both coordinates of t lie within MaxTile.
func (g Grid) InRange(t Tile) bool {
	limit := g.MaxTile()
	col, row := int64(t.Col), int64(t.Row)
	return col >= -limit && col <= limit && row >= -limit && row <= limit
}

// TileToPixel returns the pixel at the center of the tile.
// The result is exact for tiles that satisfy InRange.
func (g Grid) TileToPixel(t Tile) Pixel {
	s := float64(g.TileSize())
	return Pixel{
		X: float64(t.Col)*s + s/2,
		Y: float64(t.Row)*s + s/2,
	}
}

// PixelToTile returns the tile containing p.
// Division floors, so negative pixels map to negative tiles.
func (g Grid) PixelToTile(p Pixel) Tile {
	s := float64(g.TileSize())
	return Tile{
		Col: int(math.Floor(p.X / s)),
		Row: int(math.Floor(p.Y / s)),
	}
}

// Snap moves p to the center of its containing tile.
func (g Grid) Snap(p Pixel) Pixel {
	return g.TileToPixel(g.PixelToTile(p))
}

// TileRect returns the pixel bounds of a tile.
func (g Grid) TileRect(t Tile) Rect {
	s := g.TileSize()
	return NewRect(t.Col*s, t.Row*s, s, s)
}

// Dimensions returns how many whole tiles fit in a width x height pixel area.
func (g Grid) Dimensions(width, height int) (cols, rows int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	s := g.TileSize()
	return width / s, height / s
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
