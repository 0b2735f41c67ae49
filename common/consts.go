package common

const (
	// BaseWidth and BaseHeight are the logical screen size. Levels larger
	// than this are scrolled by render.Camera.
	BaseWidth  = 1024
	BaseHeight = 576

	TileSize = 32
)
