package core

// Color represents a foreground color for a screen cell.
// The platform layer maps these to terminal styles.
type Color uint8

// Colors used by the flappy renderer.
const (
	ColorDefault Color = iota
	ColorSky
	ColorBird
	ColorPipe
	ColorPipeCap
	ColorGround
	ColorText
	ColorAlert
	ColorDim
)
