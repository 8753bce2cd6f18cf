package core

// Color is the foreground color of a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Palette used by the runner renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
	ColorOrange
	ColorGray
)

// Semantic aliases so games name what they draw rather than a hue.
const (
	ColorGround   = ColorGreen
	ColorHazard   = ColorBrightRed
	ColorObstacle = ColorOrange
	ColorPlayer   = ColorBrightCyan
	ColorFrozen   = ColorBlue
	ColorHUD      = ColorBrightYellow
	ColorDim      = ColorGray
)
