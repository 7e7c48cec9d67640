package core

// RuntimeConfig is the data handed to the host game loop at startup.
// The host owns windowing, audio playback and input polling; it reads
// what it needs from here.
type RuntimeConfig struct {
	ScreenW    int  // Window width in pixels
	ScreenH    int  // Window height in pixels
	Fullscreen bool // Whether the window starts fullscreen

	Grid Grid // Tile/pixel mapping for the arena
	Cols int  // Whole tiles that fit horizontally
	Rows int  // Whole tiles that fit vertically

	Players int // Active player slots
	Lives   int // Lives per player

	MusicVolume float64 // 0 when music is disabled
	SFXVolume   float64 // 0 when sound effects are disabled
}
