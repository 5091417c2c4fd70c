// Package input translates validated command variants into mouse and
// keyboard actions on the host.
package input

// Backend is the OS automation capability the Injector drives. The real
// implementation wraps robotgo; tests substitute a recording fake.
type Backend interface {
	// ScreenSize returns the primary display size in pixels.
	ScreenSize() (width, height int, err error)
	// Position returns the current pointer position.
	Position() (x, y int)
	Move(x, y int)
	MoveRelative(dx, dy int)
	// Click presses and releases a button; double emits a double-click.
	Click(button string, double bool)
	// Scroll emits vertical scroll ticks; positive scrolls up.
	Scroll(ticks int)
	KeyDown(key string) error
	KeyUp(key string) error
	// KeyTap presses and releases key with the given modifiers held.
	KeyTap(key string, modifiers []string) error
	// Type emits the text as keystrokes.
	Type(text string) error
}
