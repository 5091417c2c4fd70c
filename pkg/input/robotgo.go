package input

import (
	"fmt"

	"github.com/go-vgo/robotgo"
	"github.com/kbinani/screenshot"
)

// RobotgoBackend drives the host display through robotgo.
type RobotgoBackend struct{}

func NewRobotgoBackend() *RobotgoBackend { return &RobotgoBackend{} }

func (b *RobotgoBackend) ScreenSize() (int, int, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return 0, 0, fmt.Errorf("no active display")
	}
	bounds := screenshot.GetDisplayBounds(0)
	return bounds.Dx(), bounds.Dy(), nil
}

func (b *RobotgoBackend) Position() (int, int) {
	return robotgo.Location()
}

func (b *RobotgoBackend) Move(x, y int) {
	robotgo.Move(x, y)
}

func (b *RobotgoBackend) MoveRelative(dx, dy int) {
	robotgo.MoveRelative(dx, dy)
}

func (b *RobotgoBackend) Click(button string, double bool) {
	robotgo.Click(button, double)
}

func (b *RobotgoBackend) Scroll(ticks int) {
	robotgo.Scroll(0, ticks)
}

func (b *RobotgoBackend) KeyDown(key string) error {
	return robotgo.KeyToggle(key, "down")
}

func (b *RobotgoBackend) KeyUp(key string) error {
	return robotgo.KeyToggle(key, "up")
}

func (b *RobotgoBackend) KeyTap(key string, modifiers []string) error {
	if len(modifiers) == 0 {
		return robotgo.KeyTap(key)
	}
	return robotgo.KeyTap(key, modifiers)
}

func (b *RobotgoBackend) Type(text string) error {
	robotgo.TypeStr(text)
	return nil
}
