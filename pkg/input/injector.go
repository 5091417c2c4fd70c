package input

import (
	"context"
	"log"
	"time"

	"lanpad/remotectl/pkg/logging"
	"lanpad/remotectl/pkg/proto"
)

var mouseButtons = map[string]string{
	"left":   "left",
	"right":  "right",
	"middle": "center",
}

// Injector performs validated commands against a Backend. Screen size is
// queried once at construction and reused; a runtime display change is not
// picked up.
type Injector struct {
	backend Backend
	width   int
	height  int
}

// NewInjector queries the screen once and fails when no display is
// available.
func NewInjector(b Backend) (*Injector, error) {
	w, h, err := b.ScreenSize()
	if err != nil {
		return nil, &InjectionError{Op: "screen size", Err: err}
	}
	log.Printf("screen resolution: %dx%d", w, h)
	return &Injector{backend: b, width: w, height: h}, nil
}

// ScreenInfo returns the cached display size.
func (inj *Injector) ScreenInfo() proto.ScreenInfo {
	return proto.ScreenInfo{Width: inj.width, Height: inj.height}
}

// checkFailsafe refuses to act while the pointer sits in the top-left
// corner, mirroring the automation failsafe contract.
func (inj *Injector) checkFailsafe(op string) error {
	x, y := inj.backend.Position()
	if x == 0 && y == 0 {
		return &AbortedError{Op: op}
	}
	return nil
}

func (inj *Injector) clamp(x, y int) (int, int) {
	if x < 0 {
		x = 0
	}
	if x > inj.width-1 {
		x = inj.width - 1
	}
	if y < 0 {
		y = 0
	}
	if y > inj.height-1 {
		y = inj.height - 1
	}
	return x, y
}

// Move repositions the pointer. Absolute coordinates are clamped into the
// screen bounds first.
func (inj *Injector) Move(cmd proto.MouseMove) error {
	if err := inj.checkFailsafe("mouse_move"); err != nil {
		return err
	}
	if cmd.Relative {
		inj.backend.MoveRelative(cmd.X, cmd.Y)
		logging.Debugf("mouse moved by (%d, %d)", cmd.X, cmd.Y)
		return nil
	}
	x, y := inj.clamp(cmd.X, cmd.Y)
	inj.backend.Move(x, y)
	logging.Debugf("mouse moved to (%d, %d)", x, y)
	return nil
}

// Click emits one or more clicks. The "double" button is a compound
// double-click; repeat count and interval do not apply to it.
func (inj *Injector) Click(ctx context.Context, cmd proto.MouseClick) error {
	if err := inj.checkFailsafe("mouse_click"); err != nil {
		return err
	}
	if cmd.Button == "double" {
		inj.backend.Click("left", true)
		logging.Debugf("mouse double click")
		return nil
	}
	btn, ok := mouseButtons[cmd.Button]
	if !ok {
		return &proto.ValidationError{Reason: "unknown mouse button: " + cmd.Button}
	}
	for i := 0; i < cmd.Clicks; i++ {
		if i > 0 {
			if err := sleepCtx(ctx, seconds(cmd.Interval)); err != nil {
				return err
			}
			if err := inj.checkFailsafe("mouse_click"); err != nil {
				return err
			}
		}
		inj.backend.Click(btn, false)
	}
	logging.Debugf("mouse %s click, %d times", cmd.Button, cmd.Clicks)
	return nil
}

// Scroll optionally repositions the pointer, then emits vertical scroll
// ticks; the sign of clicks selects the direction.
func (inj *Injector) Scroll(cmd proto.MouseScroll) error {
	if cmd.Clicks == 0 {
		return &proto.ValidationError{Reason: "scroll clicks must be non-zero"}
	}
	if err := inj.checkFailsafe("mouse_scroll"); err != nil {
		return err
	}
	if cmd.X != nil && cmd.Y != nil {
		x, y := inj.clamp(*cmd.X, *cmd.Y)
		inj.backend.Move(x, y)
	}
	inj.backend.Scroll(cmd.Clicks)
	logging.Debugf("scrolled %d ticks", cmd.Clicks)
	return nil
}

// KeyPress handles single keys and +-joined combinations. hold presses
// without releasing; release lifts previously held keys (reversed order for
// combinations); otherwise the press is atomic.
func (inj *Injector) KeyPress(cmd proto.KeyPress) error {
	if err := inj.checkFailsafe("key_press"); err != nil {
		return err
	}
	keys, err := mapCombo(cmd.Key)
	if err != nil {
		return err
	}
	switch {
	case cmd.Hold:
		for _, k := range keys {
			if err := inj.backend.KeyDown(k); err != nil {
				return &InjectionError{Op: "key down " + k, Err: err}
			}
		}
		logging.Debugf("key down: %s", cmd.Key)
	case cmd.Release:
		for i := len(keys) - 1; i >= 0; i-- {
			if err := inj.backend.KeyUp(keys[i]); err != nil {
				return &InjectionError{Op: "key up " + keys[i], Err: err}
			}
		}
		logging.Debugf("key up: %s", cmd.Key)
	default:
		tap := keys[len(keys)-1]
		mods := keys[:len(keys)-1]
		if err := inj.backend.KeyTap(tap, mods); err != nil {
			return &InjectionError{Op: "key tap " + cmd.Key, Err: err}
		}
		logging.Debugf("key press: %s", cmd.Key)
	}
	return nil
}

// TypeText emits each character as a keystroke with interval pacing.
// Empty text is a no-op.
func (inj *Injector) TypeText(ctx context.Context, cmd proto.KeyType) error {
	if cmd.Text == "" {
		return nil
	}
	if err := inj.checkFailsafe("key_type"); err != nil {
		return err
	}
	first := true
	for _, r := range cmd.Text {
		if !first {
			if err := sleepCtx(ctx, seconds(cmd.Interval)); err != nil {
				return err
			}
			if err := inj.checkFailsafe("key_type"); err != nil {
				return err
			}
		}
		first = false
		if err := inj.backend.Type(string(r)); err != nil {
			return &InjectionError{Op: "type text", Err: err}
		}
	}
	logging.Debugf("typed %d characters", len([]rune(cmd.Text)))
	return nil
}

// PressKeys taps a sequence of keys with interval pacing between them.
func (inj *Injector) PressKeys(ctx context.Context, cmd proto.MultipleKeys) error {
	for i, k := range cmd.Keys {
		if i > 0 {
			if err := sleepCtx(ctx, seconds(cmd.Interval)); err != nil {
				return err
			}
		}
		if err := inj.KeyPress(proto.KeyPress{Key: k}); err != nil {
			return err
		}
	}
	return nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// sleepCtx waits for d or until ctx is cancelled, whichever comes first.
// Pacing is local to one connection's dispatch goroutine.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
