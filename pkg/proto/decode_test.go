package proto

import (
	"encoding/json"
	"errors"
	"testing"
)

// TestDecodeInvalidJSON verifies malformed payloads map to ErrInvalidJSON.
func TestDecodeInvalidJSON(t *testing.T) {
	_, tag, err := Decode([]byte("{not json"))
	if !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("Expected ErrInvalidJSON, got %v", err)
	}
	if tag != "unknown" {
		t.Errorf("Expected tag unknown, got %q", tag)
	}
}

// TestDecodeUnknownType verifies missing and unrecognized type tags.
func TestDecodeUnknownType(t *testing.T) {
	_, tag, err := Decode([]byte(`{"x":1}`))
	if !errors.Is(err, ErrUnknownType) {
		t.Errorf("Expected ErrUnknownType for missing type, got %v", err)
	}
	if tag != "unknown" {
		t.Errorf("Expected tag unknown, got %q", tag)
	}

	_, tag, err = Decode([]byte(`{"type":"teleport"}`))
	if !errors.Is(err, ErrUnknownType) {
		t.Errorf("Expected ErrUnknownType for unrecognized type, got %v", err)
	}
	if tag != "teleport" {
		t.Errorf("Expected tag teleport, got %q", tag)
	}
}

// TestDecodeMouseMove verifies required fields and the relative default.
func TestDecodeMouseMove(t *testing.T) {
	cmd, tag, err := Decode([]byte(`{"type":"mouse_move","x":10,"y":-5}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if tag != "mouse_move" {
		t.Errorf("Expected tag mouse_move, got %q", tag)
	}
	mv, ok := cmd.(MouseMove)
	if !ok {
		t.Fatalf("Expected MouseMove, got %T", cmd)
	}
	if mv.X != 10 || mv.Y != -5 || mv.Relative {
		t.Errorf("Unexpected decode: %+v", mv)
	}

	var ve *ValidationError
	_, _, err = Decode([]byte(`{"type":"mouse_move","x":10}`))
	if !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError for missing y, got %v", err)
	}
	_, _, err = Decode([]byte(`{"type":"mouse_move","x":"ten","y":3}`))
	if !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError for string x, got %v", err)
	}
}

// TestDecodeMouseClick verifies defaults and range checks.
func TestDecodeMouseClick(t *testing.T) {
	cmd, _, err := Decode([]byte(`{"type":"mouse_click"}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	mc := cmd.(MouseClick)
	if mc.Button != "left" || mc.Clicks != 1 || mc.Interval != 0 {
		t.Errorf("Unexpected defaults: %+v", mc)
	}

	var ve *ValidationError
	_, _, err = Decode([]byte(`{"type":"mouse_click","clicks":0}`))
	if !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError for clicks=0, got %v", err)
	}
	_, _, err = Decode([]byte(`{"type":"mouse_click","interval":-1}`))
	if !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError for negative interval, got %v", err)
	}
}

// TestDecodeMouseScroll verifies optional reposition coordinates.
func TestDecodeMouseScroll(t *testing.T) {
	cmd, _, err := Decode([]byte(`{"type":"mouse_scroll","clicks":-3}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	ms := cmd.(MouseScroll)
	if ms.Clicks != -3 || ms.X != nil || ms.Y != nil {
		t.Errorf("Unexpected decode: %+v", ms)
	}

	cmd, _, err = Decode([]byte(`{"type":"mouse_scroll","clicks":2,"x":100,"y":200}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	ms = cmd.(MouseScroll)
	if ms.X == nil || *ms.X != 100 || ms.Y == nil || *ms.Y != 200 {
		t.Errorf("Expected reposition coords, got %+v", ms)
	}

	var ve *ValidationError
	if _, _, err := Decode([]byte(`{"type":"mouse_scroll"}`)); !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError for missing clicks, got %v", err)
	}
}

// TestDecodeKeyPress verifies the key field is required.
func TestDecodeKeyPress(t *testing.T) {
	cmd, _, err := Decode([]byte(`{"type":"key_press","key":"ctrl+c"}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	kp := cmd.(KeyPress)
	if kp.Key != "ctrl+c" || kp.Hold || kp.Release {
		t.Errorf("Unexpected decode: %+v", kp)
	}

	var ve *ValidationError
	if _, _, err := Decode([]byte(`{"type":"key_press"}`)); !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError for missing key, got %v", err)
	}
	if _, _, err := Decode([]byte(`{"type":"key_press","key":""}`)); !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError for empty key, got %v", err)
	}
}

// TestDecodeKeyType verifies the interval default and empty text.
func TestDecodeKeyType(t *testing.T) {
	cmd, _, err := Decode([]byte(`{"type":"key_type","text":"Hi"}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	kt := cmd.(KeyType)
	if kt.Text != "Hi" || kt.Interval != 0.01 {
		t.Errorf("Unexpected decode: %+v", kt)
	}

	cmd, _, err = Decode([]byte(`{"type":"key_type","text":"","interval":0}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	kt = cmd.(KeyType)
	if kt.Text != "" || kt.Interval != 0 {
		t.Errorf("Unexpected decode: %+v", kt)
	}
}

// TestDecodePingTimestamp verifies the timestamp literal survives decoding.
func TestDecodePingTimestamp(t *testing.T) {
	cmd, _, err := Decode([]byte(`{"type":"ping","timestamp":1699999999.125}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	p := cmd.(Ping)
	if p.Timestamp.String() != "1699999999.125" {
		t.Errorf("Expected literal 1699999999.125, got %q", p.Timestamp.String())
	}

	b, err := json.Marshal(Pong{Type: MsgPong, Timestamp: p.Timestamp})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(b) != `{"type":"pong","timestamp":1699999999.125}` {
		t.Errorf("Unexpected pong encoding: %s", b)
	}
}
