package proto

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors for frames that never reach a command variant.
var (
	ErrInvalidJSON = errors.New("invalid json")
	ErrUnknownType = errors.New("unknown command type")
)

// ValidationError reports a malformed, missing, or out-of-range command
// field. It is recovered locally: the handler replies with an error message
// and the connection stays open.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// Decode parses a raw client frame into one of the command variants.
// The returned tag is the type string seen on the wire ("unknown" when
// absent), usable in error replies even when decoding fails.
func Decode(raw []byte) (cmd interface{}, tag string, err error) {
	var env struct {
		Type *string `json:"type"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, "unknown", ErrInvalidJSON
	}
	if env.Type == nil || *env.Type == "" {
		return nil, "unknown", ErrUnknownType
	}
	tag = *env.Type

	switch MsgType(tag) {
	case CmdMouseMove:
		cmd, err = decodeMouseMove(raw)
	case CmdMouseClick:
		cmd, err = decodeMouseClick(raw)
	case CmdMouseScroll:
		cmd, err = decodeMouseScroll(raw)
	case CmdKeyPress:
		cmd, err = decodeKeyPress(raw)
	case CmdKeyType:
		cmd, err = decodeKeyType(raw)
	case CmdMultipleKeys:
		cmd, err = decodeMultipleKeys(raw)
	case CmdPing:
		cmd, err = decodePing(raw)
	default:
		return nil, tag, ErrUnknownType
	}
	if err != nil {
		return nil, tag, err
	}
	return cmd, tag, nil
}

func decodeMouseMove(raw []byte) (MouseMove, error) {
	var aux struct {
		X        *int `json:"x"`
		Y        *int `json:"y"`
		Relative bool `json:"relative"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return MouseMove{}, validationf("invalid mouse_move fields: %v", err)
	}
	if aux.X == nil {
		return MouseMove{}, validationf("missing field: x")
	}
	if aux.Y == nil {
		return MouseMove{}, validationf("missing field: y")
	}
	return MouseMove{X: *aux.X, Y: *aux.Y, Relative: aux.Relative}, nil
}

func decodeMouseClick(raw []byte) (MouseClick, error) {
	var aux struct {
		Button   *string  `json:"button"`
		Clicks   *int     `json:"clicks"`
		Interval *float64 `json:"interval"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return MouseClick{}, validationf("invalid mouse_click fields: %v", err)
	}
	cmd := MouseClick{Button: "left", Clicks: 1, Interval: 0}
	if aux.Button != nil {
		cmd.Button = *aux.Button
	}
	if aux.Clicks != nil {
		cmd.Clicks = *aux.Clicks
	}
	if aux.Interval != nil {
		cmd.Interval = *aux.Interval
	}
	if cmd.Clicks < 1 {
		return MouseClick{}, validationf("clicks must be >= 1, got %d", cmd.Clicks)
	}
	if cmd.Interval < 0 {
		return MouseClick{}, validationf("interval must be >= 0, got %g", cmd.Interval)
	}
	return cmd, nil
}

func decodeMouseScroll(raw []byte) (MouseScroll, error) {
	var aux struct {
		Clicks *int `json:"clicks"`
		X      *int `json:"x"`
		Y      *int `json:"y"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return MouseScroll{}, validationf("invalid mouse_scroll fields: %v", err)
	}
	if aux.Clicks == nil {
		return MouseScroll{}, validationf("missing field: clicks")
	}
	return MouseScroll{Clicks: *aux.Clicks, X: aux.X, Y: aux.Y}, nil
}

func decodeKeyPress(raw []byte) (KeyPress, error) {
	var aux struct {
		Key     *string `json:"key"`
		Hold    bool    `json:"hold"`
		Release bool    `json:"release"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return KeyPress{}, validationf("invalid key_press fields: %v", err)
	}
	if aux.Key == nil || *aux.Key == "" {
		return KeyPress{}, validationf("missing field: key")
	}
	return KeyPress{Key: *aux.Key, Hold: aux.Hold, Release: aux.Release}, nil
}

func decodeKeyType(raw []byte) (KeyType, error) {
	var aux struct {
		Text     *string  `json:"text"`
		Interval *float64 `json:"interval"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return KeyType{}, validationf("invalid key_type fields: %v", err)
	}
	cmd := KeyType{Interval: 0.01}
	if aux.Text != nil {
		cmd.Text = *aux.Text
	}
	if aux.Interval != nil {
		cmd.Interval = *aux.Interval
	}
	if cmd.Interval < 0 {
		return KeyType{}, validationf("interval must be >= 0, got %g", cmd.Interval)
	}
	return cmd, nil
}

func decodeMultipleKeys(raw []byte) (MultipleKeys, error) {
	var aux struct {
		Keys     []string `json:"keys"`
		Interval *float64 `json:"interval"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return MultipleKeys{}, validationf("invalid multiple_keys fields: %v", err)
	}
	cmd := MultipleKeys{Keys: aux.Keys, Interval: 0.1}
	if aux.Interval != nil {
		cmd.Interval = *aux.Interval
	}
	if cmd.Interval < 0 {
		return MultipleKeys{}, validationf("interval must be >= 0, got %g", cmd.Interval)
	}
	return cmd, nil
}

func decodePing(raw []byte) (Ping, error) {
	var aux struct {
		Timestamp json.Number `json:"timestamp"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return Ping{}, validationf("invalid ping fields: %v", err)
	}
	return Ping{Timestamp: aux.Timestamp}, nil
}
