package proto

// Wire protocol (JSON over WebSocket)

import "encoding/json"

type MsgType string

// Client -> server command types.
const (
	CmdMouseMove    MsgType = "mouse_move"
	CmdMouseClick   MsgType = "mouse_click"
	CmdMouseScroll  MsgType = "mouse_scroll"
	CmdKeyPress     MsgType = "key_press"
	CmdKeyType      MsgType = "key_type"
	CmdMultipleKeys MsgType = "multiple_keys"
	CmdPing         MsgType = "ping"
)

// Server -> client message types.
const (
	MsgWelcome MsgType = "welcome"
	MsgPong    MsgType = "pong"
	MsgError   MsgType = "error"
)

// ScreenInfo is the primary display size, queried once at startup.
type ScreenInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Welcome is sent once when a connection opens.
type Welcome struct {
	Type       MsgType    `json:"type"`
	ClientID   int64      `json:"client_id"`
	ScreenInfo ScreenInfo `json:"screen_info"`
	ServerInfo ServerInfo `json:"server_info"`
}

// Pong echoes the ping timestamp. json.Number keeps the client's literal
// intact, so the echo is byte-exact.
type Pong struct {
	Type      MsgType     `json:"type"`
	Timestamp json.Number `json:"timestamp,omitempty"`
}

// ErrorReply reports a failed command; the connection stays open.
type ErrorReply struct {
	Type    MsgType `json:"type"`
	Command string  `json:"command"`
	Error   string  `json:"error"`
}

// Command variants. Optional coordinates use pointers so absence is
// distinguishable from zero.

type MouseMove struct {
	X        int
	Y        int
	Relative bool
}

type MouseClick struct {
	Button   string
	Clicks   int
	Interval float64 // seconds between repeated clicks
}

type MouseScroll struct {
	Clicks int // sign selects direction
	X      *int
	Y      *int
}

type KeyPress struct {
	Key     string
	Hold    bool
	Release bool
}

type KeyType struct {
	Text     string
	Interval float64 // seconds between keystrokes
}

type MultipleKeys struct {
	Keys     []string
	Interval float64 // seconds between key presses
}

type Ping struct {
	Timestamp json.Number
}
