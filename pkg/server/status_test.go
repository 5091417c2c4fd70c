package server

import (
	"encoding/json"
	"net/http"
	"testing"
)

// TestStatusEndpoint verifies /api/status reports server identity, screen
// info, and the live client count.
func TestStatusEndpoint(t *testing.T) {
	_, _, ts := newTestServer(t)
	ws := dialWS(t, ts)
	readFrame(t, ws)

	resp, err := http.Get(ts.URL + "/api/status")
	if err != nil {
		t.Fatalf("GET /api/status failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var st statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if st.Server.Name != Name || st.Server.Version != Version {
		t.Errorf("Unexpected server info: %+v", st.Server)
	}
	if st.Screen.Width != 1920 || st.Screen.Height != 1080 {
		t.Errorf("Unexpected screen info: %+v", st.Screen)
	}
	if st.Clients != 1 {
		t.Errorf("Expected 1 client, got %d", st.Clients)
	}
}

// TestClientsEndpoint verifies /api/clients lists live connections.
func TestClientsEndpoint(t *testing.T) {
	_, _, ts := newTestServer(t)
	ws1 := dialWS(t, ts)
	ws2 := dialWS(t, ts)
	readFrame(t, ws1)
	readFrame(t, ws2)

	resp, err := http.Get(ts.URL + "/api/clients")
	if err != nil {
		t.Fatalf("GET /api/clients failed: %v", err)
	}
	defer resp.Body.Close()
	var list []clientInfo
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 clients, got %d", len(list))
	}
	if list[0].ID >= list[1].ID {
		t.Errorf("Expected ids sorted ascending, got %d then %d", list[0].ID, list[1].ID)
	}
	for _, c := range list {
		if c.RemoteAddr == "" || c.ConnectedAt == "" {
			t.Errorf("Incomplete client info: %+v", c)
		}
	}
}
