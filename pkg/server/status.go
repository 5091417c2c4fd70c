package server

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/shirou/gopsutil/v3/host"

	"lanpad/remotectl/pkg/proto"
)

type statusResponse struct {
	Server        proto.ServerInfo `json:"server"`
	Screen        proto.ScreenInfo `json:"screen"`
	Clients       int              `json:"clients"`
	UptimeSeconds int64            `json:"uptime_seconds"`
	Hostname      string           `json:"hostname,omitempty"`
	Platform      string           `json:"platform,omitempty"`
	OS            string           `json:"os,omitempty"`
	KernelArch    string           `json:"kernel_arch,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Server:        proto.ServerInfo{Name: Name, Version: Version},
		Screen:        s.inj.ScreenInfo(),
		Clients:       s.clientCount(),
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
	}
	if hi, err := host.Info(); err == nil {
		resp.Hostname = hi.Hostname
		resp.Platform = hi.Platform
		resp.OS = hi.OS
		resp.KernelArch = hi.KernelArch
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

type clientInfo struct {
	ID          int64  `json:"id"`
	RemoteAddr  string `json:"remote_addr"`
	ConnectedAt string `json:"connected_at"`
}

func (s *Server) handleClients(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	list := make([]clientInfo, 0, len(s.clients))
	for _, c := range s.clients {
		list = append(list, clientInfo{
			ID:          c.id,
			RemoteAddr:  c.remoteAddr,
			ConnectedAt: c.connectedAt.Format(time.RFC3339),
		})
	}
	s.mu.Unlock()
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}
