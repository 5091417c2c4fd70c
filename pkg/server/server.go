// Package server owns the listener lifecycle and the per-connection
// command dispatch.
package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"

	"lanpad/remotectl/pkg/config"
	"lanpad/remotectl/pkg/input"
)

const (
	Name    = "remote-control"
	Version = "1.0"
)

// Discovery is the service-advertisement capability. Registration failures
// are never fatal: the server keeps serving directly-connected clients.
type Discovery interface {
	Register() error
	Unregister() error
}

type Server struct {
	cfg  config.ServerConfig
	inj  *input.Injector
	disc Discovery

	httpSrv *http.Server
	mu      sync.Mutex
	clients map[int64]*client
	nextID  atomic.Int64
	started time.Time
}

func New(cfg config.ServerConfig, inj *input.Injector, disc Discovery) *Server {
	return &Server{
		cfg:     cfg,
		inj:     inj,
		disc:    disc,
		clients: make(map[int64]*client),
	}
}

// Start binds the listener and then registers discovery. A bind failure is
// returned to the caller and aborts startup; a discovery failure is only
// logged.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr(), err)
	}
	s.started = time.Now()
	s.httpSrv = &http.Server{Handler: s.routes()}
	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Printf("serve error: %v", err)
		}
	}()
	log.Printf("listening on %s", s.cfg.Addr())

	if s.disc != nil {
		if err := s.disc.Register(); err != nil {
			log.Printf("discovery registration failed (continuing without): %v", err)
		}
	}
	return nil
}

// Stop tears down in contract order: discovery unregistered first, then
// open connections, then the listener.
func (s *Server) Stop() error {
	if s.disc != nil {
		if err := s.disc.Unregister(); err != nil {
			log.Printf("discovery unregister failed: %v", err)
		}
	}

	s.mu.Lock()
	for _, c := range s.clients {
		c.cancel()
		_ = c.ws.Close()
	}
	s.mu.Unlock()

	if s.httpSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpSrv.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	log.Printf("server stopped")
	return nil
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/ws", s.handleWS)
	r.HandleFunc("/api/status", s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/api/clients", s.handleClients).Methods(http.MethodGet)
	return r
}

func (s *Server) addClient(c *client) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c.id] = c
	return len(s.clients)
}

func (s *Server) removeClient(c *client) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, c.id)
	return len(s.clients)
}

func (s *Server) clientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}
