package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	svc "github.com/kardianos/service"

	"lanpad/remotectl/pkg/config"
	"lanpad/remotectl/pkg/input"
	"lanpad/remotectl/pkg/logging"
	"lanpad/remotectl/pkg/mdns"
	"lanpad/remotectl/pkg/server"
)

func main() {
	var cfgPath string
	var svcCmd string
	var svcName string
	flag.StringVar(&cfgPath, "config", "config/server.json", "server config file (json), priority: file > env > default")
	flag.StringVar(&svcCmd, "service", "", "service control: install|uninstall|start|stop|run")
	flag.StringVar(&svcName, "svcname", "RemoteControlServer", "service name")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("config load warning: %v", err)
		// continue with defaults/env
		cfg, err = config.Load("")
		if err != nil {
			log.Fatalf("config error: %v", err)
		}
	}
	logging.Setup("server", cfg.LogLevel)

	if svcCmd != "" {
		if err := handleServiceCmd(svcCmd, svcName, cfg, cfgPath); err != nil {
			log.Fatalf("service %s failed: %v", svcCmd, err)
		}
		return
	}

	srv, err := buildServer(cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	if err := srv.Start(); err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	if cfgPath != "" {
		go watchConfig(cfgPath)
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	<-sigc
	log.Printf("shutdown signal received")
	if err := srv.Stop(); err != nil {
		log.Printf("stop error: %v", err)
	}
}

// buildServer wires the injector, discovery registrar, and orchestrator.
// Fails when no display is available or the screen cannot be queried.
func buildServer(cfg config.ServerConfig) (*server.Server, error) {
	inj, err := input.NewInjector(input.NewRobotgoBackend())
	if err != nil {
		return nil, err
	}
	reg := mdns.New(cfg, inj.ScreenInfo(), server.Version)
	return server.New(cfg, inj, reg), nil
}

// ---- Service integration ----

type program struct {
	cfg     config.ServerConfig
	cfgPath string
	srv     *server.Server
}

func (p *program) Start(s svc.Service) error {
	srv, err := buildServer(p.cfg)
	if err != nil {
		return err
	}
	p.srv = srv
	if err := p.srv.Start(); err != nil {
		return err
	}
	if p.cfgPath != "" {
		go watchConfig(p.cfgPath)
	}
	return nil
}

func (p *program) Stop(s svc.Service) error {
	if p.srv == nil {
		return nil
	}
	return p.srv.Stop()
}

func handleServiceCmd(cmd, name string, cfg config.ServerConfig, cfgPath string) error {
	sc := &svc.Config{
		Name:        name,
		DisplayName: name,
		Description: "LAN remote-control server (WebSocket + mDNS)",
		Arguments:   []string{"-config", cfgPath, "-service", "run"},
		Option:      map[string]interface{}{"Restart": "on-failure", "RunAtLoad": true, "StartType": "automatic"},
	}
	p := &program{cfg: cfg, cfgPath: cfgPath}
	s, err := svc.New(p, sc)
	if err != nil {
		return err
	}
	switch strings.ToLower(cmd) {
	case "install":
		return s.Install()
	case "uninstall":
		return s.Uninstall()
	case "start":
		return s.Start()
	case "stop":
		return s.Stop()
	case "run":
		return s.Run()
	default:
		return fmt.Errorf("unknown service command: %s", cmd)
	}
}

// watchConfig watches the config file and applies log level changes at
// runtime. Everything else in the config requires a restart.
func watchConfig(path string) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("watcher error: %v", err)
		return
	}
	defer w.Close()
	abs, err := filepath.Abs(path)
	if err != nil {
		log.Printf("abs path error: %v", err)
		return
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		log.Printf("watch add error: %v", err)
		return
	}
	last := time.Now()
	for {
		select {
		case ev := <-w.Events:
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 || filepath.Base(ev.Name) != filepath.Base(abs) {
				continue
			}
			// debounce 500ms
			if time.Since(last) < 500*time.Millisecond {
				continue
			}
			last = time.Now()
			cfg, err := config.Load(abs)
			if err != nil {
				log.Printf("reload config failed: %v", err)
				continue
			}
			logging.SetLevel(cfg.LogLevel)
			log.Printf("config reloaded: log level now %s", cfg.LogLevel)
		case err := <-w.Errors:
			log.Printf("watch error: %v", err)
		}
	}
}
