// Package mdns advertises the server as a multicast-DNS service instance
// so mobile clients can find it without configuration.
package mdns

import (
	"fmt"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/miekg/dns"

	"lanpad/remotectl/pkg/config"
	"lanpad/remotectl/pkg/logging"
	"lanpad/remotectl/pkg/proto"
)

var mdnsGroup = &net.UDPAddr{IP: net.IPv4(224, 0, 0, 251), Port: 5353}

// DiscoveryError reports a failed registration step. Discovery is
// best-effort: the caller logs it and keeps serving direct connections.
type DiscoveryError struct {
	Op  string
	Err error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("mdns %s: %v", e.Op, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// Registrar publishes one service instance and answers queries for it
// until Unregister is called.
type Registrar struct {
	cfg     config.ServerConfig
	info    proto.ScreenInfo
	version string

	mu   sync.Mutex
	conn *net.UDPConn
	rec  recordSet
	done chan struct{}
}

func New(cfg config.ServerConfig, info proto.ScreenInfo, version string) *Registrar {
	return &Registrar{cfg: cfg, info: info, version: version}
}

// Register joins the mDNS multicast group, announces the service, and
// starts answering matching queries.
func (r *Registrar) Register() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conn != nil {
		return nil
	}

	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = r.cfg.ServiceName
	}
	ip := localIP()
	r.rec = buildRecords(r.cfg, r.info, r.version, hostname, ip)

	conn, err := net.ListenMulticastUDP("udp4", nil, mdnsGroup)
	if err != nil {
		return &DiscoveryError{Op: "listen", Err: err}
	}
	r.conn = conn
	r.done = make(chan struct{})

	if err := r.announce(r.rec.all()); err != nil {
		conn.Close()
		r.conn = nil
		return &DiscoveryError{Op: "announce", Err: err}
	}
	go r.serve(conn, r.done)

	log.Printf("mdns: registered %s on %s:%d (ip=%s)", r.rec.instance, hostname, r.cfg.Port, ip)
	return nil
}

// Unregister sends goodbye records (TTL 0) and stops the responder. It is
// safe to call more than once; only the first call does work.
func (r *Registrar) Unregister() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conn == nil {
		return nil
	}
	err := r.announce(r.rec.goodbye())
	close(r.done)
	r.conn.Close()
	r.conn = nil
	log.Printf("mdns: unregistered %s", r.rec.instance)
	if err != nil {
		return &DiscoveryError{Op: "goodbye", Err: err}
	}
	return nil
}

// announce multicasts an unsolicited response carrying the given records,
// twice with a short gap as responders conventionally do.
func (r *Registrar) announce(records []dns.RR) error {
	msg := new(dns.Msg)
	msg.MsgHdr.Response = true
	msg.MsgHdr.Authoritative = true
	msg.Answer = records
	packed, err := msg.Pack()
	if err != nil {
		return err
	}
	for i := 0; i < 2; i++ {
		if i > 0 {
			time.Sleep(time.Second)
		}
		if _, err := r.conn.WriteToUDP(packed, mdnsGroup); err != nil {
			return err
		}
	}
	return nil
}

// serve answers queries about this instance until done is closed.
func (r *Registrar) serve(conn *net.UDPConn, done chan struct{}) {
	buf := make([]byte, 65536)
	for {
		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			select {
			case <-done:
				return
			default:
			}
			log.Printf("mdns: read error: %v", err)
			return
		}
		var query dns.Msg
		if err := query.Unpack(buf[:n]); err != nil {
			continue
		}
		if query.MsgHdr.Response {
			continue
		}
		resp := r.respond(&query)
		if resp == nil {
			continue
		}
		packed, err := resp.Pack()
		if err != nil {
			continue
		}
		if _, err := conn.WriteToUDP(packed, mdnsGroup); err != nil {
			logging.Debugf("mdns: write error: %v", err)
		}
	}
}

// respond builds a response for the questions that concern this service,
// or nil when none do.
func (r *Registrar) respond(query *dns.Msg) *dns.Msg {
	resp := new(dns.Msg)
	resp.MsgHdr.Response = true
	resp.MsgHdr.Authoritative = true
	for _, q := range query.Question {
		ans, extra := r.rec.answer(q)
		resp.Answer = append(resp.Answer, ans...)
		resp.Extra = append(resp.Extra, extra...)
	}
	if len(resp.Answer) == 0 {
		return nil
	}
	return resp
}

// localIP returns the preferred outbound address; the dial never sends
// packets.
func localIP() net.IP {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return net.IPv4(127, 0, 0, 1)
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP
}
