package mdns

import (
	"fmt"
	"net"
	"strings"

	"github.com/miekg/dns"

	"lanpad/remotectl/pkg/config"
	"lanpad/remotectl/pkg/proto"
)

const (
	recordTTL   = 120
	servicesPTR = "_services._dns-sd._udp.local."
)

// recordSet is the full advertisement for one service instance.
type recordSet struct {
	instance string // <name>.<type>
	service  string // <type>, e.g. _remote-control._tcp.local.
	target   string // <hostname>.local.
	ptr      *dns.PTR
	srv      *dns.SRV
	txt      *dns.TXT
	a        *dns.A
}

// buildRecords assembles PTR, SRV, TXT, and A records for the service.
func buildRecords(cfg config.ServerConfig, info proto.ScreenInfo, version, hostname string, ip net.IP) recordSet {
	service := dns.Fqdn(cfg.ServiceType)
	instance := cfg.ServiceName + "." + service
	target := dns.Fqdn(hostname + ".local")

	rs := recordSet{instance: instance, service: service, target: target}
	rs.ptr = &dns.PTR{
		Hdr: dns.RR_Header{Name: service, Rrtype: dns.TypePTR, Class: dns.ClassINET, Ttl: recordTTL},
		Ptr: instance,
	}
	rs.srv = &dns.SRV{
		Hdr:    dns.RR_Header{Name: instance, Rrtype: dns.TypeSRV, Class: dns.ClassINET, Ttl: recordTTL},
		Port:   uint16(cfg.Port),
		Target: target,
	}
	rs.txt = &dns.TXT{
		Hdr: dns.RR_Header{Name: instance, Rrtype: dns.TypeTXT, Class: dns.ClassINET, Ttl: recordTTL},
		Txt: txtStrings(cfg, info, version),
	}
	if ip4 := ip.To4(); ip4 != nil {
		rs.a = &dns.A{
			Hdr: dns.RR_Header{Name: target, Rrtype: dns.TypeA, Class: dns.ClassINET, Ttl: recordTTL},
			A:   ip4,
		}
	}
	return rs
}

// txtStrings builds the TXT attributes advertised with the service.
func txtStrings(cfg config.ServerConfig, info proto.ScreenInfo, version string) []string {
	return []string{
		fmt.Sprintf("port=%d", cfg.Port),
		"protocol=websocket",
		"version=" + version,
		"type=remote-control",
		fmt.Sprintf("screen_width=%d", info.Width),
		fmt.Sprintf("screen_height=%d", info.Height),
	}
}

// all returns the record set in announcement order.
func (rs recordSet) all() []dns.RR {
	out := []dns.RR{rs.ptr, rs.srv, rs.txt}
	if rs.a != nil {
		out = append(out, rs.a)
	}
	return out
}

// goodbye returns copies of the records with TTL 0 for unregistration.
func (rs recordSet) goodbye() []dns.RR {
	out := make([]dns.RR, 0, 4)
	for _, rr := range rs.all() {
		cp := dns.Copy(rr)
		cp.Header().Ttl = 0
		out = append(out, cp)
	}
	return out
}

// answer builds the response records for one question, or nil when the
// question is not about this service.
func (rs recordSet) answer(q dns.Question) (ans, extra []dns.RR) {
	name := strings.ToLower(q.Name)
	switch {
	case q.Qtype == dns.TypePTR && name == strings.ToLower(servicesPTR):
		meta := &dns.PTR{
			Hdr: dns.RR_Header{Name: servicesPTR, Rrtype: dns.TypePTR, Class: dns.ClassINET, Ttl: recordTTL},
			Ptr: rs.service,
		}
		return []dns.RR{meta}, nil
	case (q.Qtype == dns.TypePTR || q.Qtype == dns.TypeANY) && name == strings.ToLower(rs.service):
		extra = []dns.RR{rs.srv, rs.txt}
		if rs.a != nil {
			extra = append(extra, rs.a)
		}
		return []dns.RR{rs.ptr}, extra
	case (q.Qtype == dns.TypeSRV || q.Qtype == dns.TypeANY) && name == strings.ToLower(rs.instance):
		if rs.a != nil {
			return []dns.RR{rs.srv}, []dns.RR{rs.a}
		}
		return []dns.RR{rs.srv}, nil
	case q.Qtype == dns.TypeTXT && name == strings.ToLower(rs.instance):
		return []dns.RR{rs.txt}, nil
	case (q.Qtype == dns.TypeA || q.Qtype == dns.TypeANY) && name == strings.ToLower(rs.target):
		if rs.a != nil {
			return []dns.RR{rs.a}, nil
		}
	}
	return nil, nil
}
