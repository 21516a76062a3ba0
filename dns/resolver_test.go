package dns

import (
	"context"
	"net"
	"testing"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startServer runs an in-process DNS server on a loopback UDP socket and
// returns its address.
func startServer(t *testing.T, records map[string][]string) string {
	t.Helper()

	mux := dns.NewServeMux()
	for name, rrs := range records {
		rrs := rrs
		mux.HandleFunc(name, func(w dns.ResponseWriter, req *dns.Msg) {
			m := new(dns.Msg)
			m.SetReply(req)
			for _, s := range rrs {
				rr, err := dns.NewRR(s)
				if err == nil {
					m.Answer = append(m.Answer, rr)
				}
			}
			_ = w.WriteMsg(m)
		})
	}

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)

	started := make(chan struct{})
	srv := &dns.Server{PacketConn: pc, Handler: mux, NotifyStartedFunc: func() { close(started) }}
	go func() { _ = srv.ActivateAndServe() }()
	<-started
	t.Cleanup(func() { _ = srv.Shutdown() })

	return pc.LocalAddr().String()
}

func TestResolveA(t *testing.T) {
	addr := startServer(t, map[string][]string{
		"hosts.test.": {
			"hosts.test. 60 IN A 10.0.0.5",
			"hosts.test. 60 IN A 192.168.1.1",
			"hosts.test. 60 IN TXT \"v=spf1 -all\"",
		},
	})

	r := NewResolver(2, addr)
	ips, err := r.ResolveA(context.Background(), "hosts.test")
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.5", "192.168.1.1"}, ips)
}

func TestResolveAFailure(t *testing.T) {
	addr := startServer(t, map[string][]string{
		"hosts.test.": {"hosts.test. 60 IN A 10.0.0.5"},
	})

	r := NewResolver(1, addr)
	_, err := r.ResolveA(context.Background(), "unknown.invalid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown.invalid")
}

func TestLines(t *testing.T) {
	addr := startServer(t, map[string][]string{
		"a.test.": {"a.test. 60 IN A 46.70.29.76", "a.test. 60 IN A 1.1.234.8"},
		"b.test.": {"b.test. 60 IN A 5.189.203.46"},
		"c.test.": {},
	})

	r := NewResolver(2, addr)
	lines, err := r.Lines(context.Background(), []string{"b.test", "a.test", "c.test", "b.test"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"5.189.203.46\tb.test",
		"46.70.29.76\ta.test",
		"1.1.234.8\ta.test",
	}, lines)
}

func TestLinesFailure(t *testing.T) {
	addr := startServer(t, map[string][]string{
		"a.test.": {"a.test. 60 IN A 46.70.29.76"},
	})

	r := NewResolver(4, addr)
	_, err := r.Lines(context.Background(), []string{"a.test", "missing.invalid"})
	require.Error(t, err)
}

func TestLinesCancelledWhileWaiting(t *testing.T) {
	addr := startServer(t, map[string][]string{
		"a.test.": {"a.test. 60 IN A 46.70.29.76"},
	})

	r := NewResolver(1, addr)
	// Hold the only slot so every lookup has to wait for it.
	r.semaphore <- struct{}{}
	defer func() { <-r.semaphore }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Lines(ctx, []string{"a.test", "b.test"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewResolverDefaults(t *testing.T) {
	r := NewResolver(0, "")
	assert.Equal(t, 1, cap(r.semaphore))
	assert.NotEmpty(t, r.nameserver)
}
