// Fichier: dns/resolver.go

package dns

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/miekg/dns"
	"github.com/projectdiscovery/gologger"
	sliceutil "github.com/projectdiscovery/utils/slice"
)

const dnsTimeout = 5 * time.Second

// fallbackNameserver is used when resolv.conf cannot be read.
const fallbackNameserver = "1.1.1.1:53"

// Resolver looks up A records with bounded concurrency.
type Resolver struct {
	client     *dns.Client
	nameserver string
	// Semaphore to limit concurrent goroutines for DNS lookups.
	semaphore chan struct{}
}

// NewResolver creates a new Resolver instance. An empty nameserver selects the
// first server of /etc/resolv.conf.
func NewResolver(concurrencyLimit int, nameserver string) *Resolver {
	if concurrencyLimit < 1 {
		concurrencyLimit = 1
	}
	if nameserver == "" {
		nameserver = SystemNameserver()
	}
	return &Resolver{
		client:     &dns.Client{Timeout: dnsTimeout},
		nameserver: nameserver,
		semaphore:  make(chan struct{}, concurrencyLimit),
	}
}

// SystemNameserver returns the first nameserver of the system configuration.
func SystemNameserver() string {
	conf, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil || len(conf.Servers) == 0 {
		return fallbackNameserver
	}
	return net.JoinHostPort(conf.Servers[0], conf.Port)
}

// resolveDNS performs the query and treats any non-success Rcode as a failure.
func (r *Resolver) resolveDNS(ctx context.Context, domain string, qtype uint16) (*dns.Msg, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(domain), qtype)
	m.RecursionDesired = true

	resp, _, err := r.client.ExchangeContext(ctx, m, r.nameserver)
	if err != nil {
		return nil, fmt.Errorf("DNS query error for %s (%s): %w", domain, dns.TypeToString[qtype], err)
	}
	if resp.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("DNS response failed for %s (%s). Rcode: %s", domain, dns.TypeToString[qtype], dns.RcodeToString[resp.Rcode])
	}

	return resp, nil
}

// ResolveA returns the IPv4 addresses of domain in answer order.
func (r *Resolver) ResolveA(ctx context.Context, domain string) ([]string, error) {
	resp, err := r.resolveDNS(ctx, domain, dns.TypeA)
	if err != nil {
		return nil, err
	}

	var ips []string
	for _, ans := range resp.Answer {
		if a, ok := ans.(*dns.A); ok {
			ips = append(ips, a.A.String())
		}
	}
	return ips, nil
}

// Lines resolves every domain and renders the results as input lines, the
// address followed by a tab and the domain it came from. Domains are
// deduplicated and the output follows their order. The first failure aborts.
func (r *Resolver) Lines(ctx context.Context, domains []string) ([]string, error) {
	domains = sliceutil.Dedupe(domains)
	results := make([][]string, len(domains))
	errs := make([]error, len(domains))

	var wg sync.WaitGroup
	for i, domain := range domains {
		wg.Add(1)
		go func(i int, domain string) {
			defer wg.Done()
			select {
			case r.semaphore <- struct{}{}:
			case <-ctx.Done():
				errs[i] = ctx.Err()
				return
			}
			defer func() { <-r.semaphore }()

			ips, err := r.ResolveA(ctx, domain)
			if err != nil {
				errs[i] = err
				return
			}
			gologger.Verbose().Msgf("Resolved %d addresses for %s", len(ips), domain)
			results[i] = ips
		}(i, domain)
	}
	wg.Wait()

	var lines []string
	for i, domain := range domains {
		if errs[i] != nil {
			return nil, errs[i]
		}
		for _, ip := range results[i] {
			lines = append(lines, ip+"\t"+domain)
		}
	}
	return lines, nil
}
