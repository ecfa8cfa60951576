package client

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/tribunen/billettvakt/entities"
	ext_proxy "github.com/tribunen/billettvakt/proxy"
	"golang.org/x/net/proxy"
)

// ClientWithProxy associates a TicketAPI client with its proxy info.
type ClientWithProxy struct {
	Client TicketAPI
	Proxy  *ext_proxy.Proxy
}

// ClientPool manages a pool of reusable clients, each using a proxy, so the
// per-section fetch bursts don't hammer the vendor from one address.
type ClientPool struct {
	pool         chan *ClientWithProxy
	proxyManager *ext_proxy.Manager
}

func newTransportForProxy(proxyElem *ext_proxy.Proxy) *http.Transport {
	scheme := "http"
	if len(proxyElem.Protocols) > 0 && proxyElem.Protocols[0] != "" {
		scheme = proxyElem.Protocols[0]
	}
	proxyAddr := net.JoinHostPort(proxyElem.IP, proxyElem.Port)

	switch scheme {
	case "http", "https":
		u, err := url.Parse(fmt.Sprintf("%s://%s", scheme, proxyAddr))
		if err != nil {
			return nil
		}
		return &http.Transport{
			Proxy:               http.ProxyURL(u),
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			TLSHandshakeTimeout: 10 * time.Second,
		}
	case "socks4", "socks5":
		dialer, err := proxy.SOCKS5("tcp", proxyAddr, nil, proxy.Direct)
		if err != nil {
			return nil
		}
		return &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			},
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			TLSHandshakeTimeout: 10 * time.Second,
		}
	default:
		// Fallback: no proxy
		return &http.Transport{}
	}
}

// NewClientPool creates a new pool with the given size, using the best
// proxies from the Manager.
func NewClientPool(size uint16, proxyManager *ext_proxy.Manager) *ClientPool {
	pool := make(chan *ClientWithProxy, size)
	bestProxies := proxyManager.Best(size)
	for i := range bestProxies {
		proxyElem := bestProxies[i]
		transport := newTransportForProxy(proxyElem.Proxy)
		if transport == nil {
			continue
		}
		ticketClient := &TicketClient{
			client: &http.Client{
				Transport: transport,
				Timeout:   30 * time.Second,
			},
		}
		log.Printf("[POOL] Created client for proxy %s:%s (%v)", proxyElem.Proxy.IP, proxyElem.Proxy.Port, proxyElem.Proxy.Protocols)
		pool <- &ClientWithProxy{Client: ticketClient, Proxy: proxyElem.Proxy}
	}
	return &ClientPool{pool: pool, proxyManager: proxyManager}
}

// Get retrieves a client from the pool.
func (p *ClientPool) Get() *ClientWithProxy {
	cwp := <-p.pool
	log.Printf("[POOL] Borrowed client for proxy %s:%s", cwp.Proxy.IP, cwp.Proxy.Port)
	return cwp
}

// Put returns a client to the pool.
func (p *ClientPool) Put(cwp *ClientWithProxy) {
	log.Printf("[POOL] Returned client for proxy %s:%s", cwp.Proxy.IP, cwp.Proxy.Port)
	p.pool <- cwp
}

func (p *ClientPool) GetItemTypes(eventURL string) (*entities.ItemTypesFile, error) {
	cwp := p.Get()
	defer p.Put(cwp)

	return cwp.Client.GetItemTypes(eventURL)
}

func (p *ClientPool) GetSection(eventURL string, sectionID int) (*entities.SectionResponse, error) {
	cwp := p.Get()
	defer p.Put(cwp)

	return cwp.Client.GetSection(eventURL, sectionID)
}
