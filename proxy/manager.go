package proxy

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/tribunen/billettvakt/constant"
)

// Client retrieves candidate proxies for the scraping pool.
type Client interface {
	GetProxies() ([]Proxy, error)
}

type HTTPClient struct {
	client *http.Client
}

func NewHTTPClient() *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: 30 * time.Second}}
}

func (p *HTTPClient) GetProxies() ([]Proxy, error) {
	resp, err := p.client.Get(constant.PROXY_LIST_URL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var list ProxyResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, err
	}
	return list.Data, nil
}

type ProxyResponse struct {
	Data  []Proxy `json:"data"`
	Total int     `json:"total"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
}

type Proxy struct {
	IP                 string   `json:"ip"`
	Port               string   `json:"port"`
	Protocols          []string `json:"protocols"`
	Country            string   `json:"country"`
	LastChecked        int64    `json:"lastChecked"`
	Latency            float64  `json:"latency"`
	Speed              int      `json:"speed"`
	UpTime             float64  `json:"upTime"`
	UpTimeSuccessCount int      `json:"upTimeSuccessCount"`
	UpTimeTryCount     int      `json:"upTimeTryCount"`
	ResponseTime       int      `json:"responseTime"`
}

// Manager scores the retrieved proxies and hands out the best ones for the
// per-section fetch bursts.
type Manager struct {
	heap *Heap
}

type ManagerOptions struct {
	Client Client
	Algo   ScoreAlgo
}

func New(options *ManagerOptions) (*Manager, error) {
	proxies, err := options.Client.GetProxies()
	if err != nil {
		return nil, err
	}
	algo := options.Algo
	if algo == nil {
		algo = &NaiveScoreAlgo{}
	}

	elements := make([]*Element, len(proxies))
	now := time.Now()
	for i := range proxies {
		elements[i] = &Element{Proxy: &proxies[i], LastUsedAt: now}
		elements[i].UpdateScore(algo)
	}
	return &Manager{heap: NewHeap(elements, algo)}, nil
}

// Best returns the n highest-scoring proxies and marks them as used so
// their scores decay for the next caller.
func (m *Manager) Best(n uint16) []*Element {
	return m.heap.Best(n)
}
