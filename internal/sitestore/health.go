package sitestore

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"
)

const DefaultHealthInterval = 15 * time.Second

// HealthProbe drives the online/offline indicator. It runs on its own
// interval with its own HTTP client, so a slow or failing probe can never
// delay a read or a write.
type HealthProbe struct {
	url      string
	timeout  time.Duration
	interval time.Duration
	client   *http.Client
	online   atomic.Bool
}

func NewHealthProbe(baseURL string, timeout, interval time.Duration) *HealthProbe {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if interval <= 0 {
		interval = DefaultHealthInterval
	}
	return &HealthProbe{
		url:      baseURL + "/health",
		timeout:  timeout,
		interval: interval,
		client:   &http.Client{},
	}
}

// Start launches the probe loop; it stops when ctx is cancelled. The
// returned channel closes once the loop has exited.
func (p *HealthProbe) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Check(ctx)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.Check(ctx)
			}
		}
	}()
	return done
}

func (p *HealthProbe) Online() bool {
	return p.online.Load()
}

// Check performs one bounded ping and updates the online flag.
func (p *HealthProbe) Check(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		p.online.Store(false)
		return
	}
	resp, err := p.client.Do(req)
	if err != nil {
		p.online.Store(false)
		return
	}
	resp.Body.Close()
	p.online.Store(resp.StatusCode == http.StatusOK)
}
