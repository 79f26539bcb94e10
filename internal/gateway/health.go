package gateway

import (
	"context"
	"net/http"
	"time"
)

// Endpoint is the probe result for a single gateway.
type Endpoint struct {
	URL     string
	Latency time.Duration
	Status  int
	Healthy bool
}

// Probe checks a single gateway endpoint. A gateway is considered healthy
// if it answers any HTTP status within the timeout — gateways routinely
// return 4xx for a bare root path, which still proves reachability.
func Probe(ctx context.Context, rawURL string, timeout time.Duration) (Endpoint, error) {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ep := Endpoint{URL: rawURL}

	req, err := http.NewRequestWithContext(probeCtx, http.MethodHead, rawURL, nil)
	if err != nil {
		return ep, err
	}

	start := time.Now()
	resp, err := http.DefaultClient.Do(req)
	ep.Latency = time.Since(start)
	if err != nil {
		return ep, err
	}
	resp.Body.Close()

	ep.Status = resp.StatusCode
	ep.Healthy = true
	return ep, nil
}

// ProbeAll checks every endpoint of a Set sequentially, preserving the
// configured order in the results.
func ProbeAll(ctx context.Context, s Set, timeout time.Duration) []Endpoint {
	urls := s.All()
	out := make([]Endpoint, 0, len(urls))
	for _, u := range urls {
		ep, _ := Probe(ctx, u, timeout)
		out = append(out, ep)
	}
	return out
}
