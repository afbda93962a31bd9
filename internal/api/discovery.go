package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/mdns"
)

// DiscoveredBridge represents a Hue bridge found during discovery
type DiscoveredBridge struct {
	// IP address of the bridge
	Host string
	// Unique bridge identifier
	BridgeID string
	// Name from mDNS, if any
	Name string
}

// discoverMDNS looks for _hue._tcp services on the local network
func discoverMDNS(timeout time.Duration) ([]DiscoveredBridge, error) {
	var bridges []DiscoveredBridge
	var mu sync.Mutex

	entriesCh := make(chan *mdns.ServiceEntry, 10)

	go func() {
		for entry := range entriesCh {
			bridge := DiscoveredBridge{
				Host: entry.AddrV4.String(),
				Name: entry.Name,
			}

			for _, txt := range entry.InfoFields {
				if strings.HasPrefix(txt, "bridgeid=") {
					bridge.BridgeID = strings.TrimPrefix(txt, "bridgeid=")
				}
			}

			if bridge.Name == "" && entry.Host != "" {
				bridge.Name = strings.TrimSuffix(entry.Host, ".")
			}

			mu.Lock()
			bridges = append(bridges, bridge)
			mu.Unlock()
		}
	}()

	params := mdns.DefaultParams("_hue._tcp")
	params.Entries = entriesCh
	params.Timeout = timeout
	params.DisableIPv6 = true

	err := mdns.Query(params)
	close(entriesCh)

	if err != nil {
		return bridges, fmt.Errorf("mDNS query failed: %w", err)
	}

	return bridges, nil
}

// nupnpResponse represents the response from the Hue cloud discovery service
type nupnpResponse struct {
	ID                string `json:"id"`
	InternalIPAddress string `json:"internalipaddress"`
}

// discoverCloud asks the well-known meethue discovery endpoint for bridges
// registered on this network.
func discoverCloud(ctx context.Context, timeout time.Duration) (bridges []DiscoveredBridge, err error) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequestWithContext(ctx, "GET", "https://discovery.meethue.com", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cloud discovery request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cloud discovery returned status %d", resp.StatusCode)
	}

	var results []nupnpResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	bridges = make([]DiscoveredBridge, len(results))
	for i, r := range results {
		bridges[i] = DiscoveredBridge{
			Host:     r.InternalIPAddress,
			BridgeID: r.ID,
		}
	}

	return bridges, nil
}

// DiscoverBridges runs mDNS and cloud discovery concurrently and merges
// their results, deduplicated by bridge ID (or host when the ID is unknown).
func DiscoverBridges(ctx context.Context, timeout time.Duration) ([]DiscoveredBridge, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		bridges []DiscoveredBridge
		err     error
	}

	results := make(chan result, 2)

	go func() {
		bridges, err := discoverMDNS(timeout)
		results <- result{bridges: bridges, err: err}
	}()
	go func() {
		bridges, err := discoverCloud(ctx, timeout)
		results <- result{bridges: bridges, err: err}
	}()

	var merged []DiscoveredBridge
	seen := make(map[string]bool)
	var lastErr error

	for received := 0; received < 2; received++ {
		select {
		case r := <-results:
			if r.err != nil {
				lastErr = r.err
				continue
			}
			for _, b := range r.bridges {
				key := b.Host
				if b.BridgeID != "" {
					key = strings.ToLower(b.BridgeID)
				}
				if !seen[key] {
					seen[key] = true
					merged = append(merged, b)
				}
			}
		case <-ctx.Done():
			return merged, ctx.Err()
		}
	}

	if len(merged) == 0 && lastErr != nil {
		return nil, lastErr
	}

	return merged, nil
}
