package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrLinkButtonNotPressed means every pairing attempt completed without
// the bridge link button being pressed.
var ErrLinkButtonNotPressed = errors.New("link button not pressed")

// pairAttempts bounds the number of pairing attempts. The bridge returns
// error type 101 until the link button is pressed; anything else is fatal.
const pairAttempts = 3

// pairInterval is the wait between attempts, giving the operator time to
// reach the bridge.
const pairInterval = 10 * time.Second

// pairingRequest is the body sent to create an app key
type pairingRequest struct {
	DeviceType        string `json:"devicetype"`
	GenerateClientKey bool   `json:"generateclientkey,omitempty"`
}

// pairingResponse represents a response from the pairing endpoint
type pairingResponse struct {
	Success *struct {
		Username  string `json:"username"`
		ClientKey string `json:"clientkey,omitempty"`
	} `json:"success,omitempty"`
	Error *struct {
		Type        int    `json:"type"`
		Address     string `json:"address"`
		Description string `json:"description"`
	} `json:"error,omitempty"`
}

// errLinkButtonType is the bridge error code for an unpressed link button
const errLinkButtonType = 101

func pairingClient() *http.Client {
	return &http.Client{
		Timeout: 10 * time.Second,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
}

// CreateAppKey attempts to create an application key on the bridge. The
// operator must press the link button during the attempt window; the
// "link button not pressed" response is retried up to pairAttempts times,
// any other pairing error fails immediately.
func CreateAppKey(ctx context.Context, host string, appName string) (string, error) {
	client := pairingClient()
	url := fmt.Sprintf("https://%s/api", host)

	bodyBytes, err := json.Marshal(pairingRequest{
		DeviceType:        appName,
		GenerateClientKey: true,
	})
	if err != nil {
		return "", err
	}

	for attempt := 1; attempt <= pairAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(pairInterval):
			}
		}

		req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(bodyBytes))
		if err != nil {
			return "", err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return "", fmt.Errorf("pairing request failed: %w", err)
		}

		var responses []pairingResponse
		decodeErr := json.NewDecoder(resp.Body).Decode(&responses)
		if cerr := resp.Body.Close(); cerr != nil {
			return "", fmt.Errorf("failed to close response body: %w", cerr)
		}
		if decodeErr != nil {
			return "", fmt.Errorf("failed to decode pairing response: %w", decodeErr)
		}

		if len(responses) == 0 {
			continue
		}

		response := responses[0]

		if response.Success != nil {
			return response.Success.Username, nil
		}

		if response.Error != nil && response.Error.Type != errLinkButtonType {
			return "", fmt.Errorf("pairing error: %s", response.Error.Description)
		}
	}

	return "", ErrLinkButtonNotPressed
}

// GetBridgeID retrieves the bridge ID from the unauthenticated config endpoint
func GetBridgeID(ctx context.Context, host string) (id string, err error) {
	client := pairingClient()
	url := fmt.Sprintf("https://%s/api/0/config", host)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to get bridge config: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", cerr)
		}
	}()

	var config struct {
		BridgeID string `json:"bridgeid"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&config); err != nil {
		return "", fmt.Errorf("failed to decode bridge config: %w", err)
	}

	return config.BridgeID, nil
}
