package focus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Login exchanges credentials for a bearer token at the server.
func Login(ctx context.Context, client *http.Client, baseURL, login, password string) (string, error) {
	b, err := json.Marshal(map[string]string{"login": login, "password": password})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/api/login", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("login failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed: status %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.Token, nil
}

// flush submits the tally and returns the server's post-reconciliation value.
func (s *Session) flush(ctx context.Context, seconds int64) (int64, error) {
	b, err := json.Marshal(map[string]int64{"accumulated_seconds": seconds})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/focus/flush", bytes.NewReader(b))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("flush failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("flush failed: status %d", resp.StatusCode)
	}

	var result struct {
		StoredValue int64 `json:"stored_value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, err
	}
	return result.StoredValue, nil
}
