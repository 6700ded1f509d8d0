// Package smsprovider implements the HTTP client for the SMS gateway
// used by the sender worker.
package smsprovider

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// Client talks to the SMS gateway API.
type Client struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

// SendRequest is the gateway message payload.
type SendRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// SendResponse is the gateway acknowledgment.
type SendResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// NewClient creates a new SMS gateway client.
func NewClient(apiURL, apiKey string) *Client {
	return &Client{
		apiURL:     apiURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) newRequest(body any) (*http.Request, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodPost, c.apiURL, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// Send delivers a text message to a phone number through the gateway.
func (c *Client) Send(to, message string) (*SendResponse, error) {
	req, err := c.newRequest(SendRequest{To: to, Message: message})
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, errors.New("unexpected status: " + resp.Status)
	}

	var sendResp SendResponse
	if err := json.NewDecoder(resp.Body).Decode(&sendResp); err != nil {
		return nil, err
	}
	return &sendResp, nil
}
