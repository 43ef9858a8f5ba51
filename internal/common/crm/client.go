package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	commonhttp "talentroi-workers/internal/common/http"
)

// Client talks to the sales CRM REST API. The endpoint shape follows
// the Zoho v3 record API, which our CRM mirrors.
type Client struct {
	apiKey     string
	oauthToken string
	baseURL    string
	httpClient *commonhttp.Client
}

// Lead is the CRM-side representation of a calculator prospect.
type Lead struct {
	ID           string `json:"id,omitempty"`
	Email        string `json:"Email"`
	FirstName    string `json:"First_Name"`
	LastName     string `json:"Last_Name"`
	Company      string `json:"Company,omitempty"`
	Phone        string `json:"Phone,omitempty"`
	Country      string `json:"Country,omitempty"`
	Source       string `json:"Lead_Source,omitempty"`
	PlanInterest string `json:"Plan_Interest,omitempty"`
}

type createLeadResponse struct {
	Data []struct {
		Code    string `json:"code"`
		Details struct {
			ID string `json:"id"`
		} `json:"details"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"data"`
}

func NewClient(baseURL, apiKey, oauthToken string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:     apiKey,
		oauthToken: oauthToken,
		baseURL:    baseURL,
		httpClient: commonhttp.NewClient(timeout),
	}
}

func (c *Client) CreateLead(ctx context.Context, lead *Lead) (string, error) {
	endpoint := fmt.Sprintf("%s/Leads", c.baseURL)

	payload := map[string]interface{}{
		"data": []Lead{*lead},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal lead: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to create lead (status %d): %s", resp.StatusCode, string(body))
	}

	var createResp createLeadResponse
	if err := json.Unmarshal(body, &createResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(createResp.Data) == 0 {
		return "", fmt.Errorf("no data in response")
	}

	if createResp.Data[0].Status != "success" {
		return "", fmt.Errorf("lead creation failed: %s", createResp.Data[0].Message)
	}

	return createResp.Data[0].Details.ID, nil
}

func (c *Client) GetLead(ctx context.Context, leadID string) (*Lead, error) {
	endpoint := fmt.Sprintf("%s/Leads/%s", c.baseURL, leadID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to get lead (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Data []Lead `json:"data"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Data) == 0 {
		return nil, fmt.Errorf("lead not found")
	}

	return &result.Data[0], nil
}

// SearchLeads looks up existing leads by email, used for dedupe
// before creating a new record.
func (c *Client) SearchLeads(ctx context.Context, email string) ([]Lead, error) {
	endpoint := fmt.Sprintf("%s/Leads/search?email=%s", c.baseURL, url.QueryEscape(email))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to search leads (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Data []Lead `json:"data"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return result.Data, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Zoho-oauthtoken "+c.oauthToken)
}
