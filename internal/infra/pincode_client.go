package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// PincodeInfo is the checkout-autofill result for a postal code.
type PincodeInfo struct {
	Pincode string `json:"pincode"`
	City    string `json:"city"`
	State   string `json:"state"`
}

type PincodeClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewPincodeClient(baseURL string, timeout time.Duration) *PincodeClient {
	return &PincodeClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Lookup resolves a postal code to city/state. Unknown codes return nil,
// not an error; callers treat any failure as a soft miss.
func (c *PincodeClient) Lookup(ctx context.Context, pincode string) (*PincodeInfo, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/pincode/%s", c.baseURL, pincode), nil)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pincode service returned status %d", resp.StatusCode)
	}
	var p PincodeInfo
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, err
	}

	return &p, nil
}
