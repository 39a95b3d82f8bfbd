package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/xiri/xiri-api/internal/domain"
)

// Client talks to the external vendor directory scrape service. It
// implements usecase.VendorDirectory; callers treat any failure as an empty
// result, so the client reports errors instead of retrying.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new directory client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type searchResponse struct {
	Results []struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Email string `json:"email"`
	} `json:"results"`
}

// Search queries the directory for vendors serving a zip code and trade.
func (c *Client) Search(ctx context.Context, zipCode, trade string) ([]*domain.Vendor, error) {
	endpoint := fmt.Sprintf("%s/search?%s", c.baseURL, url.Values{
		"zip":   {zipCode},
		"trade": {trade},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory search returned status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	vendors := make([]*domain.Vendor, 0, len(body.Results))
	for _, r := range body.Results {
		if r.Name == "" {
			continue
		}
		vendors = append(vendors, &domain.Vendor{
			Name:    r.Name,
			Trade:   trade,
			ZipCode: zipCode,
			Phone:   r.Phone,
			Email:   r.Email,
		})
	}

	return vendors, nil
}
