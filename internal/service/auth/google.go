package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// GoogleGrantRevoker posts to Google's token-revocation endpoint. Callers
// treat any failure (4xx, 5xx, timeout) as non-fatal.
type GoogleGrantRevoker struct {
	Endpoint string
	Client   *http.Client
}

func NewGoogleGrantRevoker(endpoint string) *GoogleGrantRevoker {
	return &GoogleGrantRevoker{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// Revoke invalidates the provider access token at Google.
func (g *GoogleGrantRevoker) Revoke(ctx context.Context, providerAccessToken string) error {
	revokeURL := g.Endpoint + "?token=" + url.QueryEscape(providerAccessToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, revokeURL, nil)
	if err != nil {
		return err
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("revocation endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
