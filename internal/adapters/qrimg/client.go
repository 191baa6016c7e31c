// Package qrimg talks to the third-party QR image generator used on the
// bank-transfer and mobile-wallet payment screens.
package qrimg

import (
	"context"
	crand "crypto/rand"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"vungtau_stay/internal/adapters/observability"
	"vungtau_stay/internal/domain"
)

type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base string, rps int) *Client {
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: base,
		hc:   &http.Client{Timeout: 10 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// ImageURL builds the deep-link-formatted generator URL for a transfer:
// bank/wallet identifier, account, amount, and the booking reference.
func (c *Client) ImageURL(bankCode, account string, amount int64, reference, holder string) string {
	q := url.Values{}
	q.Set("amount", fmt.Sprintf("%d", amount))
	q.Set("addInfo", reference)
	q.Set("accountName", holder)
	return fmt.Sprintf("%s/%s-%s-compact2.png?%s", c.base, bankCode, account, q.Encode())
}

// Fetch downloads the QR image so the API can serve it to the client. On
// failure the caller shows the manual-transfer fallback; retries cover
// transient upstream errors only.
func (c *Client) Fetch(ctx context.Context, imageURL string) ([]byte, string, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, "", err
	}

	var lastErr error
	for i := 0; i < 3; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
		if err != nil {
			return nil, "", err
		}
		req.Header.Set("Accept", "image/*")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, "", ctx.Err()
			}
			lastErr = err
			if i < 2 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			return nil, "", lastErr
		}
		observability.ObserveExternal("qrimg", "image", resp.StatusCode, time.Since(start))

		switch {
		case resp.StatusCode == http.StatusOK:
			b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
			ct := resp.Header.Get("Content-Type")
			resp.Body.Close()
			if err != nil {
				return nil, "", err
			}
			return b, ct, nil
		case resp.StatusCode == http.StatusNotFound:
			resp.Body.Close()
			return nil, "", domain.ErrNotFound
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			resp.Body.Close()
			lastErr = fmt.Errorf("qr generator %d", resp.StatusCode)
			if i < 2 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			return nil, "", lastErr
		default:
			resp.Body.Close()
			return nil, "", fmt.Errorf("qr generator bad status %d", resp.StatusCode)
		}
	}
	return nil, "", lastErr
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// backoff doubles each attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
