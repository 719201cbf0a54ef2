package transfer

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPOptions tune the client used for presigned URLs.
type HTTPOptions struct {
	// Timeout bounds one request; zero means no timeout.
	Timeout time.Duration
	// Retries is the number of extra attempts on network errors and 5xx.
	Retries int
}

func newHTTPClient(o HTTPOptions) *resty.Client {
	c := resty.New().
		SetTimeout(o.Timeout).
		SetRetryCount(o.Retries).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second)
	c.AddRetryCondition(retryCondition)
	return c
}

func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if r == nil {
		return false
	}
	code := r.StatusCode()
	return code >= 500 || code == 429 || code == 408
}

// HTTPTarget is a document behind a URL that accepts PUT and GET, such as a
// presigned object storage URL.
type HTTPTarget struct {
	client *resty.Client
	url    *url.URL
}

func NewHTTPTarget(client *resty.Client, u *url.URL) *HTTPTarget {
	return &HTTPTarget{client: client, url: u}
}

// Location omits the query string, which carries the presigned signature.
func (t *HTTPTarget) Location() string {
	u := *t.url
	u.RawQuery = ""
	u.User = nil
	return u.String()
}

func (t *HTTPTarget) Write(ctx context.Context, doc []byte) error {
	resp, err := t.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(doc).
		Put(t.url.String())
	if err != nil {
		return fmt.Errorf("upload %s: %w", t.Location(), err)
	}
	if resp.IsError() {
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status(), resp.String())
	}
	return nil
}

func (t *HTTPTarget) Read(ctx context.Context) ([]byte, error) {
	if !isJSONName(t.url.Path) {
		return nil, ErrNotJSON
	}
	resp, err := t.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(t.url.String())
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", t.Location(), err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("download failed: %s", resp.Status())
	}
	return resp.Body(), nil
}
