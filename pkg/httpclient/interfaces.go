package httpclient

import "context"

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
	// Header returns the first value of the named response header, or "".
	Header(key string) string
}

// Client abstracts page fetches so the crawler can run against fakes or other transports.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}
