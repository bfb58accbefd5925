package registries

import (
	"fmt"
	"net/http"
	"time"

	"github.com/StalkR/hsts"
)

// Here's a secure HTTP client that can be used to connect to PID registries.
// It sets a reasonable timeout and enables HTTP Strict Transport Security
// (HSTS).
func SecureHttpClient(timeout time.Duration) http.Client {
	client := http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if req.URL.Scheme == "http" {
				return &DowngradedRedirectError{
					Endpoint: fmt.Sprintf("%s%s", req.URL.Host, req.URL.Path),
				}
			}
			return http.ErrUseLastResponse
		},
	}
	client.Transport = hsts.New(client.Transport) // enable HSTS
	return client
}
