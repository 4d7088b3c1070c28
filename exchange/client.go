package exchange

import (
	"context"
	"crypto/tls"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// Client executes requests produced by BuildRequest and
// BuildMultipartRequest without altering them.
type Client struct {
	httpClient *http.Client
}

func NewClient(options *Options) *Client {
	return &Client{httpClient: buildHTTPClient(options)}
}

func buildHTTPClient(options *Options) *http.Client {
	c := resty.New().SetTimeout(options.Timeout)
	if !options.FollowRedirects {
		c.SetRedirectPolicy(resty.RedirectPolicyFunc(func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}))
	}
	if options.Transport != nil {
		c.SetTransport(options.Transport)
	} else if options.SkipVerify {
		c.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	return c.GetClient()
}

func (c *Client) Send(ctx context.Context, r *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(r.WithContext(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "sending HTTP request")
	}
	return resp, nil
}
