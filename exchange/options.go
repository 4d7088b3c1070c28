package exchange

import (
	"net/http"
	"time"
)

type Options struct {
	Timeout         time.Duration
	FollowRedirects bool
	SkipVerify      bool
	Transport       http.RoundTripper
}
