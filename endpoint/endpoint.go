package endpoint

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidBaseURL is reported when an endpoint's origin cannot be parsed
// into a URL with a scheme and a host.
var ErrInvalidBaseURL = errors.New("invalid base URL")

// Endpoint identifies one remote operation by its origin and path.
type Endpoint interface {
	Base() string
	Path() string
}

// Descriptor is the value form of Endpoint.
type Descriptor struct {
	BaseURL string
	URLPath string
}

func New(base, path string) Descriptor {
	return Descriptor{BaseURL: base, URLPath: path}
}

func (d Descriptor) Base() string { return d.BaseURL }
func (d Descriptor) Path() string { return d.URLPath }

func (d Descriptor) String() string {
	return strings.TrimSuffix(d.BaseURL, "/") + d.URLPath
}

// QueryItem is one name/value pair of a query string. A nil Value drops the
// item from the encoded query.
type QueryItem struct {
	Name  string
	Value *string
}

func Query(name, value string) QueryItem {
	return QueryItem{Name: name, Value: &value}
}

func Flag(name string) QueryItem {
	return QueryItem{Name: name}
}

type InvalidBaseURLError struct {
	Base string
	Err  error
}

func (e *InvalidBaseURLError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid base URL %q: scheme and host are required", e.Base)
	}
	return fmt.Sprintf("invalid base URL %q: %v", e.Base, e.Err)
}

func (e *InvalidBaseURLError) Unwrap() error {
	return e.Err
}

func (e *InvalidBaseURLError) Is(target error) bool {
	return target == ErrInvalidBaseURL
}

// ResolveURL composes the URL of e. The path of e replaces any path carried
// by its origin. A nil items slice yields no query string; a non-nil empty
// one yields a bare "?".
func ResolveURL(e Endpoint, items []QueryItem) (*url.URL, error) {
	u, err := url.Parse(e.Base())
	if err != nil {
		return nil, errors.WithStack(&InvalidBaseURLError{Base: e.Base(), Err: err})
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.WithStack(&InvalidBaseURLError{Base: e.Base()})
	}

	u.Path = e.Path()
	u.RawPath = ""
	u.RawQuery = encodeQuery(items)
	u.ForceQuery = items != nil && u.RawQuery == ""
	return u, nil
}

// encodeQuery keeps the caller's order; url.Values would sort by name.
func encodeQuery(items []QueryItem) string {
	var b strings.Builder
	for _, item := range items {
		if item.Value == nil {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(item.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(*item.Value))
	}
	return b.String()
}
