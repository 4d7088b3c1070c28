package exchange

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"

	"github.com/HexmosTech/oairequest/endpoint"
	"github.com/HexmosTech/oairequest/formdata"
	"github.com/pkg/errors"
)

const organizationHeader = "OpenAI-Organization"

var (
	ErrEncodingFailure   = errors.New("encoding failure")
	ErrMissingAPIKey     = errors.New("API key is required")
	ErrUnsupportedMethod = errors.New("unsupported method")
)

type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodDelete Method = "DELETE"
)

// Credentials authenticate a request. An empty OrganizationID means the
// organization header is not sent.
type Credentials struct {
	APIKey         string
	OrganizationID string
}

// MultipartEncoder renders a multipart body delimited by the given boundary.
type MultipartEncoder interface {
	Encode(boundary string) ([]byte, error)
}

type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding request body: %v", e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

func (e *EncodingError) Is(target error) bool {
	return target == ErrEncodingFailure
}

func encodingFailure(err error) error {
	return errors.WithStack(&EncodingError{Err: err})
}

// BuildRequest builds a request whose body, when params is not nil, is the
// JSON encoding of params. A typed nil such as a nil pointer, map or
// json.RawMessage counts as no params.
func BuildRequest(e endpoint.Endpoint, creds Credentials, method Method, params interface{}, items []endpoint.QueryItem) (*http.Request, error) {
	u, err := resolveTarget(e, method, items)
	if err != nil {
		return nil, err
	}

	var body []byte
	if !isNil(params) {
		b, err := json.Marshal(params)
		if err != nil {
			return nil, encodingFailure(err)
		}
		body = b
	}

	r, err := newRequest(u, method, body)
	if err != nil {
		return nil, err
	}
	r.Header.Set("Content-Type", "application/json")
	if err := setAuthHeader(r.Header, creds); err != nil {
		return nil, err
	}
	return r, nil
}

// BuildMultipartRequest builds a request whose body is params rendered as
// multipart/form-data. A new boundary is generated for every call.
func BuildMultipartRequest(e endpoint.Endpoint, creds Credentials, method Method, params MultipartEncoder, items []endpoint.QueryItem) (*http.Request, error) {
	u, err := resolveTarget(e, method, items)
	if err != nil {
		return nil, err
	}
	if params == nil {
		return nil, encodingFailure(errors.New("multipart body is required"))
	}

	boundary := formdata.NewBoundary()
	body, err := params.Encode(boundary)
	if err != nil {
		return nil, encodingFailure(err)
	}

	r, err := newRequest(u, method, body)
	if err != nil {
		return nil, err
	}
	if err := setAuthHeader(r.Header, creds); err != nil {
		return nil, err
	}
	r.Header.Set("Content-Type", "multipart/form-data; boundary="+boundary)
	return r, nil
}

func resolveTarget(e endpoint.Endpoint, method Method, items []endpoint.QueryItem) (*url.URL, error) {
	switch method {
	case MethodGet, MethodPost, MethodDelete:
	default:
		return nil, errors.Wrapf(ErrUnsupportedMethod, "method %q", string(method))
	}
	return endpoint.ResolveURL(e, items)
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func newRequest(u *url.URL, method Method, body []byte) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	r, err := http.NewRequest(string(method), u.String(), reader)
	if err != nil {
		return nil, errors.Wrap(err, "creating HTTP request")
	}
	// NewRequest reparses the URL; keep the composed one as is.
	r.URL = u
	return r, nil
}

func setAuthHeader(header http.Header, creds Credentials) error {
	if creds.APIKey == "" {
		return errors.WithStack(ErrMissingAPIKey)
	}
	header.Set("Authorization", "Bearer "+creds.APIKey)
	if creds.OrganizationID != "" {
		header.Set(organizationHeader, creds.OrganizationID)
	}
	return nil
}
