package input

import (
	"bytes"
	"encoding/json"
	"io"
	"io/ioutil"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// An endpoint is either a catalog name ("audio/transcriptions") or a literal
// path ("/v1/models/gpt-4o").
var reEndpoint = regexp.MustCompile(`^/|^[a-z_]+(/[a-z_]+)*$`)

var supportedMethods = map[Method]bool{
	"GET":    true,
	"POST":   true,
	"DELETE": true,
}

type itemType int

const (
	unknownItem itemType = iota
	httpHeaderItem
	urlParameterItem
	dataFieldItem
	rawJSONFieldItem
	formFileFieldItem
)

type UsageError string

func (e *UsageError) Error() string {
	return string(*e)
}

func newUsageError(message string) error {
	u := UsageError(message)
	return errors.WithStack(&u)
}

type state struct {
	preferredBodyType BodyType
	stdinConsumed     bool
}

func ParseArgs(args []string, stdin io.Reader, options *Options) (*Input, error) {
	if len(args) == 0 {
		return nil, newUsageError("ENDPOINT is required")
	}
	var method Method
	if len(args) > 1 {
		if m, ok := lookupMethod(args[0]); ok {
			method = m
			args = args[1:]
		}
	}
	if !reEndpoint.MatchString(args[0]) {
		return nil, newUsageError("Invalid ENDPOINT: " + args[0])
	}

	preferred, err := preferredBodyType(options)
	if err != nil {
		return nil, err
	}
	in := &Input{Endpoint: args[0]}
	st := &state{preferredBodyType: preferred}
	for _, item := range args[1:] {
		if err := parseItem(item, stdin, st, in); err != nil {
			return nil, err
		}
	}
	if options.ReadStdin && !st.stdinConsumed {
		if err := readStdinBody(stdin, st, in); err != nil {
			return nil, err
		}
	}

	if method == "" {
		method = "GET"
		if in.Body.BodyType != EmptyBody {
			method = "POST"
		}
	}
	in.Method = method
	return in, nil
}

func lookupMethod(s string) (Method, bool) {
	m := Method(strings.ToUpper(s))
	return m, supportedMethods[m]
}

func preferredBodyType(options *Options) (BodyType, error) {
	switch {
	case options.JSON && options.Form:
		return EmptyBody, errors.New("You cannot specify both of --json and --form")
	case options.Form:
		return FormBody, nil
	default:
		return JSONBody, nil
	}
}

// readStdinBody takes a non-blank stdin as the raw request body.
func readStdinBody(stdin io.Reader, st *state, in *Input) error {
	if in.Body.BodyType != EmptyBody {
		return errors.New("request body (from stdin) and request item (key=value) cannot be mixed")
	}
	raw, err := ioutil.ReadAll(stdin)
	if err != nil {
		return errors.Wrap(err, "failed to read stdin")
	}
	st.stdinConsumed = true
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if st.preferredBodyType == FormBody {
		return errors.New("request body from stdin cannot be used with --form")
	}
	in.Body.BodyType = RawBody
	in.Body.Raw = raw
	return nil
}

func parseItem(s string, stdin io.Reader, st *state, in *Input) error {
	kind, name, value := splitItem(s)
	if kind == unknownItem {
		return errors.Errorf("unknown request item: %s", s)
	}
	if kind == httpHeaderItem {
		return errors.Errorf("header items are not supported, headers are set from credentials: %s", s)
	}
	if kind == formFileFieldItem {
		value = "@" + value
	}
	field, err := parseField(name, value, stdin, st)
	if err != nil {
		return err
	}

	switch kind {
	case urlParameterItem:
		in.Parameters = append(in.Parameters, field)
	case dataFieldItem:
		in.Body.BodyType = st.preferredBodyType
		in.Body.Fields = append(in.Body.Fields, field)
	case rawJSONFieldItem:
		if st.preferredBodyType != JSONBody {
			return errors.New("raw JSON field item cannot be used in non-JSON body")
		}
		if !field.IsFile && !json.Valid([]byte(field.Value)) {
			return errors.Errorf("invalid JSON at '%s': %s", name, field.Value)
		}
		in.Body.BodyType = JSONBody
		in.Body.RawJSONFields = append(in.Body.RawJSONFields, field)
	case formFileFieldItem:
		if st.preferredBodyType != FormBody {
			return errors.New("form file field item cannot be used in non-form body (perhaps you meant --form?)")
		}
		in.Body.BodyType = FormBody
		in.Body.Files = append(in.Body.Files, field)
	}
	return nil
}

// splitItem classifies an item by the first separator it contains:
// "name:=json", "name:value", "name==query", "name=data" or "name@path".
func splitItem(s string) (itemType, string, string) {
	i := strings.IndexAny(s, ":=@")
	if i < 0 {
		return unknownItem, "", ""
	}
	name, rest := s[:i], s[i+1:]
	doubled := strings.HasPrefix(rest, "=")
	switch s[i] {
	case ':':
		if doubled {
			return rawJSONFieldItem, name, rest[1:]
		}
		return httpHeaderItem, name, rest
	case '=':
		if doubled {
			return urlParameterItem, name, rest[1:]
		}
		return dataFieldItem, name, rest
	default:
		return formFileFieldItem, name, rest
	}
}

// parseField resolves "@-" to the contents of stdin and "@path" to a file
// reference that is read when the request is built.
func parseField(name, value string, stdin io.Reader, st *state) (Field, error) {
	if !strings.HasPrefix(value, "@") {
		return Field{Name: name, Value: value}, nil
	}
	if value != "@-" {
		return Field{Name: name, Value: value[1:], IsFile: true}, nil
	}
	if st.stdinConsumed {
		return Field{}, errors.Errorf("stdin is already consumed: '%s'", name)
	}
	b, err := ioutil.ReadAll(stdin)
	if err != nil {
		return Field{}, errors.Wrapf(err, "reading stdin for '%s'", name)
	}
	st.stdinConsumed = true
	return Field{Name: name, Value: string(b)}, nil
}
