package exchange

import (
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/HexmosTech/oairequest/endpoint"
	"github.com/HexmosTech/oairequest/formdata"
	"github.com/HexmosTech/oairequest/input"
	"github.com/pkg/errors"
)

// BuildHTTPRequest turns parsed command line input into a request for e.
func BuildHTTPRequest(e endpoint.Endpoint, creds Credentials, in *input.Input) (*http.Request, error) {
	items, err := buildQueryItems(in)
	if err != nil {
		return nil, err
	}

	method := Method(in.Method)
	switch in.Body.BodyType {
	case input.EmptyBody:
		return BuildRequest(e, creds, method, nil, items)
	case input.JSONBody:
		obj, err := buildJSONParams(in)
		if err != nil {
			return nil, err
		}
		return BuildRequest(e, creds, method, obj, items)
	case input.RawBody:
		return BuildRequest(e, creds, method, json.RawMessage(in.Body.Raw), items)
	case input.FormBody:
		form, err := buildForm(in)
		if err != nil {
			return nil, err
		}
		return BuildMultipartRequest(e, creds, method, form, items)
	default:
		return nil, errors.Errorf("unknown body type: %v", in.Body.BodyType)
	}
}

func buildQueryItems(in *input.Input) ([]endpoint.QueryItem, error) {
	if len(in.Parameters) == 0 {
		return nil, nil
	}
	items := make([]endpoint.QueryItem, 0, len(in.Parameters))
	for _, field := range in.Parameters {
		value, err := resolveFieldValue(field)
		if err != nil {
			return nil, err
		}
		items = append(items, endpoint.Query(field.Name, value))
	}
	return items, nil
}

func buildJSONParams(in *input.Input) (map[string]interface{}, error) {
	obj := map[string]interface{}{}
	for _, field := range in.Body.Fields {
		value, err := resolveFieldValue(field)
		if err != nil {
			return nil, err
		}
		obj[field.Name] = value
	}
	for _, field := range in.Body.RawJSONFields {
		value, err := resolveFieldValue(field)
		if err != nil {
			return nil, err
		}
		var v interface{}
		if err := json.Unmarshal([]byte(value), &v); err != nil {
			return nil, errors.Wrapf(err, "parsing JSON value of '%s'", field.Name)
		}
		obj[field.Name] = v
	}
	return obj, nil
}

func buildForm(in *input.Input) (*formdata.Form, error) {
	form := &formdata.Form{}
	for _, field := range in.Body.Fields {
		value, err := resolveFieldValue(field)
		if err != nil {
			return nil, err
		}
		form.AddField(field.Name, value)
	}
	for _, field := range in.Body.Files {
		if field.IsFile {
			form.AddFilePath(field.Name, field.Value)
		} else {
			form.AddFile(field.Name, field.Name, "", []byte(field.Value))
		}
	}
	return form, nil
}

func resolveFieldValue(field input.Field) (string, error) {
	if field.IsFile {
		data, err := ioutil.ReadFile(field.Value)
		if err != nil {
			return "", errors.Wrapf(err, "reading field value of '%s'", field.Name)
		}
		return string(data), nil
	}
	return field.Value, nil
}
