package input

type Input struct {
	Method     Method
	Endpoint   string
	Parameters []Field
	Body       Body
}

type Method string

type BodyType int

const (
	EmptyBody BodyType = iota
	JSONBody
	FormBody
	RawBody
)

type Body struct {
	BodyType      BodyType
	Fields        []Field
	RawJSONFields []Field // used only when BodyType == JSONBody
	Files         []Field // used only when BodyType == FormBody
	Raw           []byte  // used only when BodyType == RawBody
}

type Field struct {
	Name   string
	Value  string
	IsFile bool
}

type Options struct {
	JSON      bool
	Form      bool
	ReadStdin bool
}
