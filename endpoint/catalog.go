package endpoint

import "strings"

const DefaultBaseURL = "https://api.openai.com"

// Operation is a named entry of the catalog.
type Operation struct {
	Name      string
	Path      string
	Multipart bool
}

// Catalog lists the operations that can be addressed by name.
var Catalog = []Operation{
	{Name: "chat", Path: "/v1/chat/completions"},
	{Name: "completions", Path: "/v1/completions"},
	{Name: "embeddings", Path: "/v1/embeddings"},
	{Name: "models", Path: "/v1/models"},
	{Name: "moderations", Path: "/v1/moderations"},
	{Name: "files", Path: "/v1/files", Multipart: true},
	{Name: "images/generations", Path: "/v1/images/generations"},
	{Name: "images/edits", Path: "/v1/images/edits", Multipart: true},
	{Name: "images/variations", Path: "/v1/images/variations", Multipart: true},
	{Name: "audio/transcriptions", Path: "/v1/audio/transcriptions", Multipart: true},
	{Name: "audio/translations", Path: "/v1/audio/translations", Multipart: true},
	{Name: "audio/speech", Path: "/v1/audio/speech"},
	{Name: "fine_tuning/jobs", Path: "/v1/fine_tuning/jobs"},
	{Name: "assistants", Path: "/v1/assistants"},
	{Name: "threads", Path: "/v1/threads"},
	{Name: "vector_stores", Path: "/v1/vector_stores"},
	{Name: "batches", Path: "/v1/batches"},
}

// Lookup resolves nameOrPath against the catalog. Anything starting with "/"
// is taken as a literal path.
func Lookup(base, nameOrPath string) (Descriptor, bool) {
	if strings.HasPrefix(nameOrPath, "/") {
		return New(base, nameOrPath), true
	}
	if op, ok := FindOperation(nameOrPath); ok {
		return New(base, op.Path), true
	}
	return Descriptor{}, false
}

func FindOperation(name string) (Operation, bool) {
	for _, op := range Catalog {
		if op.Name == name {
			return op, true
		}
	}
	return Operation{}, false
}

func Model(base, id string) Descriptor {
	return New(base, "/v1/models/"+id)
}

func File(base, id string) Descriptor {
	return New(base, "/v1/files/"+id)
}

func FileContent(base, id string) Descriptor {
	return New(base, "/v1/files/"+id+"/content")
}

func FineTuningJob(base, id string) Descriptor {
	return New(base, "/v1/fine_tuning/jobs/"+id)
}

func Assistant(base, id string) Descriptor {
	return New(base, "/v1/assistants/"+id)
}

func Thread(base, id string) Descriptor {
	return New(base, "/v1/threads/"+id)
}

func ThreadMessages(base, threadID string) Descriptor {
	return New(base, "/v1/threads/"+threadID+"/messages")
}

func ThreadRuns(base, threadID string) Descriptor {
	return New(base, "/v1/threads/"+threadID+"/runs")
}

func Batch(base, id string) Descriptor {
	return New(base, "/v1/batches/"+id)
}
