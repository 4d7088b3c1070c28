package endpoint

import (
	"strings"
	"testing"
)

func TestLookup(t *testing.T) {
	testCases := []struct {
		title        string
		nameOrPath   string
		expectedPath string
		expectedOK   bool
	}{
		{title: "Catalog name", nameOrPath: "chat", expectedPath: "/v1/chat/completions", expectedOK: true},
		{title: "Nested catalog name", nameOrPath: "audio/transcriptions", expectedPath: "/v1/audio/transcriptions", expectedOK: true},
		{title: "Literal path", nameOrPath: "/v1/files/file-abc", expectedPath: "/v1/files/file-abc", expectedOK: true},
		{title: "Unknown name", nameOrPath: "nope", expectedOK: false},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			d, ok := Lookup(DefaultBaseURL, tt.nameOrPath)
			if ok != tt.expectedOK {
				t.Fatalf("unexpected ok: expected=%v, actual=%v", tt.expectedOK, ok)
			}
			if !ok {
				return
			}
			if d.Path() != tt.expectedPath {
				t.Errorf("unexpected path: expected=%s, actual=%s", tt.expectedPath, d.Path())
			}
			if d.Base() != DefaultBaseURL {
				t.Errorf("unexpected base: expected=%s, actual=%s", DefaultBaseURL, d.Base())
			}
		})
	}
}

func TestCatalogPathsResolve(t *testing.T) {
	seen := map[string]bool{}
	for _, op := range Catalog {
		if seen[op.Name] {
			t.Errorf("duplicated operation name: %s", op.Name)
		}
		seen[op.Name] = true
		if !strings.HasPrefix(op.Path, "/v1/") {
			t.Errorf("unexpected path for %s: %s", op.Name, op.Path)
		}
		if _, err := ResolveURL(New(DefaultBaseURL, op.Path), nil); err != nil {
			t.Errorf("failed to resolve %s: %+v", op.Name, err)
		}
	}
}

func TestResourceDescriptors(t *testing.T) {
	testCases := []struct {
		descriptor Descriptor
		expected   string
	}{
		{Model(DefaultBaseURL, "gpt-4o"), "https://api.openai.com/v1/models/gpt-4o"},
		{File(DefaultBaseURL, "file-1"), "https://api.openai.com/v1/files/file-1"},
		{FileContent(DefaultBaseURL, "file-1"), "https://api.openai.com/v1/files/file-1/content"},
		{FineTuningJob(DefaultBaseURL, "ftjob-1"), "https://api.openai.com/v1/fine_tuning/jobs/ftjob-1"},
		{Assistant(DefaultBaseURL, "asst_1"), "https://api.openai.com/v1/assistants/asst_1"},
		{Thread(DefaultBaseURL, "thread_1"), "https://api.openai.com/v1/threads/thread_1"},
		{ThreadMessages(DefaultBaseURL, "thread_1"), "https://api.openai.com/v1/threads/thread_1/messages"},
		{ThreadRuns(DefaultBaseURL, "thread_1"), "https://api.openai.com/v1/threads/thread_1/runs"},
		{Batch(DefaultBaseURL, "batch_1"), "https://api.openai.com/v1/batches/batch_1"},
	}
	for _, tt := range testCases {
		u, err := ResolveURL(tt.descriptor, nil)
		if err != nil {
			t.Fatalf("unexpected error: err=%+v", err)
		}
		if u.String() != tt.expected {
			t.Errorf("unexpected URL: expected=%s, actual=%s", tt.expected, u)
		}
	}
}
