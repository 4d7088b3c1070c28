package output

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var reIndexSuffix = regexp.MustCompile(`\.(\d+)$`)

// FileWriter stores a request body on disk, e.g. to inspect a multipart body
// that is not printable.
type FileWriter struct {
	fullPath string
}

func NewFileWriter(path string, options *Options) *FileWriter {
	if !options.Overwrite {
		path = makeNonOverlappingFilename(path)
	}
	return &FileWriter{
		fullPath: path,
	}
}

func makeNonOverlappingFilename(path string) string {
	_, err := os.Stat(path)
	if err == nil {
		newPath := reIndexSuffix.ReplaceAllStringFunc(path, func(index string) string {
			i, err := strconv.Atoi(strings.TrimPrefix(index, "."))
			if err != nil {
				panic(err)
			}
			i++
			return fmt.Sprintf(".%d", i)
		})
		if path == newPath {
			path = fmt.Sprintf("%s.%d", path, 1)
		} else {
			path = newPath
		}
		path = makeNonOverlappingFilename(path)
	}
	return path
}

func (f *FileWriter) Write(body []byte) error {
	if err := ioutil.WriteFile(f.fullPath, body, 0644); err != nil {
		return errors.Wrapf(err, "writing body to %s", f.fullPath)
	}
	return nil
}

func (f *FileWriter) Filename() string {
	return filepath.Base(f.fullPath)
}

func (f *FileWriter) Path() string {
	return f.fullPath
}
