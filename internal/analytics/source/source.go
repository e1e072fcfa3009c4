package source

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Doc is one decoded input document, or the per-file failure that replaced
// it. Failures never abort a run; the caller reports them and moves on.
type Doc struct {
	File  string
	Value any
	Err   error
}

// List returns the snapshot file names in dataDir, sorted lexicographically
// so occurrence order is deterministic. Only .json and .json.zst files at
// the top level are considered.
func List(dataDir string) ([]string, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ".json") || strings.HasSuffix(e.Name(), ".json.zst") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// Docs returns a pull iterator over the named files, decoding one document
// per call.
func Docs(dataDir string, files []string) func() (Doc, bool) {
	i := 0
	return func() (Doc, bool) {
		if i >= len(files) {
			return Doc{}, false
		}
		d := readDoc(dataDir, files[i])
		i++
		return d, true
	}
}

func readDoc(dir, name string) Doc {
	raw, err := readRaw(filepath.Join(dir, name), strings.HasSuffix(name, ".zst"))
	if err != nil {
		return Doc{File: name, Err: fmt.Errorf("%s: %w", name, err)}
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return Doc{File: name, Err: fmt.Errorf("%s: %w", name, err)}
	}
	return Doc{File: name, Value: v}
}

func readRaw(path string, compressed bool) ([]byte, error) {
	if !compressed {
		return os.ReadFile(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}
