package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"

	"github.com/pelletier/go-toml/v2"
)

var (
	// ErrIncludeDepthExceeded indicates too many nested include directives.
	ErrIncludeDepthExceeded = errors.New("include depth exceeded")

	// ErrIncludeCycle indicates a rule file that includes itself, directly
	// or through other files.
	ErrIncludeCycle = errors.New("include cycle")
)

// includeKey lists rule files whose contents come before the including file.
const includeKey = "include"

// TOMLLoader reads a rule file together with the files it includes.
//
// Included tables are overridden by the including file; included arrays,
// such as rules, are placed before the including file's entries. Relative
// include paths are resolved against the including file's directory.
type TOMLLoader struct {
	fs       FileSystem
	path     string
	maxDepth int
}

// NewTOMLLoader creates a loader for the rule file at path. maxDepth limits
// nested includes; the root file counts as depth 1.
func NewTOMLLoader(fsys FileSystem, path string, maxDepth int) *TOMLLoader {
	return &TOMLLoader{
		fs:       fsys,
		path:     path,
		maxDepth: maxDepth,
	}
}

// Load implements Loader. A missing root file yields nil, nil; a missing
// include is an error.
func (l *TOMLLoader) Load() (map[string]any, error) {
	return l.load(l.path, nil)
}

// load reads path and its includes. open holds the chain of files being
// loaded, outermost first.
func (l *TOMLLoader) load(path string, open []string) (map[string]any, error) {
	if slices.Contains(open, path) {
		return nil, fmt.Errorf("%w: %s", ErrIncludeCycle, path)
	}
	if len(open) >= l.maxDepth {
		return nil, fmt.Errorf("%w: %s", ErrIncludeDepthExceeded, path)
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if len(open) == 0 && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading rule file %s: %w", path, err)
	}
	doc, err := parse(path, data)
	if err != nil {
		return nil, err
	}

	includes, err := includePaths(doc, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(includes) == 0 {
		return doc, nil
	}

	open = append(open, path)
	merged := map[string]any{}
	for _, inc := range includes {
		incDoc, err := l.load(inc, open)
		if err != nil {
			return nil, fmt.Errorf("loading include %s: %w", inc, err)
		}
		merged = mergeInclude(merged, incDoc)
	}
	return mergeInclude(merged, doc), nil
}

// includePaths removes the include key from doc and returns its entries as
// paths relative to baseDir.
func includePaths(doc map[string]any, baseDir string) ([]string, error) {
	raw, ok := doc[includeKey]
	if !ok {
		return nil, nil
	}
	delete(doc, includeKey)

	var names []string
	switch v := raw.(type) {
	case string:
		names = []string{v}
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s entries must be strings, got %T", includeKey, item)
			}
			names = append(names, s)
		}
	default:
		return nil, fmt.Errorf("%s must be a string or an array of strings, got %T", includeKey, raw)
	}

	for i, name := range names {
		if !filepath.IsAbs(name) {
			names[i] = filepath.Join(baseDir, name)
		}
	}
	return names, nil
}

// parse decodes one TOML document, reporting the position of syntax errors.
func parse(source string, data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

// mergeInclude merges src over dst like DeepMerge, except that arrays are
// concatenated with dst's entries first.
func mergeInclude(dst, src map[string]any) map[string]any {
	for key, srcVal := range src {
		if dstArr, ok := dst[key].([]any); ok {
			if srcArr, ok := srcVal.([]any); ok {
				dst[key] = append(slices.Clone(dstArr), srcArr...)
				continue
			}
		}
		dst = DeepMerge(dst, map[string]any{key: srcVal})
	}
	return dst
}

// ParseError reports a rule file that is not valid TOML.
type ParseError struct {
	Path    string
	Line    int // 0 when unknown
	Column  int // 0 when unknown
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DeepMerge merges src into dst and returns dst. Nested tables merge
// recursively; any other src value replaces the dst value.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	for key, srcVal := range src {
		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = DeepMerge(dstMap, srcMap)
			continue
		}
		dst[key] = srcVal
	}
	return dst
}
