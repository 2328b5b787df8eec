// Package registry loads .proto files from disk into a schema.Table
// a decoder can run against. This is not part of the decode/merge
// core: it is an external collaborator that hands the core a
// schema.Table, exactly as a hand-built one would.
package registry

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	protoparser "github.com/yoheimuta/go-protoparser/v4"
	"github.com/yoheimuta/go-protoparser/v4/parser"

	"github.com/anirudhraja/dynapb/schema"
)

// Registry parses .proto files under a set of search directories
// (mirroring protoc's -I flag) and accumulates their messages and
// enums into a single schema.Table.
type Registry struct {
	dirs   []string
	parsed map[string]*parser.Proto // absolute path -> parsed file
	pkgOf  map[string]string        // absolute path -> package name
	names  map[string]bool          // every message/enum name seen so far
	table  *schema.Table
}

// NewRegistry creates a Registry that resolves imports against dirs,
// in order, the same way protoc resolves -I search paths.
func NewRegistry(dirs ...string) *Registry {
	return &Registry{
		dirs:   dirs,
		parsed: make(map[string]*parser.Proto),
		pkgOf:  make(map[string]string),
		names:  make(map[string]bool),
		table:  schema.NewTable(),
	}
}

// Table returns the schema.Table accumulated so far.
func (r *Registry) Table() *schema.Table { return r.table }

// LoadDir parses every top-level .proto file directly inside dir (and,
// transitively, whatever they import) into the registry's table.
func (r *Registry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading proto directory %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".proto") {
			continue
		}
		if err := r.LoadFile(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile parses path and everything it imports, then folds every
// message and enum discovered along the way into the registry's table.
func (r *Registry) LoadFile(path string) error {
	full, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving proto path %s: %w", path, err)
	}
	touched, err := r.parseTransitively(full)
	if err != nil {
		return err
	}
	return r.build(touched)
}

// parseTransitively runs a DFS over path's import graph, parsing each
// file exactly once, and returns the set of files newly parsed by this
// call (so build only has to process what actually changed).
func (r *Registry) parseTransitively(path string) ([]string, error) {
	var touched []string

	var dfs func(string) error
	dfs = func(p string) error {
		if _, ok := r.parsed[p]; ok {
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", p, err)
		}
		proto, err := protoparser.Parse(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", p, err)
		}
		r.parsed[p] = proto
		r.pkgOf[p] = packageOf(proto)
		touched = append(touched, p)

		for _, v := range proto.ProtoBody {
			imp, ok := v.(*parser.Import)
			if !ok {
				continue
			}
			location := strings.Trim(imp.Location, `"`)
			if strings.HasPrefix(location, "google/protobuf/") {
				// Well-known type imports are not loaded, so no
				// google.protobuf message is registered and a field
				// that references one fails to resolve.
				continue
			}
			resolved, err := r.resolveImport(location)
			if err != nil {
				return err
			}
			if err := dfs(resolved); err != nil {
				return err
			}
		}
		return nil
	}

	if err := dfs(path); err != nil {
		return nil, err
	}
	return touched, nil
}

// resolveImport finds location under one of the registry's search
// directories, protoc -I style.
func (r *Registry) resolveImport(location string) (string, error) {
	for _, dir := range r.dirs {
		candidate := filepath.Join(dir, location)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Abs(candidate)
		}
	}
	return "", fmt.Errorf("import %q not found in any of %v", location, r.dirs)
}

func packageOf(proto *parser.Proto) string {
	for _, v := range proto.ProtoBody {
		if pkg, ok := v.(*parser.Package); ok {
			return pkg.Name
		}
	}
	return ""
}
