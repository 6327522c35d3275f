// Package generate writes the Go source of owned handle types for
// interfaces described by a signature.Signature.
//
// For an interface Shape[T] it writes
//
//	type ShapeHandle[T any] struct{ Shape[T] }
//	func (h ShapeHandle[T]) Clone() ShapeHandle[T]
//	func CloneShape[T any](v Shape[T]) Shape[T]
//
// where both Clone and CloneShape duplicate through dupe.Handle. Structs
// holding a ShapeHandle can therefore implement dupe.Cloner by cloning their
// fields.
package generate

import (
	"bytes"
	"go/token"
	"sort"
	"strconv"
	"text/template"

	"github.com/cottand/dupe/internal/log"
	"github.com/cottand/dupe/signature"
	"github.com/cottand/dupe/util"
	"github.com/pkg/errors"
	"golang.org/x/tools/imports"
)

// RuntimeImport is the import path of the package generated code calls into.
const RuntimeImport = "github.com/cottand/dupe"

const header = "// Code generated by dupegen. DO NOT EDIT."

// Target is one interface to generate a handle for.
type Target struct {
	Signature *signature.Signature
	// Handle names the handle type. Defaults to the interface name followed
	// by Handle.
	Handle string
	// Func names the standalone duplication function. Defaults to Clone
	// followed by the interface name.
	Func string
}

// Options apply to a whole generated file.
type Options struct {
	Package string
	// Imports maps package names used in signatures to import paths.
	// Standard library packages are found without being listed.
	Imports map[string]string
	// Filename is only used to resolve imports and in error messages.
	Filename string
}

// HandleName returns the handle type name for t.
func (t Target) HandleName() string {
	if t.Handle != "" {
		return t.Handle
	}
	return t.Signature.Name + "Handle"
}

// FuncName returns the duplication function name for t.
func (t Target) FuncName() string {
	if t.Func != "" {
		return t.Func
	}
	if util.IsExported(t.Signature.Name) {
		return "Clone" + t.Signature.Name
	}
	return "clone" + util.UpperFirst(t.Signature.Name)
}

type importSpec struct {
	Name string
	Path string
}

type fileData struct {
	Header  string
	Package string
	Imports []importSpec
	Targets []targetData
}

type targetData struct {
	Handle     string
	Func       string
	Field      string
	Path       string
	TypeParams string
	TypeArgs   string
	Generic    bool
}

var fileTemplate = template.Must(template.New("file").Parse(`{{.Header}}

package {{.Package}}

import (
	"github.com/cottand/dupe"
{{- range .Imports}}
	{{.Name}} {{printf "%q" .Path}}
{{- end}}
)
{{range .Targets}}
// {{.Handle}} is an owned handle to a {{.Path}} that can be duplicated
// without knowing the concrete type behind it.
type {{.Handle}}{{.TypeParams}} struct {
	{{.Path}}
}

// Clone returns a handle to a duplicate of the value behind h, with the same
// dynamic type.
func (h {{.Handle}}{{.TypeArgs}}) Clone() {{.Handle}}{{.TypeArgs}} {
	return {{.Handle}}{{.TypeArgs}}{ {{.Field}}: dupe.Handle(h.{{.Field}}) }
}

// {{.Func}} returns a duplicate of v with the same dynamic type.
func {{.Func}}{{.TypeParams}}(v {{.Path}}) {{.Path}} {
	return dupe.Handle(v)
}
{{if not .Generic}}
var _ dupe.Cloner[{{.Handle}}] = {{.Handle}}{}
{{end}}
{{- end}}`))

// Source returns the formatted Go source of a file holding handles for all
// targets.
func Source(opts Options, targets ...Target) ([]byte, error) {
	logger := log.Section("generate").With("package", opts.Package)

	if !token.IsIdentifier(opts.Package) {
		return nil, errors.Errorf("invalid package name %q", opts.Package)
	}
	if len(targets) == 0 {
		return nil, errors.New("no targets to generate")
	}

	data := fileData{Header: header, Package: opts.Package}
	for name, path := range opts.Imports {
		if !token.IsIdentifier(name) {
			return nil, errors.Errorf("invalid import name %q for %q", name, path)
		}
		switch {
		case path == RuntimeImport && name == "dupe":
			continue
		case path == RuntimeImport:
			return nil, errors.Errorf("%s must be imported as dupe, not %s", RuntimeImport, name)
		case name == "dupe":
			return nil, errors.Errorf("import name dupe for %q collides with %s", path, RuntimeImport)
		}
		data.Imports = append(data.Imports, importSpec{Name: name, Path: path})
	}
	sort.Slice(data.Imports, func(i, j int) bool { return data.Imports[i].Path < data.Imports[j].Path })

	declared := map[string]string{}
	declare := func(name, what string) error {
		if !token.IsIdentifier(name) {
			return errors.Errorf("invalid %s name %q", what, name)
		}
		if other, ok := declared[name]; ok {
			return errors.Errorf("%s name %s already used by %s", what, name, other)
		}
		declared[name] = what
		return nil
	}

	for _, t := range targets {
		if t.Signature == nil {
			return nil, errors.New("target without signature")
		}
		sig := t.Signature
		if err := declare(t.HandleName(), "handle"); err != nil {
			return nil, err
		}
		if err := declare(t.FuncName(), "func"); err != nil {
			return nil, err
		}
		if sig.Qualifier == "" && sig.Name == t.HandleName() {
			return nil, errors.Errorf("handle name %s is the interface name", sig.Name)
		}
		data.Targets = append(data.Targets, targetData{
			Handle:     t.HandleName(),
			Func:       t.FuncName(),
			Field:      sig.Name,
			Path:       sig.Path(),
			TypeParams: sig.TypeParamDecl(),
			TypeArgs:   sig.TypeParamNames(),
			Generic:    sig.Generic(),
		})
		logger.Debug("generating handle", "signature", sig.String(), "handle", t.HandleName())
	}

	buf := &bytes.Buffer{}
	if err := fileTemplate.Execute(buf, data); err != nil {
		return nil, errors.Wrap(err, "could not render template")
	}

	filename := opts.Filename
	if filename == "" {
		filename = opts.Package + "_dupe.go"
	}
	out, err := imports.Process(filename, buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "generated code for %s does not parse:\n%s", filename, numbered(buf.Bytes()))
	}
	return out, nil
}

func numbered(src []byte) string {
	sb := &bytes.Buffer{}
	for i, line := range bytes.Split(src, []byte("\n")) {
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString("\t")
		sb.Write(line)
		sb.WriteString("\n")
	}
	return sb.String()
}
