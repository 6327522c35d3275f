// Package scan finds interfaces marked for handle generation in Go sources.
//
// An interface is marked by a directive in its doc comment:
//
//	//dupe:generate handle=ShapeBox func=CloneShapeBox
//	type Shape[T any] interface { ... }
//
// Both arguments are optional.
package scan

import (
	"context"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"strings"

	"github.com/cottand/dupe/generate"
	"github.com/cottand/dupe/internal/log"
	"github.com/cottand/dupe/signature"
	"github.com/cottand/dupe/util"
	"github.com/pkg/errors"
	"golang.org/x/tools/go/packages"
)

const Directive = "//dupe:generate"

// Package is a loaded package with at least one marked interface.
type Package struct {
	Name    string
	Path    string
	Dir     string
	Targets []generate.Target
}

// Load loads the packages matching patterns, relative to dir, and returns
// those declaring marked interfaces.
func Load(ctx context.Context, dir string, patterns ...string) ([]Package, error) {
	logger := log.Section("scan")

	cfg := &packages.Config{
		Context: ctx,
		Dir:     dir,
		Mode:    packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles | packages.NeedSyntax,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrap(err, "could not load packages")
	}

	var found []Package
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, errors.Errorf("could not load %s: %v", pkg.PkgPath, pkg.Errors[0])
		}
		targets, err := Files(pkg.Fset, pkg.Syntax...)
		if err != nil {
			return nil, errors.Wrapf(err, "in package %s", pkg.PkgPath)
		}
		logger.Debug("scanned package", "package", pkg.PkgPath, "targets", len(targets))
		if len(targets) == 0 {
			continue
		}
		found = append(found, Package{
			Name:    pkg.Name,
			Path:    pkg.PkgPath,
			Dir:     filepath.Dir(pkg.GoFiles[0]),
			Targets: targets,
		})
	}
	return found, nil
}

// Files returns a target for every marked interface declared in files.
// Generated files are skipped.
func Files(fset *token.FileSet, files ...*ast.File) ([]generate.Target, error) {
	var targets []generate.Target
	for _, f := range files {
		if ast.IsGenerated(f) {
			continue
		}
		for _, decl := range f.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}
			for _, spec := range gen.Specs {
				ts := spec.(*ast.TypeSpec)
				doc := ts.Doc
				if doc == nil && len(gen.Specs) == 1 {
					doc = gen.Doc
				}
				args, ok := directive(doc)
				if !ok {
					continue
				}
				if _, isInterface := ts.Type.(*ast.InterfaceType); !isInterface {
					return nil, errors.Errorf("%v: %s on %s, which is not an interface", fset.Position(ts.Pos()), Directive, ts.Name.Name)
				}
				target, err := targetFor(ts, args)
				if err != nil {
					return nil, errors.Wrapf(err, "%v", fset.Position(ts.Pos()))
				}
				targets = append(targets, target)
			}
		}
	}
	return targets, nil
}

func directive(doc *ast.CommentGroup) (args string, ok bool) {
	if doc == nil {
		return "", false
	}
	for _, c := range doc.List {
		if c.Text == Directive {
			return "", true
		}
		if rest, found := strings.CutPrefix(c.Text, Directive+" "); found {
			return rest, true
		}
	}
	return "", false
}

// signatureOf renders the declaration of ts as a signature.
func signatureOf(ts *ast.TypeSpec) string {
	if ts.TypeParams == nil || len(ts.TypeParams.List) == 0 {
		return ts.Name.Name
	}
	var params, names []string
	for _, field := range ts.TypeParams.List {
		var fieldNames []string
		for _, n := range field.Names {
			fieldNames = append(fieldNames, n.Name)
		}
		names = append(names, fieldNames...)
		params = append(params, strings.Join(fieldNames, ", ")+" "+types.ExprString(field.Type))
	}
	return "[" + strings.Join(params, ", ") + "] " + ts.Name.Name + "[" + strings.Join(names, ", ") + "]"
}

func targetFor(ts *ast.TypeSpec, args string) (generate.Target, error) {
	sig, err := signature.Parse(signatureOf(ts))
	if err != nil {
		return generate.Target{}, err
	}
	target := generate.Target{Signature: sig}
	for _, arg := range strings.Fields(args) {
		key, value := util.StringTakeUntil(arg, '=')
		if value == "" {
			return generate.Target{}, errors.Errorf("directive argument %q is not key=value", arg)
		}
		switch key {
		case "handle":
			target.Handle = value
		case "func":
			target.Func = value
		default:
			return generate.Target{}, errors.Errorf("unknown directive argument %q", key)
		}
	}
	return target, nil
}
