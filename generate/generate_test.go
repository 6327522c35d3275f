package generate_test

import (
	"context"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cottand/dupe/generate"
	"github.com/cottand/dupe/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"
)

// runtimeStub declares the parts of the runtime package generated code uses.
const runtimeStub = `package dupe

type Cloner[T any] interface{ Clone() T }

func Handle[I any](h I) I { return h }
`

// traits declares the interfaces the generated handles refer to.
const traits = `package traits

type Capability interface{ Capable() }

type Trait interface{ Name() string }

type Generic[T any] interface{ Get() T }

type Pair[T comparable, U any] interface{ Both() (T, U) }

type Bounded[T Capability] interface{ Use(T) }
`

type importerFunc func(path string) (*types.Package, error)

func (f importerFunc) Import(path string) (*types.Package, error) { return f(path) }

// typeCheck checks src together with traits, so generated code is known to
// compile against the runtime package signatures.
func typeCheck(t *testing.T, src []byte) *types.Package {
	t.Helper()
	fset := token.NewFileSet()

	stub, err := parser.ParseFile(fset, "dupe.go", runtimeStub, 0)
	require.NoError(t, err)
	dupePkg, err := (&types.Config{}).Check(generate.RuntimeImport, fset, []*ast.File{stub}, nil)
	require.NoError(t, err)

	std := importer.Default()
	conf := &types.Config{Importer: importerFunc(func(path string) (*types.Package, error) {
		if path == generate.RuntimeImport {
			return dupePkg, nil
		}
		return std.Import(path)
	})}

	generated, err := parser.ParseFile(fset, "traits_dupe.go", src, parser.ParseComments)
	require.NoError(t, err, "generated:\n%s", src)
	decls, err := parser.ParseFile(fset, "traits.go", traits, 0)
	require.NoError(t, err)

	pkg, err := conf.Check("example.com/traits", fset, []*ast.File{decls, generated}, nil)
	require.NoError(t, err, "generated:\n%s", src)
	return pkg
}

func target(t *testing.T, sig string) generate.Target {
	t.Helper()
	parsed, err := signature.Parse(sig)
	require.NoError(t, err)
	return generate.Target{Signature: parsed}
}

func TestSourceCompiles(t *testing.T) {
	tests := map[string]struct {
		signature string
		handle    string
		decl      string
	}{
		"plain": {
			signature: "Trait",
			handle:    "TraitHandle",
			decl:      "type TraitHandle struct",
		},
		"type parameter": {
			signature: "[T] Generic[T]",
			handle:    "GenericHandle",
			decl:      "type GenericHandle[T any] struct",
		},
		"generic bound": {
			signature: "[T comparable, U] Pair[T, U]",
			handle:    "PairHandle",
			decl:      "type PairHandle[T comparable, U any] struct",
		},
		"where clause": {
			signature: "[T] Bounded[T] where T: Capability",
			handle:    "BoundedHandle",
			decl:      "type BoundedHandle[T Capability] struct",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			src, err := generate.Source(generate.Options{Package: "traits"}, target(t, tc.signature))
			require.NoError(t, err)
			assert.Contains(t, string(src), tc.decl)

			pkg := typeCheck(t, src)
			handle := pkg.Scope().Lookup(tc.handle)
			require.NotNil(t, handle, "no %s in generated code", tc.handle)

			named := handle.Type().(*types.Named)
			var clone *types.Func
			for i := 0; i < named.NumMethods(); i++ {
				if named.Method(i).Name() == "Clone" {
					clone = named.Method(i)
				}
			}
			require.NotNil(t, clone, "%s has no Clone method", tc.handle)

			// Clone returns the handle type itself, so the handle is a dupe.Cloner
			result := clone.Type().(*types.Signature).Results().At(0).Type()
			assert.Equal(t, named.Obj(), result.(*types.Named).Obj())
		})
	}
}

// TestSourceCompilesAgainstRuntime replaces the checked-in handles of
// internal/traits with freshly generated ones and type-checks the package
// against the real runtime.
func TestSourceCompilesAgainstRuntime(t *testing.T) {
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go command not available")
	}
	src, err := generate.Source(
		generate.Options{Package: "traits", Filename: "traits_dupe.go"},
		target(t, "Trait"),
		target(t, "[T] Generic[T]"),
		target(t, "[T comparable, U] Pair[T, U]"),
		target(t, "[T] Bounded[T] where T: Capability"),
	)
	require.NoError(t, err)

	path, err := filepath.Abs(filepath.Join("internal", "traits", "traits_dupe.go"))
	require.NoError(t, err)
	cfg := &packages.Config{
		Context: context.Background(),
		Mode:    packages.NeedName | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo,
		Overlay: map[string][]byte{path: src},
	}
	pkgs, err := packages.Load(cfg, "./internal/traits")
	require.NoError(t, err)
	require.Len(t, pkgs, 1)

	for _, e := range pkgs[0].Errors {
		t.Errorf("%v", e)
	}
	if t.Failed() {
		t.Logf("generated:\n%s", src)
		return
	}
	for _, name := range []string{"TraitHandle", "GenericHandle", "PairHandle", "BoundedHandle"} {
		assert.NotNil(t, pkgs[0].Types.Scope().Lookup(name), "no %s in generated code", name)
	}
}

func TestSourceSeveralTargets(t *testing.T) {
	src, err := generate.Source(
		generate.Options{Package: "traits"},
		target(t, "Trait"),
		generate.Target{Signature: target(t, "[T] Generic[T]").Signature, Handle: "GenericBox", Func: "DuplicateGeneric"},
	)
	require.NoError(t, err)

	s := string(src)
	assert.Contains(t, s, "// Code generated by dupegen. DO NOT EDIT.")
	assert.Contains(t, s, "func CloneTrait(v Trait) Trait {")
	assert.Contains(t, s, "var _ dupe.Cloner[TraitHandle] = TraitHandle{}")
	assert.Contains(t, s, "func (h GenericBox[T]) Clone() GenericBox[T] {")
	assert.Contains(t, s, "return GenericBox[T]{Generic: dupe.Handle(h.Generic)}")
	assert.Contains(t, s, "func DuplicateGeneric[T any](v Generic[T]) Generic[T] {")

	typeCheck(t, src)
}

func TestSourceAddsStandardImports(t *testing.T) {
	src, err := generate.Source(generate.Options{Package: "traits"}, target(t, "[T] Generic[T] where T: fmt.Stringer"))
	require.NoError(t, err)

	s := string(src)
	assert.Contains(t, s, `"fmt"`)
	assert.Contains(t, s, "type GenericHandle[T fmt.Stringer] struct")
}

func TestSourceNamedImports(t *testing.T) {
	src, err := generate.Source(generate.Options{
		Package: "consumer",
		Imports: map[string]string{
			"shapes": "example.com/geometry/shapes",
			"unused": "example.com/unused",
		},
	}, target(t, "shapes.Shape"))
	require.NoError(t, err)

	s := string(src)
	assert.Contains(t, s, `shapes "example.com/geometry/shapes"`)
	assert.NotContains(t, s, "example.com/unused")
	assert.Contains(t, s, "type ShapeHandle struct {\n\tshapes.Shape\n}")
	assert.Contains(t, s, "return ShapeHandle{Shape: dupe.Handle(h.Shape)}")
}

func TestSourceRuntimeImport(t *testing.T) {
	src, err := generate.Source(generate.Options{
		Package: "traits",
		Imports: map[string]string{"dupe": generate.RuntimeImport},
	}, target(t, "[T] Generic[T] where T: dupe.Duplicable"))
	require.NoError(t, err)

	s := string(src)
	assert.Equal(t, 1, strings.Count(s, `"github.com/cottand/dupe"`))
	assert.Contains(t, s, "type GenericHandle[T dupe.Duplicable] struct")
}

func TestSourceUnexportedInterface(t *testing.T) {
	sig, err := signature.Parse("trait")
	require.NoError(t, err)
	tgt := generate.Target{Signature: sig}

	assert.Equal(t, "traitHandle", tgt.HandleName())
	assert.Equal(t, "cloneTrait", tgt.FuncName())
}

func TestSourceErrors(t *testing.T) {
	plain := target(t, "Trait")

	tests := map[string]struct {
		opts    generate.Options
		targets []generate.Target
		msg     string
	}{
		"bad package": {
			opts:    generate.Options{Package: "not a package"},
			targets: []generate.Target{plain},
			msg:     "invalid package name",
		},
		"no targets": {
			opts: generate.Options{Package: "traits"},
			msg:  "no targets",
		},
		"duplicate handle": {
			opts:    generate.Options{Package: "traits"},
			targets: []generate.Target{plain, plain},
			msg:     "already used",
		},
		"handle shadows interface": {
			opts:    generate.Options{Package: "traits"},
			targets: []generate.Target{{Signature: plain.Signature, Handle: "Trait"}},
			msg:     "is the interface name",
		},
		"bad handle name": {
			opts:    generate.Options{Package: "traits"},
			targets: []generate.Target{{Signature: plain.Signature, Handle: "1Handle"}},
			msg:     "invalid handle name",
		},
		"bad import name": {
			opts:    generate.Options{Package: "traits", Imports: map[string]string{"a-b": "example.com/ab"}},
			targets: []generate.Target{plain},
			msg:     "invalid import name",
		},
		"runtime under another name": {
			opts:    generate.Options{Package: "traits", Imports: map[string]string{"d": generate.RuntimeImport}},
			targets: []generate.Target{plain},
			msg:     "must be imported as dupe",
		},
		"import shadows runtime": {
			opts:    generate.Options{Package: "traits", Imports: map[string]string{"dupe": "example.com/other/dupe"}},
			targets: []generate.Target{plain},
			msg:     "collides with",
		},
		"missing signature": {
			opts:    generate.Options{Package: "traits"},
			targets: []generate.Target{{Handle: "X"}},
			msg:     "without signature",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := generate.Source(tc.opts, tc.targets...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}
