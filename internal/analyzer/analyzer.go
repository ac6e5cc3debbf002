// Package analyzer finds the function or method declaration enclosing a
// cursor position in Go source and describes it as a CallSite.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/types"
	"os"
	"path/filepath"

	"golang.org/x/tools/go/packages"

	"github.com/soyeahso/anydoor/internal/domain"
	"github.com/soyeahso/anydoor/internal/logging"
)

// ErrNotApplicable means the cursor is not inside an invocable declaration.
var ErrNotApplicable = errors.New("cursor is not inside a function or method declaration")

// adHocPkgPath is the path the go command gives a file outside any module.
const adHocPkgPath = "command-line-arguments"

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
	packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo

// Analyzer resolves cursor positions with full type information, falling back
// to a syntax-only parse when the enclosing package cannot be loaded.
type Analyzer struct {
	// BuildFlags are passed to the go command, e.g. -tags=integration.
	BuildFlags []string

	log *logging.Logger
}

// New creates an Analyzer.
func New(log *logging.Logger) *Analyzer {
	return &Analyzer{log: log.Sub("analyzer")}
}

// Available reports whether pos lies inside a function or method declaration.
func (a *Analyzer) Available(ctx context.Context, pos Position) bool {
	_, err := a.Locate(ctx, pos)
	return err == nil
}

// Locate returns the call site enclosing pos, or ErrNotApplicable.
func (a *Analyzer) Locate(ctx context.Context, pos Position) (*domain.CallSite, error) {
	abs, err := filepath.Abs(pos.File)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, err
	}

	pkg, file, err := a.load(ctx, abs)
	if err != nil {
		a.log.Debug().Err(err).Str("file", abs).Msg("package load failed, using syntax only")
		return ParseFile(abs, nil, "", pos.Line, pos.Column)
	}

	p, err := offset(pkg.Fset.File(file.Pos()), pos.Line, pos.Column)
	if err != nil {
		return nil, err
	}
	fd := enclosingFunc(file, p)
	if fd == nil {
		return nil, ErrNotApplicable
	}

	fn, ok := pkg.TypesInfo.Defs[fd.Name].(*types.Func)
	if !ok {
		a.log.Debug().Str("func", fd.Name.Name).Msg("no type information, using syntax only")
		return ParseFile(abs, nil, pkg.PkgPath, pos.Line, pos.Column)
	}

	if !resolved(fn.Type().(*types.Signature)) {
		a.log.Debug().Str("func", fd.Name.Name).Msg("unresolved parameter types, using syntax only")
		return ParseFile(abs, nil, pkg.PkgPath, pos.Line, pos.Column)
	}

	site := callSiteFor(pkg.PkgPath, fn)
	a.log.Debug().Str("key", site.Key()).Str("pos", pos.String()).Msg("call site resolved")
	return site, nil
}

// load type-checks the package containing filename and returns its syntax
// tree for that file. Test files are included.
func (a *Analyzer) load(ctx context.Context, filename string) (*packages.Package, *ast.File, error) {
	cfg := &packages.Config{
		Context:    ctx,
		Mode:       loadMode,
		Dir:        filepath.Dir(filename),
		Tests:      true,
		BuildFlags: a.BuildFlags,
	}
	pkgs, err := packages.Load(cfg, "file="+filename)
	if err != nil {
		return nil, nil, fmt.Errorf("loading package: %w", err)
	}

	for _, pkg := range pkgs {
		if pkg.TypesInfo == nil {
			continue
		}
		if pkg.PkgPath == adHocPkgPath {
			return nil, nil, fmt.Errorf("%s is not part of a module", filename)
		}
		for _, f := range pkg.Syntax {
			if sameFile(pkg.Fset.File(f.Pos()).Name(), filename) {
				return pkg, f, nil
			}
		}
	}
	return nil, nil, fmt.Errorf("no loaded package contains %s", filename)
}

func sameFile(a, b string) bool {
	if a == b {
		return true
	}
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

// callSiteFor describes fn. Methods are qualified by their receiver's named
// type, plain functions by their package path.
func callSiteFor(pkgPath string, fn *types.Func) *domain.CallSite {
	sig := fn.Type().(*types.Signature)

	site := &domain.CallSite{
		QualifiedTypeName:  pkgPath,
		MemberName:         fn.Name(),
		ParameterTypeNames: []string{},
		ParameterNames:     []string{},
	}
	if recv := sig.Recv(); recv != nil {
		site.QualifiedTypeName = receiverTypeName(recv.Type(), pkgPath)
	}

	params := sig.Params()
	for i := 0; i < params.Len(); i++ {
		v := params.At(i)
		typ := types.TypeString(v.Type(), nil)
		if sig.Variadic() && i == params.Len()-1 {
			if s, ok := v.Type().(*types.Slice); ok {
				typ = "..." + types.TypeString(s.Elem(), nil)
			}
		}
		site.ParameterNames = append(site.ParameterNames, paramName(v.Name(), i))
		site.ParameterTypeNames = append(site.ParameterTypeNames, typ)
	}
	return site
}

// resolved reports whether the receiver and every parameter type checked.
func resolved(sig *types.Signature) bool {
	if recv := sig.Recv(); recv != nil && hasInvalid(recv.Type()) {
		return false
	}
	params := sig.Params()
	for i := 0; i < params.Len(); i++ {
		if hasInvalid(params.At(i).Type()) {
			return false
		}
	}
	return true
}

func hasInvalid(t types.Type) bool {
	switch t := t.(type) {
	case *types.Basic:
		return t.Kind() == types.Invalid
	case *types.Pointer:
		return hasInvalid(t.Elem())
	case *types.Slice:
		return hasInvalid(t.Elem())
	case *types.Array:
		return hasInvalid(t.Elem())
	case *types.Chan:
		return hasInvalid(t.Elem())
	case *types.Map:
		return hasInvalid(t.Key()) || hasInvalid(t.Elem())
	case *types.Signature:
		return !resolved(t) || tupleInvalid(t.Results())
	}
	return false
}

func tupleInvalid(tup *types.Tuple) bool {
	for i := 0; i < tup.Len(); i++ {
		if hasInvalid(tup.At(i).Type()) {
			return true
		}
	}
	return false
}

func receiverTypeName(t types.Type, pkgPath string) string {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	if named, ok := t.(*types.Named); ok {
		obj := named.Origin().Obj()
		if obj.Pkg() != nil {
			return obj.Pkg().Path() + "." + obj.Name()
		}
		return obj.Name()
	}
	return pkgPath + "." + types.TypeString(t, func(*types.Package) string { return "" })
}
