package analyzer

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path"
	"strconv"
	"strings"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/soyeahso/anydoor/internal/domain"
)

// enclosingFunc returns the outermost function declaration containing pos.
// Function literals are not declarations; the surrounding FuncDecl wins.
func enclosingFunc(file *ast.File, pos token.Pos) *ast.FuncDecl {
	nodes, _ := astutil.PathEnclosingInterval(file, pos, pos)
	for i := len(nodes) - 1; i >= 0; i-- {
		if fd, ok := nodes[i].(*ast.FuncDecl); ok {
			return fd
		}
	}
	return nil
}

// paramName names the i-th parameter, substituting argN for unnamed or
// blank parameters.
func paramName(name string, i int) string {
	if name == "" || name == "_" {
		return "arg" + strconv.Itoa(i)
	}
	return name
}

// ParseFile locates the call site at line/col in a single source file without
// type information. Local type names are qualified with pkgPath, or with the
// file's package name when pkgPath is empty. src may be nil to read filename.
func ParseFile(filename string, src any, pkgPath string, line, col int) (*domain.CallSite, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	if pkgPath == "" {
		pkgPath = file.Name.Name
	}

	p, err := offset(fset.File(file.Pos()), line, col)
	if err != nil {
		return nil, err
	}
	fd := enclosingFunc(file, p)
	if fd == nil {
		return nil, ErrNotApplicable
	}

	q := newSyntaxQualifier(file, fd, pkgPath)
	site := &domain.CallSite{
		QualifiedTypeName:  pkgPath,
		MemberName:         fd.Name.Name,
		ParameterTypeNames: []string{},
		ParameterNames:     []string{},
	}
	if fd.Recv != nil && len(fd.Recv.List) > 0 {
		site.QualifiedTypeName = pkgPath + "." + receiverName(fd.Recv.List[0].Type)
	}

	i := 0
	for _, field := range fd.Type.Params.List {
		typ := q.typeString(field.Type)
		if len(field.Names) == 0 {
			site.ParameterNames = append(site.ParameterNames, paramName("", i))
			site.ParameterTypeNames = append(site.ParameterTypeNames, typ)
			i++
			continue
		}
		for _, n := range field.Names {
			site.ParameterNames = append(site.ParameterNames, paramName(n.Name, i))
			site.ParameterTypeNames = append(site.ParameterTypeNames, typ)
			i++
		}
	}
	return site, nil
}

// receiverName strips pointers and type parameters from a receiver type.
func receiverName(expr ast.Expr) string {
	for {
		switch e := expr.(type) {
		case *ast.StarExpr:
			expr = e.X
		case *ast.ParenExpr:
			expr = e.X
		case *ast.IndexExpr:
			expr = e.X
		case *ast.IndexListExpr:
			expr = e.X
		case *ast.Ident:
			return e.Name
		default:
			return types.ExprString(expr)
		}
	}
}

// receiverTypeParams returns the type parameter names declared by a generic
// receiver such as *List[K, V].
func receiverTypeParams(expr ast.Expr) []string {
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	var idx []ast.Expr
	switch e := expr.(type) {
	case *ast.IndexExpr:
		idx = []ast.Expr{e.Index}
	case *ast.IndexListExpr:
		idx = e.Indices
	}
	var names []string
	for _, x := range idx {
		if id, ok := x.(*ast.Ident); ok {
			names = append(names, id.Name)
		}
	}
	return names
}

// syntaxQualifier renders type expressions the way types.TypeString does
// with a nil qualifier: package-path qualified.
type syntaxQualifier struct {
	pkgPath    string
	imports    map[string]string // local name -> import path
	typeParams map[string]bool
}

func newSyntaxQualifier(file *ast.File, fd *ast.FuncDecl, pkgPath string) *syntaxQualifier {
	q := &syntaxQualifier{
		pkgPath:    pkgPath,
		imports:    make(map[string]string),
		typeParams: make(map[string]bool),
	}
	if fd.Type.TypeParams != nil {
		for _, f := range fd.Type.TypeParams.List {
			for _, n := range f.Names {
				q.typeParams[n.Name] = true
			}
		}
	}
	if fd.Recv != nil && len(fd.Recv.List) > 0 {
		for _, n := range receiverTypeParams(fd.Recv.List[0].Type) {
			q.typeParams[n] = true
		}
	}
	for _, imp := range file.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		name := path.Base(p)
		if imp.Name != nil {
			name = imp.Name.Name
		}
		q.imports[name] = p
	}
	return q
}

func (q *syntaxQualifier) typeString(expr ast.Expr) string {
	var b strings.Builder
	q.write(&b, expr)
	return b.String()
}

func (q *syntaxQualifier) write(b *strings.Builder, expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Ident:
		if q.typeParams[e.Name] || types.Universe.Lookup(e.Name) != nil {
			b.WriteString(e.Name)
			return
		}
		b.WriteString(q.pkgPath + "." + e.Name)
	case *ast.SelectorExpr:
		if x, ok := e.X.(*ast.Ident); ok {
			if p, ok := q.imports[x.Name]; ok {
				b.WriteString(p + "." + e.Sel.Name)
				return
			}
		}
		b.WriteString(types.ExprString(e))
	case *ast.StarExpr:
		b.WriteByte('*')
		q.write(b, e.X)
	case *ast.ParenExpr:
		q.write(b, e.X)
	case *ast.Ellipsis:
		b.WriteString("...")
		q.write(b, e.Elt)
	case *ast.ArrayType:
		b.WriteByte('[')
		if e.Len != nil {
			b.WriteString(types.ExprString(e.Len))
		}
		b.WriteByte(']')
		q.write(b, e.Elt)
	case *ast.MapType:
		b.WriteString("map[")
		q.write(b, e.Key)
		b.WriteByte(']')
		q.write(b, e.Value)
	case *ast.ChanType:
		switch e.Dir {
		case ast.SEND:
			b.WriteString("chan<- ")
		case ast.RECV:
			b.WriteString("<-chan ")
		default:
			b.WriteString("chan ")
		}
		q.write(b, e.Value)
	case *ast.IndexExpr:
		q.write(b, e.X)
		b.WriteByte('[')
		q.write(b, e.Index)
		b.WriteByte(']')
	case *ast.IndexListExpr:
		q.write(b, e.X)
		b.WriteByte('[')
		for i, idx := range e.Indices {
			if i > 0 {
				b.WriteString(", ")
			}
			q.write(b, idx)
		}
		b.WriteByte(']')
	default:
		b.WriteString(types.ExprString(expr))
	}
}
