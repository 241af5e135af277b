package schema

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/types"
	"strings"
)

// TypeExpr is a field's declared type. It is a closed variant: Named for an
// unqualified identifier with optional bracketed type arguments, Other for
// every other expression (pointers, slices, maps, qualified names...).
type TypeExpr interface {
	String() string
	typeExpr()
}

// Named is an unqualified type name such as string, Order or Optional[int].
type Named struct {
	Name string
	Args []TypeExpr
}

func (Named) typeExpr() {}

func (n Named) String() string {
	if len(n.Args) == 0 {
		return n.Name
	}
	args := make([]string, 0, len(n.Args))
	for _, arg := range n.Args {
		args = append(args, arg.String())
	}
	return n.Name + "[" + strings.Join(args, ", ") + "]"
}

// MarshalText encodes the type as Go source text.
func (n Named) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// Other is any type expression that is not a plain Named type. The text is
// kept verbatim.
type Other struct {
	Text string
}

func (Other) typeExpr() {}

func (o Other) String() string {
	return o.Text
}

func (o Other) MarshalText() ([]byte, error) {
	return []byte(o.Text), nil
}

// ParseTypeExpr parses Go type syntax into a TypeExpr.
func ParseTypeExpr(text string) (TypeExpr, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("schema: type expression is empty")
	}
	expr, err := parser.ParseExpr(trimmed)
	if err != nil {
		return nil, fmt.Errorf("schema: parse type %q: %w", trimmed, err)
	}
	return TypeExprFromAST(expr), nil
}

// MustParseTypeExpr panics when the expression cannot be parsed. Useful for
// tests and fixtures.
func MustParseTypeExpr(text string) TypeExpr {
	expr, err := ParseTypeExpr(text)
	if err != nil {
		panic(err)
	}
	return expr
}

// TypeExprFromAST converts a parsed Go type expression.
func TypeExprFromAST(expr ast.Expr) TypeExpr {
	switch t := expr.(type) {
	case *ast.Ident:
		return Named{Name: t.Name}
	case *ast.ParenExpr:
		return TypeExprFromAST(t.X)
	case *ast.IndexExpr:
		if ident, ok := t.X.(*ast.Ident); ok {
			return Named{Name: ident.Name, Args: []TypeExpr{TypeExprFromAST(t.Index)}}
		}
	case *ast.IndexListExpr:
		if ident, ok := t.X.(*ast.Ident); ok {
			args := make([]TypeExpr, 0, len(t.Indices))
			for _, index := range t.Indices {
				args = append(args, TypeExprFromAST(index))
			}
			return Named{Name: ident.Name, Args: args}
		}
	}
	return Other{Text: types.ExprString(expr)}
}
