// Package parser is the front end of the query compiler: it parses query
// text against the grammar and drives the assembler through its callback
// sequence to produce a compiled query.
package parser

import (
	"strings"

	"github.com/finchql/finch/internal/assembler"
	"github.com/finchql/finch/internal/qlang"
	"github.com/finchql/finch/internal/registry"
)

// Parser compiles query strings against one registry. It is stateless
// between calls and safe for concurrent use.
type Parser struct {
	reg *registry.Registry
}

func New(reg *registry.Registry) *Parser {
	return &Parser{reg: reg}
}

// Parse compiles a query string into its native form.
func (p *Parser) Parse(input string) (*qlang.CompiledQuery, error) {
	return p.compile(input, false)
}

// Verify checks a query string for validity without intending execution.
// The returned query is marked validate-only.
func (p *Parser) Verify(input string) (*qlang.CompiledQuery, error) {
	return p.compile(input, true)
}

func (p *Parser) compile(input string, validateOnly bool) (*qlang.CompiledQuery, error) {
	ast, err := queryParser.ParseString("", input)
	if err != nil {
		return nil, qlang.Errorf(qlang.ErrSyntax, "%s", err.Error())
	}

	a := assembler.New(p.reg)
	if err := a.SetQueryType(ast.Type); err != nil {
		return nil, err
	}
	if ast.Fetch != nil {
		if err := a.SetFetchType(*ast.Fetch); err != nil {
			return nil, err
		}
	}

	var fragment string
	if ast.Where != nil {
		fragment, err = p.buildOr(a, ast.Where)
		if err != nil {
			return nil, err
		}
	}

	for _, s := range ast.Sorts {
		a.AddSort(s.Field, s.Dir != nil && *s.Dir == "DESC")
	}
	if ast.Limit != nil {
		if err := a.SetLimit(*ast.Limit); err != nil {
			return nil, err
		}
	}
	if ast.Offset != nil {
		if err := a.SetStartIndex(*ast.Offset); err != nil {
			return nil, err
		}
	}

	a.SetValidateOnly(validateOnly)
	return a.PostParse(fragment), nil
}

// buildOr renders an OR chain. Each operand collapses to one fragment
// first so AND binds tighter than OR.
func (p *Parser) buildOr(a *assembler.Assembler, e *orExpr) (string, error) {
	first, err := p.buildAnd(a, e.First)
	if err != nil {
		return "", err
	}
	if len(e.Rest) == 0 {
		return first, nil
	}
	list := a.AddClause(nil, registry.ConjNone, first, qlang.OpEqual)
	for _, operand := range e.Rest {
		fragment, err := p.buildAnd(a, operand)
		if err != nil {
			return "", err
		}
		list = a.AddClause(list, registry.ConjOr, fragment, qlang.OpEqual)
	}
	return a.BooleanQuery(list), nil
}

func (p *Parser) buildAnd(a *assembler.Assembler, e *andExpr) (string, error) {
	fragment, negated, err := p.buildUnary(a, e.First)
	if err != nil {
		return "", err
	}
	list := a.AddClause(nil, registry.ConjNone, fragment, clauseOp(negated))
	for _, operand := range e.Rest {
		fragment, negated, err = p.buildUnary(a, operand)
		if err != nil {
			return "", err
		}
		list = a.AddClause(list, registry.ConjAnd, fragment, clauseOp(negated))
	}
	return a.BooleanQuery(list), nil
}

// buildUnary renders a NOT chain, group, or comparison term. The negated
// flag travels up so the enclosing clause list applies the dialect's
// negation form; double negation cancels.
func (p *Parser) buildUnary(a *assembler.Assembler, e *unaryExpr) (string, bool, error) {
	switch {
	case e.Not != nil:
		fragment, negated, err := p.buildUnary(a, e.Not)
		return fragment, !negated, err

	case e.Group != nil:
		fragment, err := p.buildOr(a, e.Group)
		return fragment, false, err

	default:
		fragment, err := p.buildTerm(a, e.Term)
		return fragment, e.Term.Op == string(qlang.OpNotEqual), err
	}
}

func (p *Parser) buildTerm(a *assembler.Assembler, n *termNode) (string, error) {
	literal, quoted := literalOf(n.Value)
	term, err := a.MakeTerm(n.Field, deref(n.Param2), deref(n.Param1), n.Op, literal, quoted)
	if err != nil {
		return "", err
	}
	return a.BuildTerm(term)
}

func clauseOp(negated bool) qlang.Operator {
	if negated {
		return qlang.OpNotEqual
	}
	return qlang.OpEqual
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func literalOf(v *valueNode) (string, bool) {
	switch {
	case v.Str != nil:
		return unquote(*v.Str), true
	case v.Number != nil:
		return *v.Number, false
	default:
		return deref(v.Ident), false
	}
}

// unquote strips the surrounding quotes and resolves backslash escapes.
// The lexer guarantees a well-formed quoted token.
func unquote(tok string) string {
	body := tok[1 : len(tok)-1]
	if !strings.ContainsRune(body, '\\') {
		return body
	}
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' && i+1 < len(body) {
			i++
		}
		b.WriteByte(body[i])
	}
	return b.String()
}
