package parser

import (
	"strconv"

	"github.com/kristofer/prog/internal/ast"
	"github.com/kristofer/prog/internal/lexer"
	"github.com/kristofer/prog/internal/span"
)

// parseTermWithSuffixes parses a prefix term then greedily wraps it in
// call/index/field suffixes, per spec §4.3: "After the prefix, the parser
// loops, greedily wrapping the term in (args) (call), [index]
// (index-access), or .field (field-access) suffixes."
func (p *Parser) parseTermWithSuffixes() (ast.Expression, error) {
	term, err := p.parsePrefixTerm()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Kind {
		case lexer.LParen:
			p.next()
			args, err := p.parseExprList(lexer.RParen)
			if err != nil {
				return nil, err
			}
			end, err := p.expect(lexer.RParen)
			if err != nil {
				return nil, err
			}
			term = &ast.Call{Callee: term, Args: args, Sp: span.Merge(term.Span(), end.Span)}
		case lexer.LBracket:
			p.next()
			idx, err := p.parseExpression(0)
			if err != nil {
				return nil, err
			}
			end, err := p.expect(lexer.RBracket)
			if err != nil {
				return nil, err
			}
			term = &ast.IndexAccess{Target: term, Index: idx, Sp: span.Merge(term.Span(), end.Span)}
		case lexer.Dot:
			p.next()
			name, err := p.expect(lexer.Identifier)
			if err != nil {
				return nil, err
			}
			term = &ast.FieldAccess{Target: term, Name: name.Value(), Sp: span.Merge(term.Span(), name.Span)}
		default:
			return term, nil
		}
	}
}

// parsePrefixTerm parses one of: literal, identifier, parenthesized
// expression, function literal, list literal, object literal, extern.
func (p *Parser) parsePrefixTerm() (ast.Expression, error) {
	tok := p.peek()
	switch tok.Kind {
	case lexer.Number:
		p.next()
		v, err := strconv.ParseFloat(tok.Value(), 64)
		if err != nil {
			return nil, p.internal(tok, "malformed number survived lexing: "+err.Error())
		}
		return &ast.NumberLit{Value: v, Sp: tok.Span}, nil
	case lexer.String:
		p.next()
		return &ast.StringLit{Value: tok.StringContent(), Sp: tok.Span}, nil
	case lexer.KwTrue:
		p.next()
		return &ast.BoolLit{Value: true, Sp: tok.Span}, nil
	case lexer.KwFalse:
		p.next()
		return &ast.BoolLit{Value: false, Sp: tok.Span}, nil
	case lexer.KwNone:
		p.next()
		return &ast.NoneLit{Sp: tok.Span}, nil
	case lexer.Identifier:
		p.next()
		return &ast.Ident{Name: tok.Value(), Sp: tok.Span}, nil
	case lexer.LParen:
		return p.parseParenExpr()
	case lexer.KwFunc:
		return p.parseFuncLit()
	case lexer.LBracket:
		return p.parseListLit()
	case lexer.LBrace:
		return p.parseObjectLit()
	case lexer.KwExtern:
		return p.parseExternRef()
	default:
		return nil, p.unexpected(tok)
	}
}

func (p *Parser) parseParenExpr() (ast.Expression, error) {
	start, err := p.expect(lexer.LParen)
	if err != nil {
		return nil, err
	}
	inner, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	end, err := p.expect(lexer.RParen)
	if err != nil {
		return nil, err
	}
	return &ast.Paren{Inner: inner, Sp: span.Merge(start.Span, end.Span)}, nil
}

func (p *Parser) parseExternRef() (ast.Expression, error) {
	start, err := p.expect(lexer.KwExtern)
	if err != nil {
		return nil, err
	}
	name, err := p.expect(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	return &ast.ExternRef{Name: name.Value(), Sp: span.Merge(start.Span, name.Span)}, nil
}

func (p *Parser) parseFuncLit() (ast.Expression, error) {
	start, err := p.expect(lexer.KwFunc)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	var params []string
	for p.peek().Kind != lexer.RParen {
		name, err := p.expect(lexer.Identifier)
		if err != nil {
			return nil, err
		}
		params = append(params, name.Value())
		if p.peek().Kind == lexer.Comma {
			p.next()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	body, err := p.parseDoBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FuncLit{Params: params, Body: body, Sp: span.Merge(start.Span, body.Span())}, nil
}
