package parser

import (
	"github.com/kristofer/prog/internal/ast"
	"github.com/kristofer/prog/internal/lexer"
	"github.com/kristofer/prog/internal/span"
)

// parseExprList parses a comma-punctuated list of expressions up to (but
// not consuming) a terminator token. Empty lists are valid here (argument
// lists, list literals), per spec §4.3.
func (p *Parser) parseExprList(terminator lexer.Kind) (ast.PunctuatedList[ast.Expression], error) {
	start := p.peek().Span
	var items []ast.Expression
	for p.peek().Kind != terminator {
		item, err := p.parseExpression(0)
		if err != nil {
			return ast.PunctuatedList[ast.Expression]{}, err
		}
		items = append(items, item)
		if p.peek().Kind == lexer.Comma {
			p.next()
			continue
		}
		break
	}
	end := start
	if len(items) > 0 {
		end = items[len(items)-1].Span()
	}
	return ast.NewPunctuatedList(items, span.Merge(start, end)), nil
}

func (p *Parser) parseListLit() (ast.Expression, error) {
	start, err := p.expect(lexer.LBracket)
	if err != nil {
		return nil, err
	}
	items, err := p.parseExprList(lexer.RBracket)
	if err != nil {
		return nil, err
	}
	end, err := p.expect(lexer.RBracket)
	if err != nil {
		return nil, err
	}
	return &ast.ListLit{Items: items, Sp: span.Merge(start.Span, end.Span)}, nil
}

// parseObjectLit parses `{ name = value, ... }`. Duplicate keys are
// rejected at evaluation time (spec §7: duplicate object entry), not here,
// since the parser performs no semantic analysis.
func (p *Parser) parseObjectLit() (ast.Expression, error) {
	start, err := p.expect(lexer.LBrace)
	if err != nil {
		return nil, err
	}
	var pairs []ast.ObjectPair
	for p.peek().Kind != lexer.RBrace {
		nameTok, err := p.expect(lexer.Identifier)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Assign); err != nil {
			return nil, err
		}
		val, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, ast.ObjectPair{Name: nameTok.Value(), Value: val, Sp: span.Merge(nameTok.Span, val.Span())})
		if p.peek().Kind == lexer.Comma {
			p.next()
			continue
		}
		break
	}
	end, err := p.expect(lexer.RBrace)
	if err != nil {
		return nil, err
	}
	pairsStart := start.Span
	if len(pairs) > 0 {
		pairsStart = pairs[0].Span()
	}
	pairsEnd := pairsStart
	if len(pairs) > 0 {
		pairsEnd = pairs[len(pairs)-1].Span()
	}
	list := ast.NewPunctuatedList(pairs, span.Merge(pairsStart, pairsEnd))
	return &ast.ObjectLit{Pairs: list, Sp: span.Merge(start.Span, end.Span)}, nil
}
