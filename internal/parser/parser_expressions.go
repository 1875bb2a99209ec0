package parser

import (
	"github.com/kristofer/prog/internal/ast"
	"github.com/kristofer/prog/internal/lexer"
	"github.com/kristofer/prog/internal/span"
)

// parseExpression implements Pratt-style operator-precedence climbing
// using precedenceTable as the single source of truth for binding powers
// (spec §4.3, §9). minBP is the minimum left binding power a following
// binary operator must have to be consumed at this recursion level.
func (p *Parser) parseExpression(minBP int) (ast.Expression, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		opTok := p.peek()
		if !isBinaryOperator(opTok.Kind) {
			break
		}
		bp := precedenceTable[opTok.Kind]
		// An operator with equal left/right powers (`or`) does not nest
		// into its own right operand, so a chain of it groups leftward.
		if bp.Left < minBP || (bp.Left == bp.Right && bp.Left == minBP) {
			break
		}
		p.next() // consume operator
		rhs, err := p.parseExpression(bp.Right)
		if err != nil {
			return nil, err
		}
		lhs = &ast.Binary{Lhs: lhs, Op: opText(opTok.Kind), Rhs: rhs, Sp: span.Merge(lhs.Span(), rhs.Span())}
	}

	return lhs, nil
}

// parseUnary handles `not` and unary `-`, which bind tighter than any
// binary operator but looser than postfix call/index/field suffixes (those
// are already applied by the time parseTermWithSuffixes returns).
func (p *Parser) parseUnary() (ast.Expression, error) {
	tok := p.peek()
	if tok.Kind == lexer.KwNot || tok.Kind == lexer.Minus {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: opText(tok.Kind), Operand: operand, Sp: span.Merge(tok.Span, operand.Span())}, nil
	}
	return p.parseTermWithSuffixes()
}
