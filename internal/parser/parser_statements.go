package parser

import (
	"github.com/kristofer/prog/internal/ast"
	"github.com/kristofer/prog/internal/diag"
	"github.com/kristofer/prog/internal/lexer"
	"github.com/kristofer/prog/internal/span"
)

// parseStatement recognises a statement by one token of lookahead, per
// spec §4.3.
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.peek().Kind {
	case lexer.KwDef:
		return p.parseVarDefine()
	case lexer.KwDo:
		return p.parseDoBlockStmt()
	case lexer.KwReturn:
		return p.parseReturn()
	case lexer.KwBreak:
		tok := p.next()
		return &ast.BreakStmt{Sp: tok.Span}, nil
	case lexer.KwContinue:
		tok := p.next()
		return &ast.ContinueStmt{Sp: tok.Span}, nil
	case lexer.KwWhile:
		return p.parseWhile()
	case lexer.KwIf:
		return p.parseIf()
	case lexer.KwClass:
		return p.parseClassDef()
	default:
		return p.parseAssignOrCallStatement()
	}
}

func (p *Parser) parseVarDefine() (ast.Statement, error) {
	start := p.next().Span // consume `def`
	name, err := p.expect(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	var init ast.Expression
	end := name.Span
	if p.peek().Kind == lexer.Assign {
		p.next()
		init, err = p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		end = init.Span()
	}
	return &ast.VarDefine{Name: name.Value(), Init: init, Sp: span.Merge(start, end)}, nil
}

func (p *Parser) parseDoBlockStmt() (ast.Statement, error) {
	block, err := p.parseDoBlock()
	if err != nil {
		return nil, err
	}
	return block, nil
}

// parseDoBlock parses `do stmts end`, used both as a standalone statement
// and as the body of while/if/func.
func (p *Parser) parseDoBlock() (*ast.DoBlock, error) {
	start, err := p.expect(lexer.KwDo)
	if err != nil {
		return nil, err
	}
	var stmts []ast.Statement
	for p.peek().Kind != lexer.KwEnd && p.peek().Kind != lexer.EOF {
		if isBlockTerminator(p.peek().Kind) {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	end, err := p.expect(lexer.KwEnd)
	if err != nil {
		return nil, err
	}
	return &ast.DoBlock{Statements: stmts, Sp: span.Merge(start.Span, end.Span)}, nil
}

// isBlockTerminator reports whether k ends an open do-block without being
// consumed by parseDoBlock itself — used by if's then-block, which may be
// terminated by `elseif`/`else` instead of `end`.
func isBlockTerminator(k lexer.Kind) bool {
	return k == lexer.KwElseif || k == lexer.KwElse
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	start := p.next().Span // consume `return`
	if p.atStatementBoundary() {
		return &ast.ReturnStmt{Sp: start}, nil
	}
	val, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Value: val, Sp: span.Merge(start, val.Span())}, nil
}

// atStatementBoundary reports whether the next token cannot begin an
// expression, i.e. a bare `return` with no value.
func (p *Parser) atStatementBoundary() bool {
	switch p.peek().Kind {
	case lexer.KwEnd, lexer.KwElseif, lexer.KwElse, lexer.EOF,
		lexer.KwDef, lexer.KwDo, lexer.KwReturn, lexer.KwBreak, lexer.KwContinue,
		lexer.KwWhile, lexer.KwIf, lexer.KwClass:
		return true
	default:
		return false
	}
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	start := p.next().Span // consume `while`
	cond, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	body, err := p.parseDoBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Cond: cond, Body: body, Sp: span.Merge(start, body.Span())}, nil
}

func (p *Parser) parseIf() (ast.Statement, error) {
	start := p.next().Span // consume `if`
	cond, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	then, err := p.parseDoBlockOpenEnded()
	if err != nil {
		return nil, err
	}

	var elseIfs []ast.ElseIfBranch
	for p.peek().Kind == lexer.KwElseif {
		eiStart := p.next().Span
		eiCond, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		eiBody, err := p.parseDoBlockOpenEnded()
		if err != nil {
			return nil, err
		}
		elseIfs = append(elseIfs, ast.ElseIfBranch{Cond: eiCond, Body: eiBody, Sp: span.Merge(eiStart, eiBody.Span())})
	}

	var elseBlock *ast.DoBlock
	end := then.Span()
	if len(elseIfs) > 0 {
		end = elseIfs[len(elseIfs)-1].Span()
	}
	if p.peek().Kind == lexer.KwElse {
		p.next()
		elseBlock, err = p.parseDoBlockOpenEnded()
		if err != nil {
			return nil, err
		}
		end = elseBlock.Span()
	}

	endTok, err := p.expect(lexer.KwEnd)
	if err != nil {
		return nil, err
	}
	_ = endTok

	return &ast.IfStmt{Cond: cond, Then: then, ElseIfs: elseIfs, Else: elseBlock, Sp: span.Merge(start, end)}, nil
}

// parseDoBlockOpenEnded parses `do stmts` where the terminator (`elseif`,
// `else`, or `end`) is left for the caller to consume, used for if/elseif
// bodies which share one trailing `end` across all branches.
func (p *Parser) parseDoBlockOpenEnded() (*ast.DoBlock, error) {
	start, err := p.expect(lexer.KwDo)
	if err != nil {
		return nil, err
	}
	var stmts []ast.Statement
	for !isBlockTerminator(p.peek().Kind) && p.peek().Kind != lexer.KwEnd && p.peek().Kind != lexer.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	end := start.Span
	if len(stmts) > 0 {
		end = stmts[len(stmts)-1].Span()
	}
	return &ast.DoBlock{Statements: stmts, Sp: span.Merge(start.Span, end)}, nil
}

func (p *Parser) parseClassDef() (ast.Statement, error) {
	start := p.next().Span // consume `class`
	name, err := p.expect(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	var fields []*ast.VarDefine
	for p.peek().Kind == lexer.Identifier {
		fieldTok := p.next()
		field := &ast.VarDefine{Name: fieldTok.Value(), Sp: fieldTok.Span}
		// A field may carry an initializer (e.g. a method implemented as a
		// func literal); fields without one are "uninitialised" and must be
		// supplied at construction time, per spec §4.4/§4.7.
		if p.peek().Kind == lexer.Assign {
			p.next()
			init, err := p.parseExpression(0)
			if err != nil {
				return nil, err
			}
			field.Init = init
			field.Sp = span.Merge(fieldTok.Span, init.Span())
		}
		fields = append(fields, field)
	}
	end, err := p.expect(lexer.KwEnd)
	if err != nil {
		return nil, err
	}
	return &ast.ClassDef{Name: name.Value(), Fields: fields, Sp: span.Merge(start, end.Span)}, nil
}

// parseAssignOrCallStatement implements: "the parser first tries
// expression-assign (a speculative parse); on failure it parses a call
// expression as a statement", per spec §4.3.
func (p *Parser) parseAssignOrCallStatement() (ast.Statement, error) {
	if stmt, ok := TryParse(p.s, p.tryParseAssignStatement); ok {
		return stmt, nil
	}
	return p.parseCallStatement()
}

func (p *Parser) tryParseAssignStatement(s *Stream) (ast.Statement, error) {
	sub := &Parser{s: s, src: p.src}
	lhs, err := sub.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if sub.peek().Kind != lexer.Assign {
		return nil, sub.unexpected(sub.peek(), lexer.Assign)
	}
	sub.next() // consume `=`
	rhs, err := sub.parseExpression(0)
	if err != nil {
		return nil, err
	}
	switch target := lhs.(type) {
	case *ast.Ident:
		return &ast.VarAssign{Name: target.Name, Value: rhs, Sp: span.Merge(lhs.Span(), rhs.Span())}, nil
	case *ast.IndexAccess, *ast.FieldAccess:
		return &ast.ExprAssignStmt{Target: lhs, Value: rhs, Sp: span.Merge(lhs.Span(), rhs.Span())}, nil
	default:
		return nil, sub.internal(sub.peek(), "expression not assignable")
	}
}

func (p *Parser) parseCallStatement() (ast.Statement, error) {
	expr, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	call, ok := expr.(*ast.Call)
	if !ok {
		return nil, diag.New(diag.KindParseUnexpectedTok, expr.Span(), "expected a call expression as a statement")
	}
	return &ast.CallStmt{Call: call, Sp: call.Span()}, nil
}
