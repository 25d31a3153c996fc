package parser

import (
	"strconv"
	"strings"

	"github.com/coregx/slimlang/ast"
	"github.com/coregx/slimlang/langtoken"
	"github.com/coregx/slimlang/operators"
)

var orOps = map[langtoken.Type]operators.Operator{langtoken.OpOr: operators.Or}
var andOps = map[langtoken.Type]operators.Operator{langtoken.OpAnd: operators.And}
var equalityOps = map[langtoken.Type]operators.Operator{
	langtoken.OpEq:  operators.Eq,
	langtoken.OpNeq: operators.Neq,
}
var comparisonOps = map[langtoken.Type]operators.Operator{
	langtoken.OpGt: operators.Gt,
	langtoken.OpLt: operators.Lt,
	langtoken.OpGe: operators.Ge,
	langtoken.OpLe: operators.Le,
}
var addOps = map[langtoken.Type]operators.Operator{
	langtoken.OpAdd: operators.Add,
	langtoken.OpSub: operators.Sub,
}
var mulOps = map[langtoken.Type]operators.Operator{
	langtoken.OpMul: operators.Mul,
	langtoken.OpDiv: operators.Div,
	langtoken.OpMod: operators.Mod,
}

// parseExpr is the grammar's top entry point. Assignment is parsed here,
// above orExpr, with the right-hand side parsed as an ordinary expression
// so that `a = b = c` chains right-associatively.
func (p *Parser) parseExpr() (ast.Node, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.is(langtoken.OpAssign) {
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return p.b.NewBinaryExpr(tok, operators.Assign, left, right), nil
	}
	return left, nil
}

func (p *Parser) parseOr() (ast.Node, error) {
	return p.binaryChain(p.parseAnd, orOps)
}

func (p *Parser) parseAnd() (ast.Node, error) {
	return p.binaryChain(p.parseEquality, andOps)
}

func (p *Parser) parseEquality() (ast.Node, error) {
	return p.binaryChain(p.parseComparison, equalityOps)
}

func (p *Parser) parseComparison() (ast.Node, error) {
	return p.binaryChain(p.parseAdd, comparisonOps)
}

func (p *Parser) parseAdd() (ast.Node, error) {
	return p.binaryChain(p.parseMul, addOps)
}

func (p *Parser) parseMul() (ast.Node, error) {
	return p.binaryChain(p.parsePrefix, mulOps)
}

// binaryChain builds a left-associative chain of binary expressions out of
// operands parsed by next, for as long as the current token is one of ops.
func (p *Parser) binaryChain(next func() (ast.Node, error), ops map[langtoken.Type]operators.Operator) (ast.Node, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for p.curOk {
		op, ok := ops[langtoken.Type(p.cur.Pattern)]
		if !ok {
			break
		}
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = p.b.NewBinaryExpr(tok, op, left, right)
	}
	return left, nil
}

func (p *Parser) parsePrefix() (ast.Node, error) {
	if p.is(langtoken.OpSub) || p.is(langtoken.OpBang) {
		tok := p.cur
		op := operators.Sub
		if langtoken.Type(tok.Pattern) == langtoken.OpBang {
			op = operators.Not
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		return p.b.NewUnaryExpr(tok, op, operand), nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Node, error) {
	expr, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.is(langtoken.OpenBracket):
			tok := p.cur
			if err := p.advance(); err != nil {
				return nil, err
			}
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(langtoken.CloseBracket); err != nil {
				return nil, err
			}
			expr = p.b.NewBinaryExpr(tok, operators.Index, expr, idx)
		case p.is(langtoken.OpenParen):
			tok := p.cur
			if err := p.advance(); err != nil {
				return nil, err
			}
			callee, ok := calleeName(expr)
			if !ok {
				return nil, &ParseError{Token: tok, Expected: "callable name", Got: "expression"}
			}
			var args []ast.Node
			if !p.is(langtoken.CloseParen) {
				args, err = p.parseArgList()
				if err != nil {
					return nil, err
				}
			}
			if _, err := p.expect(langtoken.CloseParen); err != nil {
				return nil, err
			}
			expr = p.b.NewFunctionCall(tok, callee, args)
		case p.is(langtoken.Dot):
			if err := p.advance(); err != nil {
				return nil, err
			}
			fieldTok, err := p.expect(langtoken.Identifier)
			if err != nil {
				return nil, err
			}
			expr = p.b.NewFieldAccess(fieldTok, expr, fieldTok.Lexeme)
		default:
			return expr, nil
		}
	}
}

func calleeName(n ast.Node) (string, bool) {
	v, ok := n.(*ast.VariableReference)
	if !ok {
		return "", false
	}
	return v.Name, true
}

func (p *Parser) parseValue() (ast.Node, error) {
	switch {
	case p.is(langtoken.BoolLiteral):
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.b.NewBooleanLiteral(tok, tok.Lexeme == "true"), nil
	case p.is(langtoken.NumericLiteral):
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		if strings.Contains(tok.Lexeme, ".") {
			v, err := strconv.ParseFloat(tok.Lexeme, 64)
			if err != nil {
				return nil, &ParseError{Token: tok, Expected: "numeric literal", Got: tok.Lexeme}
			}
			return p.b.NewFloatLiteral(tok, v), nil
		}
		v, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return nil, &ParseError{Token: tok, Expected: "numeric literal", Got: tok.Lexeme}
		}
		return p.b.NewIntLiteral(tok, v), nil
	case p.is(langtoken.StringLiteral):
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		lit := tok.Lexeme
		if len(lit) >= 2 {
			lit = lit[1 : len(lit)-1]
		}
		return p.b.NewStringLiteral(tok, lit), nil
	case p.is(langtoken.Identifier), p.is(langtoken.DataType):
		// A DataType in value position is a constructor call's callee
		// (vec3(...), mat4(...)); the postfix loop turns it into a
		// FunctionCall.
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.b.NewVariableReference(tok, tok.Lexeme), nil
	case p.is(langtoken.OpenParen):
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(langtoken.CloseParen); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, p.errorf("expression")
	}
}

func (p *Parser) parseArgList() ([]ast.Node, error) {
	var args []ast.Node
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	args = append(args, first)
	for p.is(langtoken.Comma) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, next)
	}
	return args, nil
}
