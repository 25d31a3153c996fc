// Package parser implements the recursive-descent parser that turns a
// lexer.Lexer's token stream into a typed ast.Program: expressions by
// precedence climbing, statements and the feature/shader/require/property
// top-level constructs by straight-line recursive descent.
package parser

import (
	"fmt"

	"github.com/coregx/slimlang/ast"
	"github.com/coregx/slimlang/langtoken"
	"github.com/coregx/slimlang/lexer"
)

// ParseError reports an unexpected token, including what the parser was
// looking for when it gave up.
type ParseError struct {
	Token    lexer.Token
	Expected string
	Got      string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, col %d: expected %s, got %s", e.Token.Line, e.Token.Col, e.Expected, e.Got)
}

// Parser consumes tokens one at a time from a lexer.Lexer, with one token
// of lookahead, which is all this grammar ever needs.
type Parser struct {
	lex   *lexer.Lexer
	cur   lexer.Token
	curOk bool
	b     *ast.Builder
}

// New compiles src's pattern-table lexer and primes the first lookahead
// token.
func New(src []byte) (*Parser, error) {
	lex, err := lexer.New(langtoken.Patterns, src)
	if err != nil {
		return nil, err
	}
	p := &Parser{lex: lex, b: ast.NewBuilder()}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	tok, ok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.cur, p.curOk = tok, ok
	return nil
}

func (p *Parser) is(t langtoken.Type) bool {
	return p.curOk && langtoken.Type(p.cur.Pattern) == t
}

func (p *Parser) errorf(expected string) error {
	got := "end of input"
	if p.curOk {
		got = fmt.Sprintf("%s %q", langtoken.Type(p.cur.Pattern), p.cur.Lexeme)
	}
	return &ParseError{Token: p.cur, Expected: expected, Got: got}
}

func (p *Parser) expect(t langtoken.Type) (lexer.Token, error) {
	if !p.is(t) {
		return lexer.Token{}, p.errorf(t.String())
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return lexer.Token{}, err
	}
	return tok, nil
}

// ParseProgram parses every top-level construct until the input is
// exhausted.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	tok := p.cur
	var children []ast.Node
	for p.curOk {
		n, err := p.parseTopLevel()
		if err != nil {
			return nil, err
		}
		children = append(children, n)
	}
	return p.b.NewProgram(tok, children), nil
}

func (p *Parser) parseTopLevel() (ast.Node, error) {
	var tags []string
	for p.is(langtoken.TagIdentifier) {
		tags = append(tags, p.cur.Lexeme)
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	switch {
	case p.is(langtoken.KeywordProperty):
		return p.parsePropertyDecl(tags)
	case len(tags) > 0:
		return nil, p.errorf("property")
	case p.is(langtoken.KeywordShared):
		return p.parseSharedDecl()
	case p.is(langtoken.KeywordFeature):
		return p.parseFeatureBlock()
	case p.is(langtoken.KeywordShader):
		return p.parseShaderBlock()
	case p.is(langtoken.Identifier) && p.cur.Lexeme == "require":
		return p.parseRequireBlock()
	default:
		return nil, p.errorf("top-level declaration")
	}
}

func (p *Parser) parsePropertyDecl(tags []string) (ast.Node, error) {
	tok := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}
	typeTok, err := p.expect(langtoken.DataType)
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(langtoken.Identifier)
	if err != nil {
		return nil, err
	}
	init, err := p.parseOptionalInitializer()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(langtoken.Semicolon); err != nil {
		return nil, err
	}
	return p.b.NewPropertyDecl(tok, tags, typeTok.Lexeme, nameTok.Lexeme, init), nil
}

func (p *Parser) parseSharedDecl() (ast.Node, error) {
	tok := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}
	typeTok, err := p.expect(langtoken.DataType)
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(langtoken.Identifier)
	if err != nil {
		return nil, err
	}
	init, err := p.parseOptionalInitializer()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(langtoken.Semicolon); err != nil {
		return nil, err
	}
	return p.b.NewSharedDecl(tok, typeTok.Lexeme, nameTok.Lexeme, init), nil
}

func (p *Parser) parseOptionalInitializer() (ast.Node, error) {
	if !p.is(langtoken.OpAssign) {
		return nil, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.parseExpr()
}

func (p *Parser) parseFeatureBlock() (ast.Node, error) {
	tok := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(langtoken.Identifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(langtoken.OpenBrace); err != nil {
		return nil, err
	}
	var decls []ast.Node
	for !p.is(langtoken.CloseBrace) {
		d, err := p.parseTopLevel()
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
	if _, err := p.expect(langtoken.CloseBrace); err != nil {
		return nil, err
	}
	return p.b.NewFeatureBlock(tok, nameTok.Lexeme, decls), nil
}

func (p *Parser) parseShaderBlock() (ast.Node, error) {
	tok := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}
	kindTok, err := p.expect(langtoken.StageLiteral)
	if err != nil {
		return nil, err
	}
	kind := ast.Vertex
	if kindTok.Lexeme == "fragment" {
		kind = ast.Fragment
	}
	if _, err := p.expect(langtoken.OpenBrace); err != nil {
		return nil, err
	}
	stats, err := p.parseStatements(langtoken.CloseBrace)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(langtoken.CloseBrace); err != nil {
		return nil, err
	}
	return p.b.NewShaderBlock(tok, kind, stats), nil
}

func (p *Parser) parseRequireBlock() (ast.Node, error) {
	tok := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}
	featureTok, err := p.expect(langtoken.Identifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(langtoken.OpenBrace); err != nil {
		return nil, err
	}
	stats, err := p.parseStatements(langtoken.CloseBrace)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(langtoken.CloseBrace); err != nil {
		return nil, err
	}
	return p.b.NewRequireBlock(tok, featureTok.Lexeme, stats), nil
}

func (p *Parser) parseStatements(until langtoken.Type) ([]ast.Node, error) {
	var stats []ast.Node
	for !p.is(until) {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, nil
}

func (p *Parser) parseStatement() (ast.Node, error) {
	switch {
	case p.is(langtoken.KeywordReturn):
		return p.parseReturnStat()
	case p.is(langtoken.DataType):
		return p.parseDeclStat()
	default:
		return p.parseExprStat()
	}
}

func (p *Parser) parseReturnStat() (ast.Node, error) {
	tok := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}
	var expr ast.Node
	if !p.is(langtoken.Semicolon) {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		expr = e
	}
	if _, err := p.expect(langtoken.Semicolon); err != nil {
		return nil, err
	}
	return p.b.NewReturnStat(tok, expr), nil
}

func (p *Parser) parseDeclStat() (ast.Node, error) {
	typeTok := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(langtoken.Identifier)
	if err != nil {
		return nil, err
	}
	init, err := p.parseOptionalInitializer()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(langtoken.Semicolon); err != nil {
		return nil, err
	}
	return p.b.NewDeclStat(typeTok, typeTok.Lexeme, nameTok.Lexeme, init), nil
}

func (p *Parser) parseExprStat() (ast.Node, error) {
	tok := p.cur
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(langtoken.Semicolon); err != nil {
		return nil, err
	}
	return p.b.NewExprStat(tok, expr), nil
}
