// Package slimlang compiles a shader-description source file: lexing with
// the built-in token pattern table, recursive-descent parsing into an AST,
// and typechecking against the built-in numeric/linear-algebra type
// system. It is the front door most callers use instead of reaching into
// the lexer/parser/typecheck packages directly.
//
// Basic usage:
//
//	r, err := slimlang.Compile(src)
//	if err != nil {
//	    log.Println(err)
//	    return
//	}
//	if len(r.Errors) > 0 {
//	    for _, err := range r.Errors {
//	        log.Println(err)
//	    }
//	    return
//	}
//	ast.Walk(r.Program, myTraverser)
package slimlang

import (
	"github.com/coregx/slimlang/ast"
	"github.com/coregx/slimlang/parser"
	"github.com/coregx/slimlang/typecheck"
)

// Result is the outcome of compiling one source file: the parsed program
// and every type error the checker found. A lex or parse error aborts
// before typechecking runs and is returned by Compile with no Result,
// since the checker has nothing to walk; typecheck errors are collected exhaustively rather than
// stopping at the first one.
type Result struct {
	Program *ast.Program
	Checker *typecheck.Checker
	Errors  []error
}

// Compile runs the full front end over src: lex, parse, typecheck.
func Compile(src []byte) (*Result, error) {
	p, err := parser.New(src)
	if err != nil {
		return nil, err
	}
	prog, err := p.ParseProgram()
	if err != nil {
		return nil, err
	}

	c := typecheck.New()
	errs := c.Check(prog)
	return &Result{Program: prog, Checker: c, Errors: errs}, nil
}

// MustCompile is Compile but panics on any failure, parse or type. It is
// meant for tests and tools operating on source known to be valid.
func MustCompile(src []byte) *Result {
	r, err := Compile(src)
	if err != nil {
		panic("slimlang: Compile: " + err.Error())
	}
	if len(r.Errors) > 0 {
		panic("slimlang: Compile: " + r.Errors[0].Error())
	}
	return r
}
