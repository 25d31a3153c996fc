package parser

import (
	"strings"
	"testing"

	"github.com/coregx/slimlang/ast"
)

func parseExprSrc(t *testing.T, src string) ast.Node {
	t.Helper()
	p, err := New([]byte(src + ";"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	n, err := p.parseExprStat()
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return n.(*ast.ExprStat).Expr
}

func TestOperatorPrecedence(t *testing.T) {
	got := ast.DebugString(parseExprSrc(t, "3 * (2 + 5) / 4 + 6"))
	want := "(+ (/ (* i{3} (+ i{2} i{5})) i{4}) i{6})"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestLeftAssociativity(t *testing.T) {
	got := ast.DebugString(parseExprSrc(t, "1 - 2 - 3"))
	want := "(- (- i{1} i{2}) i{3})"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestLogicalAndComparisonPrecedence(t *testing.T) {
	got := ast.DebugString(parseExprSrc(t, "a < b && c == d"))
	want := "(&& (< id{a} id{b}) (== id{c} id{d}))"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	got := ast.DebugString(parseExprSrc(t, "a = b = c"))
	want := "(= id{a} (= id{b} id{c}))"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestUnaryPrefix(t *testing.T) {
	got := ast.DebugString(parseExprSrc(t, "-x"))
	if got != "(- id{x})" {
		t.Fatalf("got %q", got)
	}
	got = ast.DebugString(parseExprSrc(t, "!done"))
	if got != "(! id{done})" {
		t.Fatalf("got %q", got)
	}
}

func TestFieldAccess(t *testing.T) {
	got := ast.DebugString(parseExprSrc(t, "color.rgb"))
	if got != "(. id{color} rgb)" {
		t.Fatalf("got %q", got)
	}
}

func TestFunctionCall(t *testing.T) {
	got := ast.DebugString(parseExprSrc(t, "vec3(1, 2, 3)"))
	if got != "(call vec3 i{1} i{2} i{3})" {
		t.Fatalf("got %q", got)
	}
}

func TestFunctionCallNoArgs(t *testing.T) {
	got := ast.DebugString(parseExprSrc(t, "noise()"))
	if got != "(call noise)" {
		t.Fatalf("got %q", got)
	}
}

func TestIndexExpression(t *testing.T) {
	n := parseExprSrc(t, "positions[0]")
	bin, ok := n.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected BinaryExpr, got %T", n)
	}
	if bin.Op.Symbol() != "[]" {
		t.Fatalf("got op %s, want []", bin.Op.Symbol())
	}
}

func TestChainedPostfix(t *testing.T) {
	// obj.pos is a FieldAccess, indexed, then .x is another FieldAccess.
	n := parseExprSrc(t, "obj.pos[0].x")
	fa, ok := n.(*ast.FieldAccess)
	if !ok {
		t.Fatalf("expected outer FieldAccess, got %T", n)
	}
	if fa.Field != "x" {
		t.Fatalf("outer field = %q, want x", fa.Field)
	}
	idx, ok := fa.Target.(*ast.BinaryExpr)
	if !ok || idx.Op.Symbol() != "[]" {
		t.Fatalf("expected index expr as target, got %T", fa.Target)
	}
	inner, ok := idx.Left.(*ast.FieldAccess)
	if !ok || inner.Field != "pos" {
		t.Fatalf("expected pos field access, got %#v", idx.Left)
	}
}

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	p, err := New([]byte(src))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	return prog
}

func TestPropertyDeclWithTags(t *testing.T) {
	prog := parseProgram(t, `#pbr_metallic property float roughness = 0.5;`)
	if len(prog.Children) != 1 {
		t.Fatalf("got %d children, want 1", len(prog.Children))
	}
	pd, ok := prog.Children[0].(*ast.PropertyDecl)
	if !ok {
		t.Fatalf("expected PropertyDecl, got %T", prog.Children[0])
	}
	if len(pd.Tags) != 1 || pd.Tags[0] != "#pbr_metallic" {
		t.Fatalf("tags = %v", pd.Tags)
	}
	if pd.TypeName != "float" || pd.Name != "roughness" {
		t.Fatalf("got type=%s name=%s", pd.TypeName, pd.Name)
	}
	if pd.Init == nil {
		t.Fatal("expected initializer")
	}
}

func TestSharedDeclWithoutInitializer(t *testing.T) {
	prog := parseProgram(t, `shared mat4 viewProj;`)
	sd, ok := prog.Children[0].(*ast.SharedDecl)
	if !ok {
		t.Fatalf("expected SharedDecl, got %T", prog.Children[0])
	}
	if sd.TypeName != "mat4" || sd.Name != "viewProj" || sd.Init != nil {
		t.Fatalf("got %+v", sd)
	}
}

func TestFeatureBlockWithNestedDecls(t *testing.T) {
	prog := parseProgram(t, `
		feature Fog {
			property float density = 0.1;
			shared vec3 fogColor;
		}
	`)
	fb, ok := prog.Children[0].(*ast.FeatureBlock)
	if !ok {
		t.Fatalf("expected FeatureBlock, got %T", prog.Children[0])
	}
	if fb.Name != "Fog" || len(fb.Decls) != 2 {
		t.Fatalf("got %+v", fb)
	}
}

func TestShaderBlockVertexWithStatements(t *testing.T) {
	prog := parseProgram(t, `
		shader vertex {
			float x = 1.0;
			return x;
		}
	`)
	sb, ok := prog.Children[0].(*ast.ShaderBlock)
	if !ok {
		t.Fatalf("expected ShaderBlock, got %T", prog.Children[0])
	}
	if sb.Kind != ast.Vertex {
		t.Fatalf("got kind %v, want Vertex", sb.Kind)
	}
	if len(sb.Stats) != 2 {
		t.Fatalf("got %d statements, want 2", len(sb.Stats))
	}
	if _, ok := sb.Stats[0].(*ast.DeclStat); !ok {
		t.Fatalf("stat0 = %T, want DeclStat", sb.Stats[0])
	}
	if _, ok := sb.Stats[1].(*ast.ReturnStat); !ok {
		t.Fatalf("stat1 = %T, want ReturnStat", sb.Stats[1])
	}
}

func TestShaderBlockFragment(t *testing.T) {
	prog := parseProgram(t, `shader fragment { return; }`)
	sb := prog.Children[0].(*ast.ShaderBlock)
	if sb.Kind != ast.Fragment {
		t.Fatalf("got %v, want Fragment", sb.Kind)
	}
	rs := sb.Stats[0].(*ast.ReturnStat)
	if rs.Expr != nil {
		t.Fatal("expected bare return with nil Expr")
	}
}

func TestRequireBlock(t *testing.T) {
	prog := parseProgram(t, `
		require Fog {
			vec3 tint = fogColor;
		}
	`)
	rb, ok := prog.Children[0].(*ast.RequireBlock)
	if !ok {
		t.Fatalf("expected RequireBlock, got %T", prog.Children[0])
	}
	if rb.Feature != "Fog" || len(rb.Stats) != 1 {
		t.Fatalf("got %+v", rb)
	}
}

func TestBareExpressionIsNotATopLevelConstruct(t *testing.T) {
	p, err := New([]byte(`doSomething(1);`))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := p.ParseProgram(); err == nil {
		t.Fatal("expected an error: expression statements only appear inside a block")
	}
}

func TestParseErrorReportsExpectedAndGot(t *testing.T) {
	p, err := New([]byte(`property float ;`))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = p.ParseProgram()
	if err == nil {
		t.Fatal("expected a parse error")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("got %T, want *ParseError", err)
	}
	if !strings.Contains(pe.Expected, "Identifier") {
		t.Fatalf("Expected = %q, want it to mention Identifier", pe.Expected)
	}
	if !strings.Contains(pe.Got, "Semicolon") {
		t.Fatalf("Got = %q, want it to mention Semicolon", pe.Got)
	}
}

func TestUnclosedBlockIsAnError(t *testing.T) {
	p, err := New([]byte(`shader vertex { return;`))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := p.ParseProgram(); err == nil {
		t.Fatal("expected an error for an unterminated block")
	}
}
