package ast

import (
	"testing"

	"github.com/coregx/slimlang/lexer"
	"github.com/coregx/slimlang/operators"
)

func tok() lexer.Token { return lexer.Token{} }

func TestOrdinalsAreUniqueAndMonotonic(t *testing.T) {
	b := NewBuilder()
	a := b.NewIntLiteral(tok(), 1)
	c := b.NewIntLiteral(tok(), 2)
	if a.Ordinal() == c.Ordinal() {
		t.Fatal("distinct nodes must get distinct ordinals")
	}
	if c.Ordinal() != a.Ordinal()+1 {
		t.Fatalf("ordinals should be monotonic: got %d then %d", a.Ordinal(), c.Ordinal())
	}
}

func TestIndependentBuildersDoNotShareCounters(t *testing.T) {
	b1 := NewBuilder()
	b2 := NewBuilder()
	n1 := b1.NewIntLiteral(tok(), 1)
	n2 := b2.NewIntLiteral(tok(), 1)
	if n1.Ordinal() != n2.Ordinal() {
		t.Fatalf("each Builder owns its own counter: got %d and %d", n1.Ordinal(), n2.Ordinal())
	}
}

func TestDebugStringPrecedence(t *testing.T) {
	b := NewBuilder()
	// 3 * (2 + 5) / 4 + 6
	two := b.NewIntLiteral(tok(), 2)
	five := b.NewIntLiteral(tok(), 5)
	sum := b.NewBinaryExpr(tok(), operators.Add, two, five)
	three := b.NewIntLiteral(tok(), 3)
	mul := b.NewBinaryExpr(tok(), operators.Mul, three, sum)
	four := b.NewIntLiteral(tok(), 4)
	div := b.NewBinaryExpr(tok(), operators.Div, mul, four)
	six := b.NewIntLiteral(tok(), 6)
	top := b.NewBinaryExpr(tok(), operators.Add, div, six)

	want := "(+ (/ (* i{3} (+ i{2} i{5})) i{4}) i{6})"
	if got := DebugString(top); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDebugStringLiterals(t *testing.T) {
	b := NewBuilder()
	if got := DebugString(b.NewBooleanLiteral(tok(), true)); got != "b{true}" {
		t.Errorf("got %q, want b{true}", got)
	}
	if got := DebugString(b.NewVariableReference(tok(), "myVar")); got != "id{myVar}" {
		t.Errorf("got %q, want id{myVar}", got)
	}
}

type countingTraverser struct {
	pre, post int
}

func (c *countingTraverser) Pre(Node)  { c.pre++ }
func (c *countingTraverser) Post(Node) { c.post++ }

func TestWalkVisitsEveryNodeOnce(t *testing.T) {
	b := NewBuilder()
	left := b.NewIntLiteral(tok(), 1)
	right := b.NewIntLiteral(tok(), 2)
	top := b.NewBinaryExpr(tok(), operators.Add, left, right)

	ct := &countingTraverser{}
	Walk(top, ct)
	if ct.pre != 3 || ct.post != 3 {
		t.Fatalf("pre=%d post=%d, want 3 and 3", ct.pre, ct.post)
	}
}

type capturingVisitor struct {
	NoopVisitor
	sawInt bool
}

func (c *capturingVisitor) VisitIntLiteral(n *IntLiteral) { c.sawInt = true }

func TestNoopVisitorEmbedding(t *testing.T) {
	b := NewBuilder()
	n := b.NewIntLiteral(tok(), 42)
	cv := &capturingVisitor{}
	n.Accept(cv)
	if !cv.sawInt {
		t.Fatal("expected VisitIntLiteral to be called")
	}
}
