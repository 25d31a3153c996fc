package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// DebugString renders an expression as a fully parenthesized prefix form,
// e.g. "3 * (2 + 5) / 4 + 6" renders as "(+ (/ (* i{3} (+ i{2} i{5})) i{4}) i{6})".
// It is meant for tests and diagnostics, not for round-tripping.
func DebugString(n Node) string {
	switch v := n.(type) {
	case *BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", v.Op.Symbol(), DebugString(v.Left), DebugString(v.Right))
	case *UnaryExpr:
		return fmt.Sprintf("(%s %s)", v.Op.Symbol(), DebugString(v.Operand))
	case *VariableReference:
		return fmt.Sprintf("id{%s}", v.Name)
	case *IntLiteral:
		return fmt.Sprintf("i{%d}", v.Value)
	case *FloatLiteral:
		return fmt.Sprintf("f{%s}", strconv.FormatFloat(v.Value, 'g', -1, 64))
	case *BooleanLiteral:
		return fmt.Sprintf("b{%t}", v.Value)
	case *StringLiteral:
		return fmt.Sprintf("s{%s}", v.Value)
	case *FieldAccess:
		return fmt.Sprintf("(. %s %s)", DebugString(v.Target), v.Field)
	case *FunctionCall:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = DebugString(a)
		}
		if len(args) == 0 {
			return fmt.Sprintf("(call %s)", v.Callee)
		}
		return fmt.Sprintf("(call %s %s)", v.Callee, strings.Join(args, " "))
	default:
		return "<?>"
	}
}
