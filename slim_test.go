package slimlang

import (
	"testing"

	"github.com/coregx/slimlang/ast"
)

const sampleSource = `
#pbr_metallic property float roughness = 0.5;
shared mat4 viewProj;

feature Fog {
	property float density = 0.1;
	property vec3 fogColor = vec3(0.5, 0.5, 0.5);
}

shader vertex {
	vec4 worldPos = vec4(1.0, 1.0, 1.0, 1.0);
	vec4 clipPos = viewProj * worldPos;
}

require Fog {
	vec3 tint = fogColor;
	float mixed = tint.r + density;
}
`

func TestCompileFullProgram(t *testing.T) {
	r, err := Compile([]byte(sampleSource))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(r.Errors) != 0 {
		t.Fatalf("unexpected type errors: %v", r.Errors)
	}
	if len(r.Program.Children) != 5 {
		t.Fatalf("got %d top-level children, want 5", len(r.Program.Children))
	}
}

func TestCompileParseErrorShortCircuitsTypecheck(t *testing.T) {
	_, err := Compile([]byte(`property float ;`))
	if err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestCompileTypeErrorIsReported(t *testing.T) {
	r, err := Compile([]byte(`property float x = true;`))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(r.Errors) == 0 {
		t.Fatal("expected a type error")
	}
}

func TestMustCompilePanicsOnTypeError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected MustCompile to panic")
		}
	}()
	MustCompile([]byte(`property float x = true;`))
}

func TestWalkOverCompiledProgram(t *testing.T) {
	r, err := Compile([]byte(sampleSource))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	count := 0
	ast.Walk(r.Program, countingWalk(func(ast.Node) { count++ }))
	if count == 0 {
		t.Fatal("expected Walk to visit at least the root")
	}
}

type countingWalk func(ast.Node)

func (f countingWalk) Pre(n ast.Node) { f(n) }
func (f countingWalk) Post(ast.Node)  {}
