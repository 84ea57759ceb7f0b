// Package meshrule checks meshes against CEL expressions over their statistics.
//
//	rules, err := meshrule.Compile([]string{"face_count > 0", "max_face_vertices <= 4"})
//	for _, v := range rules.Check(mesh) { ... }
package meshrule

import (
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/shibukawa/offmesh/geometry"
)

// Sentinel errors
var (
	ErrRuleCompile    = errors.New("failed to compile rule")
	ErrRuleNotBool    = errors.New("rule must evaluate to bool")
	ErrRuleEvaluation = errors.New("failed to evaluate rule")
)

// Variables available to rule expressions, all of CEL type int.
const (
	VarVertexCount     = "vertex_count"
	VarFaceCount       = "face_count"
	VarEdgeCount       = "edge_count"
	VarColoredVertices = "colored_vertices"
	VarColoredFaces    = "colored_faces"
	VarMaxFaceVertices = "max_face_vertices"
)

var variables = []string{
	VarVertexCount,
	VarFaceCount,
	VarEdgeCount,
	VarColoredVertices,
	VarColoredFaces,
	VarMaxFaceVertices,
}

// Rule is a compiled boolean expression.
type Rule struct {
	Expression string
	program    cel.Program
}

// RuleSet is an ordered list of compiled rules. It is safe for concurrent use.
type RuleSet struct {
	rules []Rule
}

// Violation reports a rule that did not hold. Err is set when evaluation failed
// instead of returning false.
type Violation struct {
	Rule string
	Err  error
}

func (v Violation) Error() string {
	if v.Err != nil {
		return fmt.Sprintf("rule %q: %v", v.Rule, v.Err)
	}

	return fmt.Sprintf("rule %q is not satisfied", v.Rule)
}

func newEnv() (*cel.Env, error) {
	envOptions := []cel.EnvOption{
		cel.EagerlyValidateDeclarations(true),
	}

	for _, name := range variables {
		envOptions = append(envOptions, cel.Variable(name, cel.IntType))
	}

	return cel.NewEnv(envOptions...)
}

// Compile compiles every expression. The first invalid expression aborts with an error
// wrapping ErrRuleCompile or ErrRuleNotBool.
func Compile(expressions []string) (*RuleSet, error) {
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create rule CEL: %w", err)
	}

	ruleSet := &RuleSet{rules: make([]Rule, 0, len(expressions))}

	for _, expression := range expressions {
		ast, issues := env.Compile(expression)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrRuleCompile, expression, issues.Err())
		}

		if !ast.OutputType().IsExactType(cel.BoolType) {
			return nil, fmt.Errorf("%w: %q has type %s", ErrRuleNotBool, expression, ast.OutputType())
		}

		program, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("%w %q: failed to create CEL program: %w", ErrRuleCompile, expression, err)
		}

		ruleSet.rules = append(ruleSet.rules, Rule{Expression: expression, program: program})
	}

	return ruleSet, nil
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Rules returns the compiled rules in order.
func (rs *RuleSet) Rules() []Rule {
	return rs.rules
}

// Check evaluates every rule against mesh and returns the rules that do not hold.
func (rs *RuleSet) Check(mesh *geometry.Mesh) []Violation {
	activation := StatsOf(mesh).Activation()

	var violations []Violation

	for _, rule := range rs.rules {
		ok, err := rule.eval(activation)
		if err != nil {
			violations = append(violations, Violation{Rule: rule.Expression, Err: err})
			continue
		}

		if !ok {
			violations = append(violations, Violation{Rule: rule.Expression})
		}
	}

	return violations
}

func (r Rule) eval(activation map[string]any) (bool, error) {
	result, _, err := r.program.Eval(activation)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrRuleEvaluation, err)
	}

	value, ok := result.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: got %T", ErrRuleNotBool, result.Value())
	}

	return value, nil
}
