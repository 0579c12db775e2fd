// Package expr evaluates the boolean expression dialect used by advanced
// searches. An expression sees exactly four bindings: the contains() content
// query, the ts value extracted from the content, and the past/future/today
// predicates. Nothing else — no filesystem, no other content — is reachable,
// and every lex, parse or evaluation failure degrades to a non-match.
package expr

import (
	"fmt"
	"strings"
	"time"

	"github.com/ananyarao/notescout/timestamp"
)

// Env binds one content string for the duration of one evaluation and
// accumulates the match count produced by contains() calls.
type Env struct {
	content string // lower-cased once up front
	ts      int64
	now     time.Time
	matches int
}

func NewEnv(content string, now time.Time) *Env {
	return &Env{
		content: strings.ToLower(content),
		ts:      timestamp.Extract(content),
		now:     now,
	}
}

// MatchCount returns the running total accumulated by contains() hits.
func (e *Env) MatchCount() int {
	return e.matches
}

// Timestamp returns the instant extracted from the content, 0 when absent.
func (e *Env) Timestamp() int64 {
	return e.ts
}

// contains reports whether text occurs in the content, ignoring case. Only on
// a hit, the number of non-overlapping occurrences is added to the running
// match total. An empty needle never matches.
func (e *Env) contains(text string) bool {
	needle := strings.ToLower(text)
	if needle == "" {
		return false
	}
	if !strings.Contains(e.content, needle) {
		return false
	}

	e.matches += strings.Count(e.content, needle)
	return true
}

// Evaluate parses and evaluates the expression against env, returning the
// truthiness of the result. Any failure yields false rather than an error.
func Evaluate(input string, env *Env) bool {
	root, err := parse(input)
	if err != nil {
		return false
	}

	value, err := root.eval(env)
	if err != nil {
		return false
	}

	return truthy(value)
}

func (n *literalNode) eval(_ *Env) (any, error) {
	return n.value, nil
}

func (n *identNode) eval(env *Env) (any, error) {
	if n.name == "ts" {
		return float64(env.ts), nil
	}
	return nil, fmt.Errorf("unknown identifier %q", n.name)
}

func (n *callNode) eval(env *Env) (any, error) {
	switch n.name {
	case "contains":
		if len(n.args) != 1 {
			return nil, fmt.Errorf("contains expects 1 argument, got %d", len(n.args))
		}
		text, err := evalString(n.args[0], env)
		if err != nil {
			return nil, err
		}
		return env.contains(text), nil

	case "past", "future":
		ts, window, err := evalTimeArgs(n.name, n.args, env)
		if err != nil {
			return nil, err
		}
		if n.name == "past" {
			return timestamp.Past(ts, env.now, window...), nil
		}
		return timestamp.Future(ts, env.now, window...), nil

	case "today":
		if len(n.args) != 1 {
			return nil, fmt.Errorf("today expects 1 argument, got %d", len(n.args))
		}
		ts, err := evalNumber(n.args[0], env)
		if err != nil {
			return nil, err
		}
		return timestamp.Today(int64(ts), env.now), nil
	}

	return nil, fmt.Errorf("unknown function %q", n.name)
}

func (n *unaryNode) eval(env *Env) (any, error) {
	value, err := n.operand.eval(env)
	if err != nil {
		return nil, err
	}

	if n.op == tokenNot {
		return !truthy(value), nil
	}

	num, ok := value.(float64)
	if !ok {
		return nil, fmt.Errorf("unary minus needs a number")
	}
	return -num, nil
}

func (n *binaryNode) eval(env *Env) (any, error) {
	// Logical operators short-circuit, so the right side is not evaluated
	// (and cannot count matches) when the left side already decides.
	switch n.op {
	case tokenAnd, tokenOr:
		left, err := n.left.eval(env)
		if err != nil {
			return nil, err
		}
		if n.op == tokenAnd && !truthy(left) {
			return false, nil
		}
		if n.op == tokenOr && truthy(left) {
			return true, nil
		}
		right, err := n.right.eval(env)
		if err != nil {
			return nil, err
		}
		return truthy(right), nil
	}

	left, err := n.left.eval(env)
	if err != nil {
		return nil, err
	}
	right, err := n.right.eval(env)
	if err != nil {
		return nil, err
	}

	switch n.op {
	case tokenEq:
		return equalValues(left, right)
	case tokenNotEq:
		equal, err := equalValues(left, right)
		if err != nil {
			return nil, err
		}
		return !equal, nil
	case tokenLess, tokenLessEq, tokenGreater, tokenGreaterEq:
		return compareValues(n.op, left, right)
	}

	return arithmetic(n.op, left, right)
}

func equalValues(left, right any) (bool, error) {
	switch l := left.(type) {
	case float64:
		if r, ok := right.(float64); ok {
			return l == r, nil
		}
	case string:
		if r, ok := right.(string); ok {
			return l == r, nil
		}
	case bool:
		if r, ok := right.(bool); ok {
			return l == r, nil
		}
	}
	return false, fmt.Errorf("cannot compare %T with %T", left, right)
}

func compareValues(op tokenKind, left, right any) (bool, error) {
	if l, ok := left.(float64); ok {
		r, ok := right.(float64)
		if !ok {
			return false, fmt.Errorf("cannot compare %T with %T", left, right)
		}
		switch op {
		case tokenLess:
			return l < r, nil
		case tokenLessEq:
			return l <= r, nil
		case tokenGreater:
			return l > r, nil
		default:
			return l >= r, nil
		}
	}

	l, ok := left.(string)
	if !ok {
		return false, fmt.Errorf("cannot order %T values", left)
	}
	r, ok := right.(string)
	if !ok {
		return false, fmt.Errorf("cannot compare %T with %T", left, right)
	}
	switch op {
	case tokenLess:
		return l < r, nil
	case tokenLessEq:
		return l <= r, nil
	case tokenGreater:
		return l > r, nil
	default:
		return l >= r, nil
	}
}

func arithmetic(op tokenKind, left, right any) (any, error) {
	if op == tokenPlus {
		if l, ok := left.(string); ok {
			if r, ok := right.(string); ok {
				return l + r, nil
			}
		}
	}

	l, ok := left.(float64)
	if !ok {
		return nil, fmt.Errorf("arithmetic needs numbers, got %T", left)
	}
	r, ok := right.(float64)
	if !ok {
		return nil, fmt.Errorf("arithmetic needs numbers, got %T", right)
	}

	switch op {
	case tokenPlus:
		return l + r, nil
	case tokenMinus:
		return l - r, nil
	case tokenStar:
		return l * r, nil
	case tokenSlash:
		if r == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return l / r, nil
	case tokenPercent:
		if r == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return float64(int64(l) % int64(r)), nil
	}

	return nil, fmt.Errorf("unsupported operator")
}

func evalTimeArgs(name string, args []node, env *Env) (int64, []float64, error) {
	if len(args) < 1 || len(args) > 2 {
		return 0, nil, fmt.Errorf("%s expects 1 or 2 arguments, got %d", name, len(args))
	}

	ts, err := evalNumber(args[0], env)
	if err != nil {
		return 0, nil, err
	}

	var window []float64
	if len(args) == 2 {
		days, err := evalNumber(args[1], env)
		if err != nil {
			return 0, nil, err
		}
		window = append(window, days)
	}

	return int64(ts), window, nil
}

func evalNumber(n node, env *Env) (float64, error) {
	value, err := n.eval(env)
	if err != nil {
		return 0, err
	}
	num, ok := value.(float64)
	if !ok {
		return 0, fmt.Errorf("expected a number, got %T", value)
	}
	return num, nil
}

func evalString(n node, env *Env) (string, error) {
	value, err := n.eval(env)
	if err != nil {
		return "", err
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("expected a string, got %T", value)
	}
	return s, nil
}

func truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	}
	return false
}
