// Package filter evaluates boolean expressions against API result items,
// letting users narrow aggregated pages client-side (for example
// `width >= 1920 && photographer contains "Ana"`).
package filter

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter is a compiled boolean expression applied per item.
type Filter struct {
	source  string
	program *vm.Program
}

// Compile parses and compiles a filter expression. Item fields are exposed as
// top-level variables; fields absent from an item evaluate as nil.
func Compile(source string) (*Filter, error) {
	program, err := expr.Compile(source,
		expr.AllowUndefinedVariables(),
		expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling filter expression: %w", err)
	}

	return &Filter{source: source, program: program}, nil
}

// Match reports whether the item satisfies the expression. Evaluation errors
// (for example a type mismatch against this particular item) count as
// non-matches rather than aborting the whole result set.
func (f *Filter) Match(item map[string]interface{}) bool {
	result, err := expr.Run(f.program, item)
	if err != nil {
		return false
	}

	matched, ok := result.(bool)

	return ok && matched
}

// Apply returns the items that satisfy the expression, preserving order.
func (f *Filter) Apply(items []interface{}) []interface{} {
	filtered := make([]interface{}, 0, len(items))

	for _, item := range items {
		doc, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		if f.Match(doc) {
			filtered = append(filtered, item)
		}
	}

	return filtered
}

// String returns the original expression source.
func (f *Filter) String() string {
	return f.source
}
