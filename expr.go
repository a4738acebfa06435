/*
Copyright © 2026 the HiFi authors.
This file is part of hifi.

hifi is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

hifi is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with hifi.  If not, see <http://www.gnu.org/licenses/>.
*/

package hifi

import (
	"fmt"
	"math"

	"github.com/Knetic/govaluate"
	"github.com/ctessum/sparse"
)

// ExpressionFunctions are the functions available to expressions
// passed to Evaluate.
var ExpressionFunctions = map[string]govaluate.ExpressionFunction{
	"exp":  unaryFunc("exp", math.Exp),
	"sqrt": unaryFunc("sqrt", math.Sqrt),
	"abs":  unaryFunc("abs", math.Abs),
	"log":  unaryFunc("log", math.Log),
	"pow": func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("hifi: got %d arguments for function 'pow', but needs 2", len(args))
		}
		x, xok := args[0].(float64)
		y, yok := args[1].(float64)
		if !xok || !yok {
			return nil, fmt.Errorf("hifi: arguments to function 'pow' must be numbers")
		}
		return math.Pow(x, y), nil
	},
}

func unaryFunc(name string, f func(float64) float64) govaluate.ExpressionFunction {
	return func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 1 {
			return nil, fmt.Errorf("hifi: got %d arguments for function '%s', but needs 1", len(arg), name)
		}
		x, ok := arg[0].(float64)
		if !ok {
			return nil, fmt.Errorf("hifi: argument to function '%s' must be a number", name)
		}
		return f(x), nil
	}
}

// Evaluate calculates expr at every [time, y, x] point of the
// simulation. Variables in expr refer to the physical variables listed
// by FieldNames, and the functions in ExpressionFunctions are available,
// e.g. "sqrt(Bx*Bx + By*By)".
func (s *Simulation) Evaluate(expr string) (*sparse.DenseArray, error) {
	expression, err := govaluate.NewEvaluableExpressionWithFunctions(expr, ExpressionFunctions)
	if err != nil {
		return nil, fmt.Errorf("hifi: parsing expression %q: %v", expr, err)
	}
	vars := removeDuplicates(expression.Vars())
	data := make([]*sparse.DenseArray, len(vars))
	for i, v := range vars {
		d, ok := s.fields[v]
		if !ok {
			return nil, fmt.Errorf("hifi: expression %q: %q: %w", expr, v, ErrUnknownField)
		}
		data[i] = d
	}

	o := sparse.ZerosDense(s.Nt(), s.Ny(), s.Nx())
	params := make(map[string]interface{}, len(vars))
	for i := range o.Elements {
		for j, v := range vars {
			params[v] = data[j].Elements[i]
		}
		result, err := expression.Evaluate(params)
		if err != nil {
			return nil, fmt.Errorf("hifi: evaluating expression %q: %v", expr, err)
		}
		val, ok := result.(float64)
		if !ok {
			return nil, fmt.Errorf("hifi: expression %q evaluates to %T, not a number", expr, result)
		}
		o.Elements[i] = val
	}
	return o, nil
}

// removeDuplicates returns the unique strings in s, in order of first
// appearance.
func removeDuplicates(s []string) []string {
	result := make([]string, 0, len(s))
	seen := make(map[string]bool)
	for _, val := range s {
		if !seen[val] {
			result = append(result, val)
			seen[val] = true
		}
	}
	return result
}
