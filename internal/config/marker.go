// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// Predicate compiles an enable_if expression such as
//
//	platform_system == "Linux" && platform_machine != "armv7l"
//
// The expression may only reference the given marker variables. The
// returned predicate evaluates it; the result must be a known boolean.
func Predicate(src string, markers map[string]string) (func() (bool, error), error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), "enable_if", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, diags
	}

	vars := make(map[string]cty.Value, len(markers))
	for k, v := range markers {
		vars[k] = cty.StringVal(v)
	}
	for _, tr := range expr.Variables() {
		if _, ok := vars[tr.RootName()]; !ok {
			return nil, fmt.Errorf("unknown marker %q, want one of %v", tr.RootName(), names(markers))
		}
	}
	ctx := &hcl.EvalContext{Variables: vars}

	return func() (bool, error) {
		val, diags := expr.Value(ctx)
		if diags.HasErrors() {
			return false, diags
		}
		if !val.IsKnown() || val.IsNull() || !val.Type().Equals(cty.Bool) {
			return false, fmt.Errorf("%s: result is not a boolean", src)
		}
		return val.True(), nil
	}, nil
}

func names(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
