package config

import (
	"strings"
	"sync"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/gogpu/framegraph"
)

var (
	evalOnce sync.Once
	evalCtx  *hcl.EvalContext
)

// evalContext returns the shared, read-only evaluation context for HCL
// descriptions. Each variable is an object whose attributes evaluate to
// their own names, so access.shader_read is the string "shader_read".
func evalContext() *hcl.EvalContext {
	evalOnce.Do(func() {
		images := make([]string, 0)
		for _, a := range framegraph.ImageAliases() {
			images = append(images, a.String())
		}
		buffers := make([]string, 0)
		for _, a := range framegraph.BufferAliases() {
			buffers = append(buffers, a.String())
		}
		evalCtx = &hcl.EvalContext{
			Variables: map[string]cty.Value{
				"image":  nameObject(images),
				"buffer": nameObject(buffers),
				"access": nameObject(framegraph.AccessFlagNames()),
				"stage":  nameObject(framegraph.StageFlagNames()),
				"layout": nameObject(framegraph.ImageLayoutNames()),
				"aspect": nameObject(framegraph.ImageAspectNames()),
			},
			Functions: map[string]function.Function{
				"flags": flagsFunc,
			},
		}
	})
	return evalCtx
}

func nameObject(names []string) cty.Value {
	attrs := make(map[string]cty.Value, len(names))
	for _, n := range names {
		attrs[n] = cty.StringVal(n)
	}
	return cty.ObjectVal(attrs)
}

// flagsFunc joins flag names into the "a|b" form the flag parsers accept.
var flagsFunc = function.New(&function.Spec{
	VarParam: &function.Parameter{
		Name: "names",
		Type: cty.String,
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.AsString()
		}
		return cty.StringVal(strings.Join(parts, "|")), nil
	},
})
