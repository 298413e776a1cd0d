package build

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'parseforest.build'.
func tracer() tracing.Trace {
	return tracing.Select("parseforest.build")
}
