package parseforest

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'parseforest'.
func tracer() tracing.Trace {
	return tracing.Select("parseforest")
}
