package forest

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'parseforest.forest'.
func tracer() tracing.Trace {
	return tracing.Select("parseforest.forest")
}
