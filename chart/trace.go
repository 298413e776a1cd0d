package chart

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'parseforest.chart'.
func tracer() tracing.Trace {
	return tracing.Select("parseforest.chart")
}
