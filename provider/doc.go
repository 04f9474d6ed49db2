// Package provider defines the contract shared by every remote stage
// backend and the middleware that wraps them.
//
// A backend is a RequestResponse[I, O]: one input, one output, a name and an
// availability check. Cross-cutting behavior is layered with Chain:
//
//	stage := provider.Chain(
//	    provider.WithLogging[In, Out](log, "transcribe"),
//	    provider.WithMetrics[In, Out](metrics, "transcribe"),
//	    provider.WithTracing[In, Out]("transcribe"),
//	)(backend)
package provider
