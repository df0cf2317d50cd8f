// Package trace records what the numeric tower and the CLI do with their
// operands.
//
// # Usage
//
//	numtower eval --trace=- --trace-level=detail '6 / coerce(3)'
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelError: Only failed operations
//   - LevelPhase: Command boundaries (eval, batch lines)
//   - LevelDetail: Dispatch routing decisions
//   - LevelDebug: Everything including kernel calls
//
// # Scopes
//
//   - ScopeCommand: CLI commands and batch lines
//   - ScopeDispatch: Coercion dispatcher decisions (int, float, rational, coerce)
//   - ScopeKernel: Magnitude kernels
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeCommand, "batch", 0)
//	defer span.End("")
package trace
