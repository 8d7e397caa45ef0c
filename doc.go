// Package contexlog provides context-aware logging on top of zap:
//   - a per-request key-value store carried in context.Context
//     (Set/Clear/Scoped/FromContext),
//   - enrichment of every record with the fields of the calling context,
//   - a colored console core with a fixed, grep-friendly line format,
//   - a memoized logger factory (GetLogger) whose threshold comes from
//     the LOG_LEVEL environment variable.
//
// The emitted line format is stable:
//
//	[2024-01-17 10:30:45] [INFO] [main.handleRequest:42] [request_id=abc user_id=123] Processing user request
//
// The bracketed context segment is omitted entirely when no context is set.
// All operations are synchronous and safe for concurrent use; context fields
// set in one goroutine are never visible to another unless the context is
// shared explicitly.
package contexlog
