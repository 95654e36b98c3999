// Package audit provides an optional, pluggable sink for the registry's
// growth events (core.GrowthEvent), for offline leak/growth diagnostics.
// This is a pure side channel: registry state is still memory-only and
// lost on process exit, and a failing or absent recorder never
// affects Publish/Get/Clear correctness. Use core.NoopGrowthRecorder
// when no audit trail is wanted; use SQLiteRecorder (sqlite.go) to
// persist one.
package audit
