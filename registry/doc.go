// Package registry implements a process-wide, concurrent mapping from a
// dense integer pid to an opaque object value, with lock-free reads and
// grow-by-swap writes.
//
// It exists to cache per-locale "privatized" replicas of shared objects
// in a distributed runtime: any goroutine may read entries (frequently)
// or publish new entries (rarely), and the registry grows on demand to
// hold arbitrarily large pids without ever blocking a concurrent reader.
//
// # Quick start
//
//	r := registry.Default()
//	r.Publish(42, myObject)
//	obj := r.Get(42)
//	r.Clear(42)
//
// A pid decomposes internally as blockIdx = pid/BlockSize,
// slotIdx = pid%BlockSize. BlockSize is fixed at 1024 and cannot change
// after a Registry is constructed.
//
// # Concurrency
//
// Get, Clear, and Capacity never block. Publish only blocks (behind an
// internal writer mutex, never behind another reader) when it must grow
// the registry to make room for a pid whose block does not exist yet.
// See DESIGN.md for the synchronization scheme this implements.
//
// # Multiple registries
//
// Default returns a process-wide singleton, lazily initialized on first
// use. Embedders that want an independent registry (e.g. per test, or
// per tenant) should call New instead.
package registry
