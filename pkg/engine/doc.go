// Package engine drives the commit loop that keeps a live tree in sync
// with an application's virtual tree.
//
// Mount renders the initial tree and returns a Handle. Each call to
// Handle.Update stages a new tree and requests a frame; bursts of
// updates between frames coalesce, so at most one diff+patch cycle
// runs per frame and each diff compares the latest staged tree against
// the last committed one. Frame timing comes from a pluggable Framer:
// TickFramer for wall-clock sessions, ManualFramer for deterministic
// tests.
//
// Program and Run layer an init/update/view state machine on top of the
// handle for applications that want the reducer style end to end.
package engine
