// Package server hosts an application over HTTP and WebSocket.
//
// GET / answers with the server-rendered page: a fresh mount of the
// app serialized to HTML. GET /ws upgrades to a live session: the
// client sends a hello, gets an ack with its session ID, and from then
// on client events flow up as event frames while committed patches
// flow down as patch-set frames. GET /metrics exposes the server's
// Prometheus registry.
//
// Patch sets address nodes by child-index paths, so the client applies
// them without any knowledge of the virtual tree. Event targets travel
// the same way in the other direction.
package server
