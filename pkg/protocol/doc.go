// Package protocol implements the binary wire format between an alder
// server and its thin clients.
//
// Events flow client to server; patch sets flow server to client. Both
// directions address nodes by child-index paths from the session root,
// so a client needs nothing beyond childNodes lookups to apply a patch
// or report an event target.
//
// # Wire Format
//
// Every message is framed with a 4-byte header:
//
//	byte 0    frame type
//	byte 1    flags (reserved)
//	bytes 2-3 payload length, big-endian
//
// Payloads use varints for integers and counts, ZigZag varints for
// signed values, and varint length prefixes for strings. Decoders
// enforce allocation, collection, and nesting limits so a hostile peer
// cannot force large allocations or deep recursion.
package protocol
