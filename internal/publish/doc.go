// Package publish streams graph snapshots to a socket.io visualization
// server.
//
// A Publisher owns one namespace socket. Publish emits a snapshot under the
// configured event and, when an acknowledgement event is configured, blocks
// until the server answers or the timeout expires.
package publish
