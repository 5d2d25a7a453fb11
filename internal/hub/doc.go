// Package hub pushes tracker events to overlay clients over websockets.
//
// The hub is a plain register/unregister/broadcast loop with per-client
// buffered send channels; a client that cannot keep up is dropped rather
// than allowed to stall the others. The latest stats and the last and
// best drops are retained and replayed to clients on connect.
package hub
