// Package session coordinates one ranging session with one peer.
//
// The Coordinator sequences token availability before handing control to the
// capability: it publishes the local discovery token, resolves the peer's
// token by id, starts ranging, and tears everything down on Invalidate. Every
// transition is caller-driven; nothing is retried.
//
// Directory calls run without the coordinator lock held. Each prepared
// session has a generation number, and any completion or capability callback
// stamped with an older generation is discarded instead of mutating state.
package session
