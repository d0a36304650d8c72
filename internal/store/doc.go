// Package store holds published discovery tokens for the directory server.
//
// Memory is the only implementation: entries live for the lifetime of the
// process and ids are assigned sequentially starting at 1. All methods are
// concurrency-safe via internal locking.
package store
