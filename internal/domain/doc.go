// Package domain holds the types and contracts shared by the directory
// client, the session coordinator and the event relay. Concrete types live in
// domain/types and interfaces in domain/interfaces; this package re-exports
// both so callers need a single import.
package domain
