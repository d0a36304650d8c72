// Package events turns capability callbacks into channels.
//
// A Relay receives domain.Event values from one capability session and emits
// a DistanceSample for every updated object that carries a distance, in the
// order the capability reported them. Everything else becomes a
// LifecycleEvent, delivered only to callers that asked for Lifecycle().
//
// Each channel is fed by its own goroutine from an unbounded queue, so a slow
// consumer never blocks the capability. A relay ends with its session: after
// Close, or after an Invalidated event, pending items are flushed and the
// channels are closed. Relays are not restartable.
package events
