// Package collector runs the single-owner backend actor and persistent-block
// manager described by the columnar log format: an in-memory open block
// that live-broadcasts each ingested record, seals into an immutable block
// once it reaches a configured size, and hands sealed bytes off to a
// manager goroutine that writes and re-reads block-<start>.clog files.
//
// The backend loop and the persistent-block manager loop each own their
// state exclusively and communicate only over channels, in the manner of
// the two cooperating tasks (plus a blocking encoder pool) the format
// describes; nothing here is safe to touch from outside its owning
// goroutine except through Collector's exported methods.
package collector
