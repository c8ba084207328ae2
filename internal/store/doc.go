// Package store keeps the named collections of the platform and mirrors every change to durable storage.
//
// A collection is loaded once with [Load]; an absent or undecodable document yields the compiled-in
// default, which is not written back. [Save] replaces the whole document before returning.
// [State] is the application state owned by the root UI model or the CLI runner; its setters
// update memory and write through in one call.
package store
