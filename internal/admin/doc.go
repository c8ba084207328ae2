// package admin applies content-management edits to the persisted collections.
//
// Every edit is a concrete [Command] value naming its entity, target and field.
// Commands are validated before anything is written, and each successful command
// writes exactly one collection through [store.State].
package admin
