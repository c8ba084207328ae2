// Package tasks coordinates the background work of the platform.
//
// # Generations
//
// Assistant requests run as background commands and may resolve after the member has moved on.
// A [Tracker] hands out a [Ticket] per request. Advancing the tracker (on every tab switch)
// cancels the contexts of outstanding tickets, and a result is only applied when
// [Tracker.Current] still accepts its ticket. Late results are dropped, never treated as errors.
//
// # Chapter Export
//
// [ChapterExporter.Export] fetches a range of chapters with a rate-limited worker pool and writes one
// file per chapter plus a manifest. Progress is reported on a channel with non-blocking sends.
package tasks
