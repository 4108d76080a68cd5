// Package batch schedules jobs across a bounded worker pool, resolves
// then dispatches each one, and aggregates per-job outcomes into the
// run summary. The collector goroutine is the only writer of the
// aggregate; workers report over a channel.
package batch
