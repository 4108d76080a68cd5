// Package dispatch hands one resolved job to the external fetcher and
// converts the result into an error classification the coordinator can
// aggregate. It performs the runtime backend capability check but never
// retries; retry policy belongs to the batch coordinator.
package dispatch
