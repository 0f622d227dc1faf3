package generate

// Package generate implements the core generation pipeline against the
// remote text-to-image service. It owns the single in-flight job, its
// state machine, submit-time preemption, transient-error retry with
// backoff, and the hand-off of result bytes to organized storage.
