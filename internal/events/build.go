package events

import "time"

// BuildStart is emitted before constructing an operation.
type BuildStart struct {
	OperationType string
	OperationName string
}

// BuildFinish is emitted after constructing an operation.
type BuildFinish struct {
	OperationType string
	OperationName string
	Text          string
	Err           error
	Duration      time.Duration
}
