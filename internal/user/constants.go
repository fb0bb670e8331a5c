package user

import "time"

// Error messages
const (
	ErrMsgEncodeResultFailed   = "failed to encode test result: %w"
	ErrMsgReadAggregateFailed  = "failed to read user aggregate: %w"
	ErrMsgWriteAggregateFailed = "failed to write user aggregate: %w"
	ErrMsgReadResultsFailed    = "failed to read recent results: %w"
	ErrMsgBoardUpdateFailed    = "failed to update %s board: %w"
)

// Log messages
const (
	LogMsgResultRecorded       = "Test result recorded"
	LogMsgSkippedCorruptResult = "Skipped undecodable stored result"
)

// nowISO returns the current UTC time in the wire timestamp format.
func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
