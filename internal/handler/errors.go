package handler

// Generic HTTP error messages for client responses. These intentionally do
// not expose internal error details; handlers and tests should both
// reference these constants.
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgUnavailableError   = "Server is temporarily unavailable. Please try again later."

	ErrMsgUserNotFoundError  = "User not found"
	ErrMsgInvalidScoreError  = "Scores must be real numbers"
	ErrMsgTextsNotSeededErr  = "No typing texts available"
	ErrMsgGetTextFailed      = "Failed to fetch typing text"
	ErrMsgGetStatsFailed     = "Failed to fetch global stats"
	ErrMsgGetBoardFailed     = "Failed to fetch leaderboard"
	ErrMsgGetProfileFailed   = "Failed to fetch user profile"
	ErrMsgSubmitResultFailed = "Failed to record test result"

	ErrMsgInvalidLimit = "Invalid limit parameter"
)
