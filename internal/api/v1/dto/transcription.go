package dto

// TranscribeResponse is the body of a successful POST /transcribe.
type TranscribeResponse struct {
	Text string `json:"text" example:"hello world"`
}

// ErrorResponse documents the {"error": message} body shared by every failure.
type ErrorResponse struct {
	Error string `json:"error" example:"no file"`
}
