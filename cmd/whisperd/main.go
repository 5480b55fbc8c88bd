package main

import (
	"whisperd/cmd/whisperd/cmd"

	// Import providers to register them
	_ "whisperd/internal/app/api/openai/whisper"
	_ "whisperd/internal/app/api/whisper_cpp"
	_ "whisperd/internal/app/api/whisper_server"
)

// @title whisperd API
// @version 1.0
// @description Single-endpoint speech-to-text service backed by a Whisper model loaded at startup.
// @host localhost:5000
// @BasePath /
func main() {
	cmd.Execute()
}
