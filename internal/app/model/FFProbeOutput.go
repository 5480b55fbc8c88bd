package model

// FFProbeOutput is the subset of `ffprobe -print_format json -show_streams` used for audio checks.
type FFProbeOutput struct {
	Streams []FFProbeStream `json:"streams"`
}

type FFProbeStream struct {
	CodecType  string `json:"codec_type"`
	CodecName  string `json:"codec_name"`
	SampleRate int    `json:"sample_rate,string"`
	Channels   int    `json:"channels"`
}

// IsPCM16At reports whether any audio stream is signed 16-bit PCM at sampleRate.
func (o FFProbeOutput) IsPCM16At(sampleRate int) bool {
	for _, s := range o.Streams {
		if s.CodecType == "audio" && s.CodecName == "pcm_s16le" && s.SampleRate == sampleRate {
			return true
		}
	}
	return false
}
