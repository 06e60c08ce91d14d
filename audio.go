package jigsawstack

import (
	"context"
	"net/http"

	"github.com/jigsawstack/jigsawstack-go/httpclient"
)

type Audio struct {
	service
}

type SpeechToTextOptions struct {
	Language      string `json:"language,omitempty"`
	Translate     *bool  `json:"translate,omitempty"`
	BySpeaker     *bool  `json:"by_speaker,omitempty"`
	WebhookURL    string `json:"webhook_url,omitempty"    validate:"omitempty,url"`
	BatchSize     int    `json:"batch_size,omitempty"     validate:"omitempty,gte=1,lte=40"`
	ChunkDuration int    `json:"chunk_duration,omitempty" validate:"omitempty,gte=1,lte=15"`
}

type SpeechToTextParams struct {
	SpeechToTextOptions

	URL          string `json:"url,omitempty"            validate:"required_without=FileStoreKey,omitempty,url"`
	FileStoreKey string `json:"file_store_key,omitempty"`
}

type TranscriptionChunk struct {
	Timestamp []float64 `json:"timestamp"`
	Text      string    `json:"text"`
}

type SpeakerSegment struct {
	Speaker   string    `json:"speaker"`
	Timestamp []float64 `json:"timestamp"`
	Text      string    `json:"text"`
}

type SpeechToTextResponse struct {
	BaseResponse

	Text             string               `json:"text"`
	Chunks           []TranscriptionChunk `json:"chunks"`
	Speakers         []SpeakerSegment     `json:"speakers,omitempty"`
	LanguageDetected string               `json:"language_detected,omitempty"`
	Status           string               `json:"status,omitempty"`
	ID               string               `json:"id,omitempty"`
}

// SpeechToText transcribes audio referenced by URL or file store key.
func (a *Audio) SpeechToText(
	ctx context.Context,
	params *SpeechToTextParams,
	opts ...httpclient.RequestOption,
) (*SpeechToTextResponse, error) {
	return call[SpeechToTextResponse](ctx, a.service, http.MethodPost, "/ai/transcribe", params, opts...)
}

// SpeechToTextFile uploads audio as a multipart "file" field.
func (a *Audio) SpeechToTextFile(
	ctx context.Context,
	file httpclient.FilePart,
	options *SpeechToTextOptions,
	opts ...httpclient.RequestOption,
) (*SpeechToTextResponse, error) {
	var params any
	if options != nil {
		params = options
	}

	return callMultipart[SpeechToTextResponse](ctx, a.service, "/ai/transcribe", "file", file, params, opts...)
}

type TextToSpeechParams struct {
	Text                     string `json:"text"                                  validate:"required,max=5000"`
	Accent                   string `json:"accent,omitempty"`
	SpeakerCloneURL          string `json:"speaker_clone_url,omitempty"           validate:"omitempty,url"`
	SpeakerCloneFileStoreKey string `json:"speaker_clone_file_store_key,omitempty"`
	ReturnType               string `json:"return_type,omitempty"                 validate:"omitempty,oneof=url base64 binary"`
}

// TextToSpeech returns the generated audio. Unless ReturnType asks for a URL
// or base64 payload the result holds the audio bytes.
func (a *Audio) TextToSpeech(
	ctx context.Context,
	params *TextToSpeechParams,
	opts ...httpclient.RequestOption,
) (*Media, error) {
	return callMedia(ctx, a.service, "/ai/tts", params, true, opts...)
}
