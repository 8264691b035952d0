package media

import (
	"context"
	"fmt"
	"os"

	openaiclient "github.com/openai/openai-go/v2"
)

// AllowedAudioExtensions whitelists upload types for transcription.
var AllowedAudioExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".m4a":  true,
	".webm": true,
	".ogg":  true,
}

// Transcriber converts an audio file to text via the OpenAI STT endpoint.
type Transcriber struct {
	model string

	transcribe func(ctx context.Context, path string) (string, error)
}

func NewTranscriber(client openaiclient.Client, model string) *Transcriber {
	if model == "" {
		model = "whisper-1"
	}
	t := &Transcriber{model: model}
	t.transcribe = func(ctx context.Context, path string) (string, error) {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()

		tr, err := client.Audio.Transcriptions.New(ctx, openaiclient.AudioTranscriptionNewParams{
			Model:       openaiclient.AudioModel(t.model),
			File:        f,
			Temperature: openaiclient.Float(0.2),
		})
		if err != nil {
			return "", err
		}
		return tr.Text, nil
	}
	return t
}

// Transcribe returns the transcript text of the audio file at path.
func (t *Transcriber) Transcribe(ctx context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("audio file not found: %s: %w", path, err)
	}

	text, err := t.transcribe(ctx, path)
	if err != nil {
		return "", fmt.Errorf("openai transcription: %w", err)
	}
	return text, nil
}
