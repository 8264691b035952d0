package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	openaiclient "github.com/openai/openai-go/v2"
)

// Voices accepted by the speech endpoint.
var Voices = []string{"alloy", "aria", "verse"}

const DefaultVoice = "alloy"

// Synthesizer turns answer text into an mp3 under outDir. The target path is
// a pure function of the text, so a second identical request finds the file
// on disk and skips the remote call. The existence check is racy under
// concurrent identical queries; both callers then pay for the same synthesis.
type Synthesizer struct {
	outDir string
	model  string

	speak func(ctx context.Context, text, voice string) (io.ReadCloser, error)
}

func NewSynthesizer(client openaiclient.Client, model, outDir string) *Synthesizer {
	if model == "" {
		model = "gpt-4o-mini-tts"
	}
	s := &Synthesizer{
		outDir: outDir,
		model:  model,
	}
	s.speak = func(ctx context.Context, text, voice string) (io.ReadCloser, error) {
		res, err := client.Audio.Speech.New(ctx, openaiclient.AudioSpeechNewParams{
			Model: openaiclient.SpeechModel(s.model),
			Voice: openaiclient.AudioSpeechNewParamsVoice(voice),
			Input: text,
		})
		if err != nil {
			return nil, err
		}
		return res.Body, nil
	}
	return s
}

// TargetPath precomputes where the audio for a given text will live.
func (s *Synthesizer) TargetPath(text string) string {
	return filepath.Join(s.outDir, HashText(text)+".mp3")
}

// Synthesize produces speech for text, short-circuiting when the target file
// already exists.
func (s *Synthesizer) Synthesize(ctx context.Context, text, voice string) Result {
	res := Result{Kind: "tts"}

	text = strings.TrimSpace(text)
	if text == "" {
		res.Err = fmt.Errorf("synthesize: empty text")
		return res
	}
	if !validVoice(voice) {
		voice = DefaultVoice
	}

	res.Path = s.TargetPath(text)
	if _, err := os.Stat(res.Path); err == nil {
		res.Skipped = true
		return res
	}

	if err := os.MkdirAll(s.outDir, 0755); err != nil {
		res.Err = err
		return res
	}

	body, err := s.speak(ctx, text, voice)
	if err != nil {
		res.Err = fmt.Errorf("openai speech: %w", err)
		return res
	}
	defer body.Close()

	res.Err = writeAtomic(res.Path, body)
	return res
}

func validVoice(voice string) bool {
	for _, v := range Voices {
		if v == voice {
			return true
		}
	}
	return false
}

// writeAtomic streams into a temp file and renames it into place, so a
// half-written file is never visible at the public path.
func writeAtomic(path string, r io.Reader) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
