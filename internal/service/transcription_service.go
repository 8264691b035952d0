package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"smart-librarian-be/internal/dto"
	"smart-librarian-be/internal/pkg/logger"
	"smart-librarian-be/pkg/media"
	"smart-librarian-be/pkg/media/transcript"
)

// ErrUnsupportedAudioType rejects uploads whose extension is not in the
// whitelist. The controller maps it to a 400.
var ErrUnsupportedAudioType = errors.New("unsupported audio type")

// AudioTranscriber converts a saved audio file to text.
type AudioTranscriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

// ITranscriptionService stores an upload under a fresh name and returns its
// transcript, cached by content hash so byte-identical uploads skip the
// remote call.
type ITranscriptionService interface {
	Transcribe(ctx context.Context, filename string, content []byte) (*dto.TranscribeResponse, error)
}

type transcriptionService struct {
	transcriber AudioTranscriber
	store       transcript.Store
	audioDir    string
	log         logger.ILogger
}

func NewTranscriptionService(
	transcriber AudioTranscriber,
	store transcript.Store,
	audioDir string,
	log logger.ILogger,
) ITranscriptionService {
	return &transcriptionService{
		transcriber: transcriber,
		store:       store,
		audioDir:    audioDir,
		log:         log,
	}
}

func (s *transcriptionService) Transcribe(ctx context.Context, filename string, content []byte) (*dto.TranscribeResponse, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !media.AllowedAudioExtensions[ext] {
		return nil, ErrUnsupportedAudioType
	}

	// The upload keeps its extension but gets a fresh opaque name, so client
	// filenames never collide or leak into public URLs.
	name := strings.ReplaceAll(uuid.NewString(), "-", "") + ext
	path := filepath.Join(s.audioDir, name)

	if err := os.MkdirAll(s.audioDir, 0755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return nil, err
	}
	url := "/static/audio/" + name

	key := media.HashBytes(content)
	if text, ok := s.store.Get(key); ok {
		return &dto.TranscribeResponse{Text: text, URL: url, Cached: true}, nil
	}

	text, err := s.transcriber.Transcribe(ctx, path)
	if err != nil {
		return nil, err
	}

	if err := s.store.Put(key, text); err != nil {
		// Losing a cache entry is not worth failing the request over.
		s.log.Warn("TranscriptionService", "Could not persist transcript cache", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return &dto.TranscribeResponse{Text: text, URL: url, Cached: false}, nil
}
