package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscribeRejectsUnsupportedExtension(t *testing.T) {
	svc := NewTranscriptionService(&fakeTranscriber{}, newFakeTranscriptStore(), t.TempDir(), nopLogger{})

	for _, name := range []string{"notes.txt", "audio.flac", "noext"} {
		_, err := svc.Transcribe(context.Background(), name, []byte("data"))
		assert.ErrorIs(t, err, ErrUnsupportedAudioType, name)
	}
}

func TestTranscribeSavesUploadUnderFreshName(t *testing.T) {
	dir := t.TempDir()
	transcriber := &fakeTranscriber{text: "hello there"}
	svc := NewTranscriptionService(transcriber, newFakeTranscriptStore(), dir, nopLogger{})

	resp, err := svc.Transcribe(context.Background(), "My Voice Memo.mp3", []byte("audio-bytes"))

	require.NoError(t, err)
	assert.Equal(t, "hello there", resp.Text)
	assert.False(t, resp.Cached)
	assert.True(t, strings.HasPrefix(resp.URL, "/static/audio/"))
	assert.True(t, strings.HasSuffix(resp.URL, ".mp3"))
	assert.NotContains(t, resp.URL, "My Voice Memo")

	saved := filepath.Join(dir, strings.TrimPrefix(resp.URL, "/static/audio/"))
	raw, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.Equal(t, []byte("audio-bytes"), raw)
}

func TestTranscribeCachesByContentHash(t *testing.T) {
	transcriber := &fakeTranscriber{text: "same speech"}
	svc := NewTranscriptionService(transcriber, newFakeTranscriptStore(), t.TempDir(), nopLogger{})

	first, err := svc.Transcribe(context.Background(), "take-one.wav", []byte("identical bytes"))
	require.NoError(t, err)

	// Same bytes under a different filename and extension still hit the cache.
	second, err := svc.Transcribe(context.Background(), "take-two.ogg", []byte("identical bytes"))
	require.NoError(t, err)

	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, 1, transcriber.calls, "second upload must not call the remote")
	assert.NotEqual(t, first.URL, second.URL, "each upload is stored under its own name")
}

func TestTranscribeRemoteFailurePropagates(t *testing.T) {
	svc := NewTranscriptionService(&fakeTranscriber{err: errBoom}, newFakeTranscriptStore(), t.TempDir(), nopLogger{})

	_, err := svc.Transcribe(context.Background(), "clip.m4a", []byte("data"))
	assert.ErrorIs(t, err, errBoom)
}

func TestTranscribeCachePersistFailureIsNotFatal(t *testing.T) {
	store := newFakeTranscriptStore()
	store.putErr = errBoom
	svc := NewTranscriptionService(&fakeTranscriber{text: "text"}, store, t.TempDir(), nopLogger{})

	resp, err := svc.Transcribe(context.Background(), "clip.webm", []byte("data"))

	require.NoError(t, err)
	assert.Equal(t, "text", resp.Text)
}
