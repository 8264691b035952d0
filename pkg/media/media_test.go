package media

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashText(t *testing.T) {
	assert.Equal(t, HashText("hello"), HashText("hello"))
	assert.NotEqual(t, HashText("hello"), HashText("world"))
	assert.Len(t, HashText("hello"), 40)
}

func TestSynthesizeTargetPathDeterministic(t *testing.T) {
	s := &Synthesizer{outDir: "/out"}
	assert.Equal(t, s.TargetPath("same answer"), s.TargetPath("same answer"))
	assert.NotEqual(t, s.TargetPath("answer a"), s.TargetPath("answer b"))
	assert.True(t, strings.HasSuffix(s.TargetPath("x"), ".mp3"))
}

func TestSynthesizeShortCircuitsOnExistingFile(t *testing.T) {
	dir := t.TempDir()

	calls := 0
	s := &Synthesizer{
		outDir: dir,
		speak: func(_ context.Context, _, _ string) (io.ReadCloser, error) {
			calls++
			return io.NopCloser(strings.NewReader("mp3-bytes")), nil
		},
	}

	first := s.Synthesize(context.Background(), "read this aloud", DefaultVoice)
	require.NoError(t, first.Err)
	assert.False(t, first.Skipped)
	assert.Equal(t, 1, calls)

	raw, err := os.ReadFile(first.Path)
	require.NoError(t, err)
	assert.Equal(t, "mp3-bytes", string(raw))

	second := s.Synthesize(context.Background(), "read this aloud", DefaultVoice)
	require.NoError(t, second.Err)
	assert.True(t, second.Skipped)
	assert.Equal(t, first.Path, second.Path)
	assert.Equal(t, 1, calls)
}

func TestSynthesizeEmptyText(t *testing.T) {
	s := &Synthesizer{outDir: t.TempDir()}
	res := s.Synthesize(context.Background(), "   ", DefaultVoice)
	assert.Error(t, res.Err)
}

func TestCoverGenerateIdempotent(t *testing.T) {
	dir := t.TempDir()

	calls := 0
	g := &CoverGenerator{
		outDir: dir,
		render: func(_ context.Context, _ string) ([]byte, error) {
			calls++
			return []byte("png-bytes"), nil
		},
	}

	first := g.Generate(context.Background(), "The Hobbit", "short", []string{"adventure"}, "")
	require.NoError(t, first.Err)
	assert.Equal(t, 1, calls)

	second := g.Generate(context.Background(), "The Hobbit", "short", []string{"adventure"}, "")
	require.NoError(t, second.Err)
	assert.True(t, second.Skipped)
	assert.Equal(t, first.Path, second.Path)
	assert.Equal(t, 1, calls, "second invocation must not hit the remote service")
}

func TestCoverGenerateMissingTitle(t *testing.T) {
	g := &CoverGenerator{outDir: t.TempDir()}
	res := g.Generate(context.Background(), " ", "", nil, "")
	assert.Error(t, res.Err)
}

func TestBuildCoverPrompt(t *testing.T) {
	prompt := buildCoverPrompt("The Hobbit", "A hobbit goes on an adventure.", []string{"a", "b", "c", "d", "e", "f"}, "")

	assert.Contains(t, prompt, "The Hobbit")
	assert.Contains(t, prompt, "a, b, c, d, e")
	assert.NotContains(t, prompt, "f")
	assert.Contains(t, prompt, defaultCoverStyle)
}

func TestTranscribeMissingFile(t *testing.T) {
	tr := &Transcriber{transcribe: func(_ context.Context, _ string) (string, error) {
		t.Fatal("remote transcription must not run for a missing file")
		return "", nil
	}}

	_, err := tr.Transcribe(context.Background(), "/does/not/exist.mp3")
	assert.Error(t, err)
}
