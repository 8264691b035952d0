package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/fatih/color"

	"smart-librarian-be/internal/bootstrap"
	"smart-librarian-be/internal/config"
	"smart-librarian-be/internal/constant"
	"smart-librarian-be/internal/model"
	"smart-librarian-be/pkg/database"
)

var (
	prompt  = color.New(color.FgCyan, color.Bold)
	answer  = color.New(color.FgGreen)
	subtle  = color.New(color.FgHiBlack)
	warning = color.New(color.FgYellow)
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}
	if err := database.Migrate(gormDB, &model.BookEmbedding{}); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	ctx := context.Background()
	if err := container.IndexService.Sync(ctx); err != nil {
		log.Fatalf("Vector index sync failed: %v", err)
	}

	prompt.Println("📚 Smart Librarian. Describe what you feel like reading (quit/exit to leave).")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		prompt.Print("\nyou> ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == "quit" || query == "exit" {
			break
		}

		handleQuery(ctx, cfg, container, query)
	}
	fmt.Println("Bye! 👋")
}

func handleQuery(ctx context.Context, cfg *config.Config, c *bootstrap.Container, query string) {
	if c.Filter.IsProfane(query) {
		warning.Println(constant.ReplyCLIProfanity)
		return
	}

	candidates, err := c.Retrieval.Search(ctx, query, cfg.Catalog.TopK)
	if err != nil {
		warning.Printf("%s (%v)\n", constant.ReplyServiceFailure, err)
		return
	}
	if len(candidates) == 0 {
		warning.Println(constant.ReplyCLINoMatches)
		return
	}

	subtle.Println("candidates:")
	for _, cand := range candidates {
		subtle.Printf("  %-40s distance=%.4f\n", cand.Title, cand.Distance)
	}

	rec, err := c.Loop.Run(ctx, query, candidates)
	if err != nil {
		warning.Printf("%s (%v)\n", constant.ReplyServiceFailure, err)
		return
	}

	answer.Println("\n" + rec.Answer)

	// Media is best effort on the CLI: a failed synthesis only loses the
	// audio, never the answer above.
	res := c.Synthesizer.Synthesize(ctx, rec.Answer, cfg.OpenAI.TTSVoice)
	if !res.Ok() {
		subtle.Printf("(tts skipped: %v)\n", res.Err)
	} else {
		subtle.Printf("audio: %s\n", res.Path)
		tryPlay(res.Path)
	}

	if rec.Title != "" {
		short, tags := c.Catalog.MetaByTitle(rec.Title)
		cover := c.Covers.Generate(ctx, rec.Title, short, tags, "")
		if cover.Err != nil {
			subtle.Printf("(cover skipped: %v)\n", cover.Err)
		} else {
			subtle.Printf("cover: %s\n", cover.Path)
		}
	}
}

// tryPlay hands the mp3 to the first available local player. Silence is fine;
// the file path was already printed.
func tryPlay(path string) {
	players := [][]string{
		{"afplay", path},
		{"mpg123", "-q", path},
		{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", path},
	}
	for _, candidate := range players {
		if _, err := exec.LookPath(candidate[0]); err != nil {
			continue
		}
		_ = exec.Command(candidate[0], candidate[1:]...).Run()
		return
	}
}
