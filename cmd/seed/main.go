// seed creates a test user with 25 notes and a few snippets in the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/ErlanBelekov/easydev/config"
	"github.com/ErlanBelekov/easydev/internal/auth"
	"github.com/ErlanBelekov/easydev/internal/domain"
	"github.com/ErlanBelekov/easydev/internal/email"
	"github.com/ErlanBelekov/easydev/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/easydev/internal/usecase"
	"github.com/lmittmann/tint"
)

const (
	seedName     = "Seed User"
	seedEmail    = "seed@test.local"
	seedPassword = "seed-password"
	noteCount    = 25
)

type snippetSpec struct {
	title, description, code, language string
	tags                               []string
}

var snippets = []snippetSpec{
	{"HTTP server", "Minimal net/http server", "http.ListenAndServe(\":8080\", nil)", "go", []string{"http", "server"}},
	{"Read JSON file", "Load and decode a JSON file", "with open(p) as f:\n    data = json.load(f)", "python", []string{"io", "json"}},
	{"Debounce", "Delay a call until input settles", "const debounce = (fn, ms) => { let t; return (...a) => { clearTimeout(t); t = setTimeout(() => fn(...a), ms) } }", "javascript", []string{"timing"}},
	{"Upsert row", "Insert or update on conflict", "INSERT INTO t (k, v) VALUES ($1, $2) ON CONFLICT (k) DO UPDATE SET v = EXCLUDED.v", "sql", []string{"postgres"}},
	{"Context timeout", "Bound a call with a deadline", "ctx, cancel := context.WithTimeout(ctx, 5*time.Second)\ndefer cancel()", "go", []string{"context", "timing"}},
}

func main() {
	ctx := context.Background()

	dbURL, err := config.LoadDatabaseURL()
	if err != nil {
		log.Fatalf("%v (run: direnv allow)", err)
	}
	secret := os.Getenv("JWT_SECRET")

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelWarn, TimeFormat: time.Kitchen}))

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	codec, err := auth.NewCodec(auth.CodecConfig{Secret: []byte(secret)})
	if err != nil {
		log.Fatalf("JWT_SECRET: %v", err)
	}

	const timeout = 5 * time.Second
	authUC := usecase.NewAuthUsecase(postgres.NewUserRepository(pool, timeout), email.NewLogSender(logger), codec, logger)
	notesUC := usecase.NewNoteUsecase(postgres.NewNoteRepository(pool, timeout))
	snippetsUC := usecase.NewSnippetUsecase(postgres.NewSnippetRepository(pool, timeout))

	// Reuse the seed account on re-runs.
	res, err := authUC.Signup(ctx, usecase.SignupInput{Name: seedName, Email: seedEmail, Password: seedPassword})
	if errors.Is(err, domain.ErrEmailTaken) {
		res, err = authUC.Signin(ctx, seedEmail, seedPassword)
	}
	if err != nil {
		log.Fatalf("seed user: %v", err)
	}
	userID := res.User.ID

	for i := range noteCount {
		draft := i%3 == 0
		_, err := notesUC.Create(ctx, usecase.CreateNoteInput{
			UserID:  userID,
			Title:   fmt.Sprintf("Seed note %02d", i+1),
			Content: fmt.Sprintf("Body of seed note %d.", i+1),
			IsDraft: &draft,
			Tags:    []string{"seed", fmt.Sprintf("batch-%d", i/10)},
		})
		if err != nil {
			log.Fatalf("create note %d: %v", i+1, err)
		}
	}

	for _, s := range snippets {
		_, err := snippetsUC.Create(ctx, usecase.CreateSnippetInput{
			UserID:      userID,
			Title:       s.title,
			Description: s.description,
			Code:        s.code,
			Language:    s.language,
			Tags:        s.tags,
		})
		if err != nil {
			log.Fatalf("create snippet %q: %v", s.title, err)
		}
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:     %s / %s\n", seedEmail, seedPassword)
	fmt.Printf("  User ID:  %s\n", userID)
	fmt.Printf("  Notes:    %d  (every third one is a draft)\n", noteCount)
	fmt.Printf("  Snippets: %d\n", len(snippets))
	fmt.Println()
	fmt.Println("Try it:")
	fmt.Println()
	fmt.Printf("    export JWT=%s\n", res.Token)
	fmt.Println("    curl -s 'http://localhost:5000/api/notes?page=3&limit=10' -H \"Authorization: Bearer $JWT\"")
	fmt.Println("    curl -s 'http://localhost:5000/api/snippets?language=go' -H \"Authorization: Bearer $JWT\"")
	fmt.Println("    curl -s http://localhost:5000/api/snippets/meta/tags -H \"Authorization: Bearer $JWT\"")
}
