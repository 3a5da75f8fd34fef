// importnotes bulk-loads notes from JSON files into one user's collection.
// Records whose title the user already has are skipped, so the job can be
// re-run against updated source files.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"notekeep-server/internal/config"
	"notekeep-server/internal/repository"
	"notekeep-server/internal/service"
	"notekeep-server/pkg/logger"

	_ "github.com/go-kivik/kivik/v4/couchdb"

	"github.com/go-kivik/kivik/v4"
)

type importRecord struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("importnotes", cfg.Logging.Level)

	client, err := kivik.New("couch", cfg.Database.URL())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to CouchDB")
	}

	userRepo := repository.NewUserRepository(client, cfg.Database.Name)
	noteService := service.NewNoteService(userRepo, log)

	user, err := userRepo.FindByUsername(cfg.Import.Username)
	if err != nil {
		log.Fatal().Err(err).Str("username", cfg.Import.Username).Msg("target user not found")
	}

	var records []importRecord
	for _, path := range cfg.Import.Files {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatal().Err(err).Str("file", path).Msg("failed to read import file")
		}

		var batch []importRecord
		if err := json.Unmarshal(data, &batch); err != nil {
			log.Fatal().Err(err).Str("file", path).Msg("failed to parse import file")
		}
		records = append(records, batch...)
	}

	existing := make(map[string]struct{}, len(user.Notes))
	for _, note := range user.Notes {
		existing[note.Title] = struct{}{}
	}

	added := 0
	for _, rec := range records {
		if _, ok := existing[rec.Title]; ok {
			continue
		}

		if _, err := noteService.Create(user.ID, rec.Title, rec.Content); err != nil {
			log.Fatal().Err(err).Str("title", rec.Title).Msg("failed to import note")
		}

		existing[rec.Title] = struct{}{}
		added++
	}

	if added == 0 {
		log.Info().Msg("no new notes to add")
		return
	}
	log.Info().Int("added", added).Str("username", cfg.Import.Username).Msg("notes imported")
}
