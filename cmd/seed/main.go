// Package main provides a tool to seed the shared tag catalog.
//
// Tags are admin-curated: members pick from the catalog but cannot create
// their own. Run this once against a fresh database, or again after adding
// slugs to the list below. Existing tags are skipped.
//
// Usage:
//
//	DATA_PATH=~/Lumbr/data go run ./cmd/seed
//	go run ./cmd/seed -data-path ~/Lumbr/data -tags extra.txt
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lumbrapp/lumbr-server/internal/domain"
	"github.com/lumbrapp/lumbr-server/internal/id"
	"github.com/lumbrapp/lumbr-server/internal/store"
	"github.com/lumbrapp/lumbr-server/internal/store/sqlite"
	"github.com/lumbrapp/lumbr-server/internal/util"
)

// defaultCatalog is the starter tag set for a fresh instance.
var defaultCatalog = []string{
	"Woodworking",
	"Gardening",
	"Baking",
	"Sourdough",
	"Home Brewing",
	"Leathercraft",
	"Pottery",
	"Knitting",
	"Photography",
	"Painting",
	"3D Printing",
	"Electronics",
	"Van Conversion",
	"Restoration",
	"Fermentation",
	"Bookbinding",
	"Calligraphy",
	"Aquascaping",
	"Beekeeping",
	"Blacksmithing",
}

var (
	dataPath = flag.String("data-path", "", "Base data path (default: $DATA_PATH or ~/Lumbr/data)")
	tagsFile = flag.String("tags", "", "Optional file with one tag per line, added on top of the default catalog")
)

func main() {
	flag.Parse()

	base := *dataPath
	if base == "" {
		base = os.Getenv("DATA_PATH")
	}
	if base == "" {
		base = os.ExpandEnv("$HOME/Lumbr/data")
	}

	dbPath := filepath.Join(base, "lumbr.db")
	fmt.Printf("Opening database at: %s\n", dbPath)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	s, err := sqlite.Open(dbPath, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	names := defaultCatalog
	if *tagsFile != "" {
		extra, err := readTagsFile(*tagsFile)
		if err != nil {
			log.Fatalf("Failed to read tags file: %v", err)
		}
		names = append(names, extra...)
	}

	ctx := context.Background()
	created, skipped := 0, 0

	for _, name := range names {
		slug := util.NormalizeTagSlug(name)
		if slug == "" {
			fmt.Printf("  skipping %q: empty after normalization\n", name)
			continue
		}

		tag := &domain.Tag{
			ID:        id.MustGenerate("tag"),
			Slug:      slug,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.CreateTag(ctx, tag); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				skipped++
				continue
			}
			log.Fatalf("Failed to create tag %q: %v", slug, err)
		}
		created++
		fmt.Printf("  created %s\n", slug)
	}

	fmt.Printf("Done: %d created, %d already present\n", created, skipped)
}

func readTagsFile(path string) ([]string, error) {
	f, err := os.Open(path) //#nosec G304 -- path comes from the operator
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line != "" {
			names = append(names, line)
		}
	}
	return names, scanner.Err()
}
