package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"reviewhub/database"
	"reviewhub/internal/api/models"
	"reviewhub/internal/config"

	"gorm.io/gorm"
)

// Seeds the database from the CSV fixture set:
// users.csv, category.csv, genre.csv, titles.csv, genre_title.csv,
// review.csv, comments.csv. Numeric user ids in the fixtures are remapped to
// the generated uuid keys.
func main() {
	dataDir := flag.String("data", "./static/data", "directory with the CSV fixtures")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	imp := &importer{db: db, dir: *dataDir, userIDs: make(map[string]string)}
	steps := []struct {
		file string
		fn   func(record []string) error
	}{
		{"users.csv", imp.user},
		{"category.csv", imp.category},
		{"genre.csv", imp.genre},
		{"titles.csv", imp.title},
		{"genre_title.csv", imp.titleGenre},
		{"review.csv", imp.review},
		{"comments.csv", imp.comment},
	}
	for _, step := range steps {
		n, err := imp.load(step.file, step.fn)
		if err != nil {
			log.Fatalf("import %s: %v", step.file, err)
		}
		logger.Info("imported", "file", step.file, "rows", n)
	}
}

type importer struct {
	db  *gorm.DB
	dir string
	// fixture user id -> generated uuid
	userIDs map[string]string
}

func (i *importer) load(name string, fn func(record []string) error) (int, error) {
	f, err := os.Open(filepath.Join(i.dir, name))
	if err != nil {
		return 0, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	// first row is the header
	for n, record := range records[1:] {
		if err := fn(record); err != nil {
			return n, fmt.Errorf("row %d: %w", n+2, err)
		}
	}
	return len(records) - 1, nil
}

// id,username,email,role,bio,first_name,last_name
func (i *importer) user(r []string) error {
	user := models.User{
		Username:  r[1],
		Email:     r[2],
		Role:      r[3],
		Bio:       r[4],
		FirstName: r[5],
		LastName:  r[6],
	}
	if err := i.db.Create(&user).Error; err != nil {
		return err
	}
	i.userIDs[r[0]] = user.ID
	return nil
}

// id,name,slug
func (i *importer) category(r []string) error {
	id, err := strconv.ParseInt(r[0], 10, 64)
	if err != nil {
		return err
	}
	return i.db.Create(&models.Category{ID: id, Name: r[1], Slug: r[2]}).Error
}

// id,name,slug
func (i *importer) genre(r []string) error {
	id, err := strconv.ParseInt(r[0], 10, 64)
	if err != nil {
		return err
	}
	return i.db.Create(&models.Genre{ID: id, Name: r[1], Slug: r[2]}).Error
}

// id,name,year,category
func (i *importer) title(r []string) error {
	id, err := strconv.ParseInt(r[0], 10, 64)
	if err != nil {
		return err
	}
	year, err := strconv.Atoi(r[2])
	if err != nil {
		return err
	}
	categoryID, err := strconv.ParseInt(r[3], 10, 64)
	if err != nil {
		return err
	}
	return i.db.Create(&models.Title{ID: id, Name: r[1], Year: year, CategoryID: &categoryID}).Error
}

// id,title_id,genre_id
func (i *importer) titleGenre(r []string) error {
	id, err := strconv.ParseInt(r[0], 10, 64)
	if err != nil {
		return err
	}
	titleID, err := strconv.ParseInt(r[1], 10, 64)
	if err != nil {
		return err
	}
	genreID, err := strconv.ParseInt(r[2], 10, 64)
	if err != nil {
		return err
	}
	return i.db.Create(&models.TitleGenre{ID: id, TitleID: titleID, GenreID: genreID}).Error
}

// id,title_id,text,author,score,pub_date
func (i *importer) review(r []string) error {
	id, err := strconv.ParseInt(r[0], 10, 64)
	if err != nil {
		return err
	}
	titleID, err := strconv.ParseInt(r[1], 10, 64)
	if err != nil {
		return err
	}
	authorID, ok := i.userIDs[r[3]]
	if !ok {
		return fmt.Errorf("unknown author id %q", r[3])
	}
	score, err := strconv.Atoi(r[4])
	if err != nil {
		return err
	}
	pubDate, err := time.Parse(time.RFC3339, r[5])
	if err != nil {
		return err
	}
	return i.db.Create(&models.Review{
		ID:       id,
		TitleID:  titleID,
		AuthorID: authorID,
		Text:     r[2],
		Score:    score,
		PubDate:  pubDate,
	}).Error
}

// id,review_id,text,author,pub_date
func (i *importer) comment(r []string) error {
	id, err := strconv.ParseInt(r[0], 10, 64)
	if err != nil {
		return err
	}
	reviewID, err := strconv.ParseInt(r[1], 10, 64)
	if err != nil {
		return err
	}
	authorID, ok := i.userIDs[r[3]]
	if !ok {
		return fmt.Errorf("unknown author id %q", r[3])
	}
	pubDate, err := time.Parse(time.RFC3339, r[4])
	if err != nil {
		return err
	}
	return i.db.Create(&models.Comment{
		ID:       id,
		ReviewID: reviewID,
		AuthorID: authorID,
		Text:     r[2],
		PubDate:  pubDate,
	}).Error
}
