// Command seed populates the catalog with sample books and random votes for
// local development.
package main

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/joho/godotenv"

	"github.com/mrlokans/curator/internal/config"
	"github.com/mrlokans/curator/internal/database"
	"github.com/mrlokans/curator/internal/database/books"
	"github.com/mrlokans/curator/internal/entities"
	"github.com/mrlokans/curator/internal/services"
)

var samples = []entities.Book{
	{Title: "The Pragmatic Programmer", Author: "Andrew Hunt, David Thomas", ISBN: "9780201616224", Description: "From journeyman to master", PublishedYear: 1999},
	{Title: "Clean Code", Author: "Robert C. Martin", ISBN: "9780132350884", PublishedYear: 2008},
	{Title: "The Go Programming Language", Author: "Alan A. A. Donovan, Brian W. Kernighan", ISBN: "9780134190440", PublishedYear: 2015},
	{Title: "Designing Data-Intensive Applications", Author: "Martin Kleppmann", ISBN: "9781449373320", PublishedYear: 2017},
	{Title: "Structure and Interpretation of Computer Programs", Author: "Harold Abelson, Gerald Jay Sussman", ISBN: "9780262510875", PublishedYear: 1996},
}

func main() {
	_ = godotenv.Load()
	cfg := config.NewConfig()

	db, err := database.NewDatabase(database.Options{
		DSN:        cfg.Database.URL,
		Path:       cfg.Database.Path,
		ForceLocal: cfg.Database.ForceLocal,
	})
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	service := services.NewBookService(books.NewRepository(db.DB))

	created := 0
	for _, sample := range samples {
		book, err := service.CreateBook(services.CreateBookInput{
			Title:         sample.Title,
			Author:        sample.Author,
			ISBN:          sample.ISBN,
			Description:   sample.Description,
			PublishedYear: sample.PublishedYear,
		})
		if err != nil {
			log.Printf("Skipping %q: %v", sample.Title, err)
			continue
		}
		created++

		for i := 0; i < 3+rand.Intn(5); i++ {
			if _, err := service.VoteOnBook(book.ID, 2+rand.Intn(4)); err != nil {
				log.Printf("Vote failed for %q: %v", sample.Title, err)
			}
		}
	}

	fmt.Printf("Seeded %d books\n", created)
}
