package books

import (
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/curator/internal/database"
	"github.com/mrlokans/curator/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	t.Helper()

	dbPath := "./test_books_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(database.Options{Path: dbPath})
	require.NoError(t, err)

	repo := NewRepository(db.DB)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return repo, cleanup
}

func createTestBook(t *testing.T, repo *Repository, title, isbn string) *entities.Book {
	t.Helper()
	book := &entities.Book{
		Title:  title,
		Author: "Test Author",
		ISBN:   isbn,
	}
	require.NoError(t, repo.Create(book))
	return book
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestRepository_Create(t *testing.T) {
	t.Run("assigns id and zeroes the rating", func(t *testing.T) {
		repo, cleanup := setupTestDB(t)
		defer cleanup()

		book := &entities.Book{
			Title:         "Dune",
			Author:        "Frank Herbert",
			ISBN:          "9780441013593",
			Description:   "Desert planet epic",
			PublishedYear: 1965,
			Rating:        4.9, // must be ignored
			VoteCount:     12,  // must be ignored
		}
		require.NoError(t, repo.Create(book))

		assert.Greater(t, book.ID, uint(0))
		assert.Equal(t, 0.0, book.Rating)
		assert.Equal(t, 0, book.VoteCount)
		assert.False(t, book.CreatedAt.IsZero())
		assert.False(t, book.UpdatedAt.Before(book.CreatedAt))
	})

	t.Run("rejects duplicate isbn", func(t *testing.T) {
		repo, cleanup := setupTestDB(t)
		defer cleanup()

		createTestBook(t, repo, "First", "111")

		err := repo.Create(&entities.Book{Title: "Second", Author: "Someone", ISBN: "111"})
		assert.ErrorIs(t, err, ErrDuplicateISBN)

		all, err := repo.List(0, 10)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

func TestRepository_GetByID(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	created := createTestBook(t, repo, "Dune", "9780441013593")

	found, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", found.Title)
	assert.Equal(t, "9780441013593", found.ISBN)

	_, err = repo.GetByID(99999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_GetByISBN(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	created := createTestBook(t, repo, "Dune", "9780441013593")

	found, err := repo.GetByISBN("9780441013593")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.GetByISBN("0000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_List(t *testing.T) {
	t.Run("pages in ascending id order", func(t *testing.T) {
		repo, cleanup := setupTestDB(t)
		defer cleanup()

		isbns := []string{"111", "222", "333", "444", "555"}
		for _, isbn := range isbns {
			createTestBook(t, repo, "Book "+isbn, isbn)
		}

		page, err := repo.List(0, 2)
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, "111", page[0].ISBN)
		assert.Equal(t, "222", page[1].ISBN)

		// Same page again without mutations must be identical
		again, err := repo.List(0, 2)
		require.NoError(t, err)
		require.Len(t, again, 2)
		assert.Equal(t, page[0].ID, again[0].ID)
		assert.Equal(t, page[1].ID, again[1].ID)

		rest, err := repo.List(2, 10)
		require.NoError(t, err)
		assert.Len(t, rest, 3)
		assert.Equal(t, "333", rest[0].ISBN)
	})

	t.Run("clamps offset and limit", func(t *testing.T) {
		repo, cleanup := setupTestDB(t)
		defer cleanup()

		createTestBook(t, repo, "Only", "111")

		page, err := repo.List(-5, -1)
		require.NoError(t, err)
		assert.Len(t, page, 1)
	})
}

func TestRepository_Update(t *testing.T) {
	t.Run("merges only the set fields", func(t *testing.T) {
		repo, cleanup := setupTestDB(t)
		defer cleanup()

		created := createTestBook(t, repo, "Dune", "9780441013593")
		before, err := repo.GetByID(created.ID)
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)

		updated, err := repo.Update(created.ID, BookUpdate{
			Description: strPtr("Desert planet epic"),
		})
		require.NoError(t, err)

		assert.Equal(t, "Dune", updated.Title)
		assert.Equal(t, "Test Author", updated.Author)
		assert.Equal(t, "9780441013593", updated.ISBN)
		assert.Equal(t, "Desert planet epic", updated.Description)
		assert.True(t, updated.UpdatedAt.After(before.UpdatedAt))

		// Persisted state matches the returned entity
		stored, err := repo.GetByID(created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Desert planet epic", stored.Description)
		assert.Equal(t, "Dune", stored.Title)
	})

	t.Run("updates several fields at once", func(t *testing.T) {
		repo, cleanup := setupTestDB(t)
		defer cleanup()

		created := createTestBook(t, repo, "Dune", "111")

		updated, err := repo.Update(created.ID, BookUpdate{
			Title:         strPtr("Dune Messiah"),
			ISBN:          strPtr("222"),
			PublishedYear: intPtr(1969),
		})
		require.NoError(t, err)
		assert.Equal(t, "Dune Messiah", updated.Title)
		assert.Equal(t, "222", updated.ISBN)
		assert.Equal(t, 1969, updated.PublishedYear)
		assert.Equal(t, "Test Author", updated.Author)
	})

	t.Run("returns not found for missing id", func(t *testing.T) {
		repo, cleanup := setupTestDB(t)
		defer cleanup()

		_, err := repo.Update(12345, BookUpdate{Title: strPtr("Ghost")})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("rejects isbn taken by another book", func(t *testing.T) {
		repo, cleanup := setupTestDB(t)
		defer cleanup()

		createTestBook(t, repo, "First", "111")
		second := createTestBook(t, repo, "Second", "222")

		_, err := repo.Update(second.ID, BookUpdate{ISBN: strPtr("111")})
		assert.ErrorIs(t, err, ErrDuplicateISBN)

		stored, err := repo.GetByID(second.ID)
		require.NoError(t, err)
		assert.Equal(t, "222", stored.ISBN)
	})
}

func TestRepository_Delete(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	created := createTestBook(t, repo, "Dune", "111")

	require.NoError(t, repo.Delete(created.ID))

	_, err := repo.GetByID(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(created.ID), ErrNotFound)
}

func TestRepository_AddVote(t *testing.T) {
	t.Run("computes the running average", func(t *testing.T) {
		repo, cleanup := setupTestDB(t)
		defer cleanup()

		created := createTestBook(t, repo, "Dune", "111")

		book, err := repo.AddVote(created.ID, 5)
		require.NoError(t, err)
		assert.Equal(t, 1, book.VoteCount)
		assert.InDelta(t, 5.0, book.Rating, 1e-9)

		book, err = repo.AddVote(created.ID, 3)
		require.NoError(t, err)
		assert.Equal(t, 2, book.VoteCount)
		assert.InDelta(t, 4.0, book.Rating, 1e-9)
	})

	t.Run("matches the mean of an arbitrary vote sequence", func(t *testing.T) {
		repo, cleanup := setupTestDB(t)
		defer cleanup()

		created := createTestBook(t, repo, "Dune", "111")

		votes := []int{0, 5, 3, 4, 1, 2, 5, 5, 0, 3}
		sum := 0
		for _, stars := range votes {
			_, err := repo.AddVote(created.ID, stars)
			require.NoError(t, err)
			sum += stars
		}

		stored, err := repo.GetByID(created.ID)
		require.NoError(t, err)
		assert.Equal(t, len(votes), stored.VoteCount)
		assert.InDelta(t, float64(sum)/float64(len(votes)), stored.Rating, 1e-9)
	})

	t.Run("concurrent votes do not lose updates", func(t *testing.T) {
		repo, cleanup := setupTestDB(t)
		defer cleanup()

		created := createTestBook(t, repo, "Dune", "111")

		const voters = 10
		var wg sync.WaitGroup
		errs := make(chan error, voters)
		for i := 0; i < voters; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.AddVote(created.ID, 4)
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		stored, err := repo.GetByID(created.ID)
		require.NoError(t, err)
		assert.Equal(t, voters, stored.VoteCount)
		assert.InDelta(t, 4.0, stored.Rating, 1e-9)
	})

	t.Run("returns not found for missing id", func(t *testing.T) {
		repo, cleanup := setupTestDB(t)
		defer cleanup()

		_, err := repo.AddVote(4242, 5)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
