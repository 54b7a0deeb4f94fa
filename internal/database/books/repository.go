// Package books provides database operations for the book catalog:
// CRUD plus the vote-aggregation update backing the star-rating feature.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetByID(42)
package books

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/curator/internal/entities"
)

var (
	// ErrNotFound is returned when no book matches the given id or ISBN.
	ErrNotFound = errors.New("book not found")

	// ErrDuplicateISBN is returned when a create or update would violate
	// the unique index on isbn.
	ErrDuplicateISBN = errors.New("isbn already exists")
)

const (
	// DefaultListLimit is used when the caller does not specify a page size.
	DefaultListLimit = 100

	// MaxListLimit caps a single page of results.
	MaxListLimit = 500
)

// BookUpdate carries a partial update. Nil fields are left untouched on the
// stored row; set fields overwrite it (PATCH-style merge).
type BookUpdate struct {
	Title         *string
	Author        *string
	ISBN          *string
	Description   *string
	PublishedYear *int
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// lockForUpdate adds a row lock to a read inside a transaction. SQLite has no
// FOR UPDATE syntax; its write transactions already hold the database lock,
// so the clause is only emitted for dialects that understand it.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// Create inserts a new book with zero rating and vote count.
func (r *Repository) Create(book *entities.Book) error {
	book.Rating = 0
	book.VoteCount = 0
	if err := r.db.Create(book).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateISBN
		}
		return err
	}
	return nil
}

// GetByID retrieves a book by its primary key.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

// GetByISBN retrieves a book by its ISBN.
func (r *Repository) GetByISBN(isbn string) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.Where("isbn = ?", isbn).First(&book).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

// List returns a page of books in ascending id order, so repeated calls with
// the same offset/limit see the same page as long as nothing was mutated in
// between. Negative offsets are treated as zero; limit is clamped to
// [1, MaxListLimit] with DefaultListLimit when unset.
func (r *Repository) List(offset, limit int) ([]entities.Book, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	var books []entities.Book
	err := r.db.Order("id ASC").Offset(offset).Limit(limit).Find(&books).Error
	return books, err
}

// Update applies the set fields of upd to the stored row and returns the
// refreshed entity. The row is re-read inside the transaction so the merge
// always starts from current state.
func (r *Repository) Update(id uint, upd BookUpdate) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&book, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		changes := map[string]any{}
		if upd.Title != nil {
			changes["title"] = *upd.Title
		}
		if upd.Author != nil {
			changes["author"] = *upd.Author
		}
		if upd.ISBN != nil {
			changes["isbn"] = *upd.ISBN
		}
		if upd.Description != nil {
			changes["description"] = *upd.Description
		}
		if upd.PublishedYear != nil {
			changes["published_year"] = *upd.PublishedYear
		}
		if len(changes) == 0 {
			return nil
		}

		if err := tx.Model(&book).Updates(changes).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateISBN
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Delete removes a book permanently.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.Book{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddVote folds a 0-5 star vote into the book's running average and returns
// the refreshed entity. The current rating and vote count are re-read under a
// row lock inside the same transaction that writes the new values, so two
// concurrent votes on one book cannot overwrite each other.
func (r *Repository) AddVote(id uint, stars int) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&book, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		total := book.Rating*float64(book.VoteCount) + float64(stars)
		book.VoteCount++
		book.Rating = total / float64(book.VoteCount)

		return tx.Model(&book).Updates(map[string]any{
			"rating":     book.Rating,
			"vote_count": book.VoteCount,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &book, nil
}
