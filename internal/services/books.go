package services

import (
	"errors"
	"log"

	"github.com/mrlokans/curator/internal/database/books"
	"github.com/mrlokans/curator/internal/entities"
)

// BookStore defines the persistence operations the book service relies on.
// Implemented by books.Repository.
type BookStore interface {
	Create(book *entities.Book) error
	GetByID(id uint) (*entities.Book, error)
	GetByISBN(isbn string) (*entities.Book, error)
	List(offset, limit int) ([]entities.Book, error)
	Update(id uint, upd books.BookUpdate) (*entities.Book, error)
	Delete(id uint) error
	AddVote(id uint, stars int) (*entities.Book, error)
}

// CreateBookInput holds the fields accepted when creating a book.
type CreateBookInput struct {
	Title         string
	Author        string
	ISBN          string
	Description   string
	PublishedYear int
}

// BookService enforces catalog business rules on top of a BookStore.
type BookService struct {
	store BookStore
}

func NewBookService(store BookStore) *BookService {
	return &BookService{store: store}
}

// CreateBook creates a new book after checking that the ISBN is free. The
// existence check gives a friendly fast-path error; the store's unique index
// remains the final guarantee, and both surface books.ErrDuplicateISBN.
func (s *BookService) CreateBook(input CreateBookInput) (*entities.Book, error) {
	if _, err := s.store.GetByISBN(input.ISBN); err == nil {
		log.Printf("Attempted to create duplicate ISBN: %s", input.ISBN)
		return nil, books.ErrDuplicateISBN
	} else if !errors.Is(err, books.ErrNotFound) {
		return nil, err
	}

	book := &entities.Book{
		Title:         input.Title,
		Author:        input.Author,
		ISBN:          input.ISBN,
		Description:   input.Description,
		PublishedYear: input.PublishedYear,
	}
	if err := s.store.Create(book); err != nil {
		return nil, err
	}

	log.Printf("Created book: %s (ID: %d)", book.Title, book.ID)
	return book, nil
}

// GetBook returns a book by id, or books.ErrNotFound.
func (s *BookService) GetBook(id uint) (*entities.Book, error) {
	book, err := s.store.GetByID(id)
	if err != nil {
		if errors.Is(err, books.ErrNotFound) {
			log.Printf("Book not found: %d", id)
		}
		return nil, err
	}
	return book, nil
}

// ListBooks returns a page of the catalog; pagination bounds are clamped by
// the store.
func (s *BookService) ListBooks(skip, limit int) ([]entities.Book, error) {
	list, err := s.store.List(skip, limit)
	if err != nil {
		return nil, err
	}
	log.Printf("Retrieved %d books", len(list))
	return list, nil
}

// UpdateBook applies a partial update. When the update changes the ISBN to a
// value another book already owns, it fails with books.ErrDuplicateISBN.
func (s *BookService) UpdateBook(id uint, upd books.BookUpdate) (*entities.Book, error) {
	current, err := s.store.GetByID(id)
	if err != nil {
		if errors.Is(err, books.ErrNotFound) {
			log.Printf("Book not found for update: %d", id)
		}
		return nil, err
	}

	if upd.ISBN != nil && *upd.ISBN != current.ISBN {
		if _, err := s.store.GetByISBN(*upd.ISBN); err == nil {
			log.Printf("Attempted to update book %d to duplicate ISBN: %s", id, *upd.ISBN)
			return nil, books.ErrDuplicateISBN
		} else if !errors.Is(err, books.ErrNotFound) {
			return nil, err
		}
	}

	updated, err := s.store.Update(id, upd)
	if err != nil {
		return nil, err
	}

	log.Printf("Updated book: %s (ID: %d)", updated.Title, id)
	return updated, nil
}

// DeleteBook removes a book permanently.
func (s *BookService) DeleteBook(id uint) error {
	if err := s.store.Delete(id); err != nil {
		if errors.Is(err, books.ErrNotFound) {
			log.Printf("Book not found for deletion: %d", id)
		}
		return err
	}
	log.Printf("Deleted book ID: %d", id)
	return nil
}

// VoteOnBook folds a star vote into the book's average rating. Stars must
// already be range-checked by the caller; the store computes the new average
// from freshly read state.
func (s *BookService) VoteOnBook(id uint, stars int) (*entities.Book, error) {
	book, err := s.store.AddVote(id, stars)
	if err != nil {
		if errors.Is(err, books.ErrNotFound) {
			log.Printf("Book not found for voting: %d", id)
		}
		return nil, err
	}
	log.Printf("Vote added to book %s: %d stars (new avg: %.2f)", book.Title, stars, book.Rating)
	return book, nil
}
