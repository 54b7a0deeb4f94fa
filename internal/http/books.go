package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/curator/internal/database/books"
	"github.com/mrlokans/curator/internal/services"
)

// CreateBookRequest is the payload for creating a book.
type CreateBookRequest struct {
	Title         string `json:"title" binding:"required"`
	Author        string `json:"author" binding:"required"`
	ISBN          string `json:"isbn" binding:"required"`
	Description   string `json:"description"`
	PublishedYear int    `json:"published_year"`
}

// UpdateBookRequest is a partial update: absent fields keep their stored
// values, which is why every field is a pointer.
type UpdateBookRequest struct {
	Title         *string `json:"title" binding:"omitempty,min=1"`
	Author        *string `json:"author" binding:"omitempty,min=1"`
	ISBN          *string `json:"isbn" binding:"omitempty,min=1"`
	Description   *string `json:"description"`
	PublishedYear *int    `json:"published_year"`
}

// VoteRequest carries a single star vote. Stars is a pointer so that a vote
// of 0 passes the required check.
type VoteRequest struct {
	Stars *int `json:"stars" binding:"required,gte=0,lte=5"`
}

type BooksController struct {
	service *services.BookService
}

func NewBooksController(service *services.BookService) *BooksController {
	return &BooksController{service: service}
}

// Create adds a new book to the catalog
// POST /books
func (bc *BooksController) Create(c *gin.Context) {
	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title, author and isbn are required")
		return
	}

	book, err := bc.service.CreateBook(services.CreateBookInput{
		Title:         req.Title,
		Author:        req.Author,
		ISBN:          req.ISBN,
		Description:   req.Description,
		PublishedYear: req.PublishedYear,
	})
	if err != nil {
		if errors.Is(err, books.ErrDuplicateISBN) {
			respondBadRequest(c, "ISBN already exists")
			return
		}
		respondInternalError(c, err, "create book")
		return
	}

	c.JSON(http.StatusCreated, book)
}

// List returns a page of the catalog
// GET /books?skip=0&limit=100
func (bc *BooksController) List(c *gin.Context) {
	skip := parseQueryInt(c, "skip", 0)
	limit := parseQueryInt(c, "limit", books.DefaultListLimit)

	list, err := bc.service.ListBooks(skip, limit)
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}

	c.JSON(http.StatusOK, list)
}

// Get returns one book by id
// GET /books/:id
func (bc *BooksController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.service.GetBook(id)
	if err != nil {
		if errors.Is(err, books.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}

	c.JSON(http.StatusOK, book)
}

// Update applies a partial update to a book
// PUT /books/:id
func (bc *BooksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid update payload")
		return
	}

	book, err := bc.service.UpdateBook(id, books.BookUpdate{
		Title:         req.Title,
		Author:        req.Author,
		ISBN:          req.ISBN,
		Description:   req.Description,
		PublishedYear: req.PublishedYear,
	})
	if err != nil {
		switch {
		case errors.Is(err, books.ErrNotFound):
			respondNotFound(c, "book")
		case errors.Is(err, books.ErrDuplicateISBN):
			respondBadRequest(c, "ISBN already exists")
		default:
			respondInternalError(c, err, "update book")
		}
		return
	}

	c.JSON(http.StatusOK, book)
}

// Delete removes a book
// DELETE /books/:id
func (bc *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := bc.service.DeleteBook(id); err != nil {
		if errors.Is(err, books.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "delete book")
		return
	}

	c.Status(http.StatusNoContent)
}

// Vote casts a 0-5 star vote on a book
// POST /books/:id/vote
func (bc *BooksController) Vote(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "stars must be an integer between 0 and 5")
		return
	}

	book, err := bc.service.VoteOnBook(id, *req.Stars)
	if err != nil {
		if errors.Is(err, books.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "vote on book")
		return
	}

	c.JSON(http.StatusOK, book)
}
