// Package database provides the data access layer for the application.
//
// database.go owns the connection: driver selection (Postgres via DSN or the
// embedded SQLite store), migrations and lifecycle. Domain operations live in
// sub-packages, each exposing a Repository over *gorm.DB:
//
//	db, err := database.NewDatabase(database.Options{Path: "./library.db"})
//	repo := books.NewRepository(db.DB)
//	book, err := repo.GetByID(123)
//
// Repositories return the package-level sentinel errors (books.ErrNotFound,
// books.ErrDuplicateISBN) rather than raw gorm errors, so callers never
// depend on driver-specific failure shapes.
package database
