// Package books provides database operations for the book catalogue.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetByID(123)
package books

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mlorenzo/librarian/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository. Passing a transaction handle
// scopes every operation to that transaction.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new book and fills in its store-assigned ID.
func (r *Repository) Create(book *entities.Book) error {
	if err := r.db.Create(book).Error; err != nil {
		return fmt.Errorf("%w: creating book: %v", entities.ErrStoreFailure, err)
	}
	return nil
}

// GetByID retrieves a book by ID. A missing id yields (nil, nil).
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetching book %d: %v", entities.ErrStoreFailure, id, err)
	}
	return &book, nil
}

// GetAll retrieves every book in the catalogue.
func (r *Repository) GetAll() ([]entities.Book, error) {
	var books []entities.Book
	if err := r.db.Order("id").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("%w: listing books: %v", entities.ErrStoreFailure, err)
	}
	return books, nil
}

// GetAvailable retrieves the books that can currently be lent out.
func (r *Repository) GetAvailable() ([]entities.Book, error) {
	var books []entities.Book
	if err := r.db.Where("available = ?", true).Order("id").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("%w: listing available books: %v", entities.ErrStoreFailure, err)
	}
	return books, nil
}

// GetCurrentlyLoanedTo retrieves the books held by a reader on loans that
// have not been returned.
func (r *Repository) GetCurrentlyLoanedTo(readerID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.
		Joins("JOIN loans ON loans.book_id = books.id").
		Where("loans.reader_id = ? AND loans.return_date IS NULL", readerID).
		Order("books.id").
		Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("%w: listing books loaned to reader %d: %v", entities.ErrStoreFailure, readerID, err)
	}
	return books, nil
}

// Update persists every field of the book under its current ID. Updating a
// book that no longer exists reports ErrNotFound instead of inserting.
func (r *Repository) Update(book *entities.Book) error {
	result := r.db.Model(&entities.Book{}).Where("id = ?", book.ID).
		Updates(map[string]interface{}{
			"title":            book.Title,
			"author":           book.Author,
			"publication_year": book.PublicationYear,
			"available":        book.Available,
		})
	if result.Error != nil {
		return fmt.Errorf("%w: updating book %d: %v", entities.ErrStoreFailure, book.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: book %d", entities.ErrNotFound, book.ID)
	}
	return nil
}

// Delete removes a book row.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.Book{}, id)
	if result.Error != nil {
		return fmt.Errorf("%w: deleting book %d: %v", entities.ErrStoreFailure, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: book %d", entities.ErrNotFound, id)
	}
	return nil
}
