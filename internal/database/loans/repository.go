// Package loans provides database operations for loan records.
package loans

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mlorenzo/librarian/internal/entities"
)

// Repository handles all loan database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new loans repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new loan and fills in its store-assigned ID.
func (r *Repository) Create(loan *entities.Loan) error {
	if err := r.db.Omit("Book", "Reader").Create(loan).Error; err != nil {
		return fmt.Errorf("%w: creating loan: %v", entities.ErrStoreFailure, err)
	}
	return nil
}

// GetByID retrieves a loan by ID with its book and reader preloaded.
// A missing id yields (nil, nil).
func (r *Repository) GetByID(id uint) (*entities.Loan, error) {
	var loan entities.Loan
	err := r.db.Preload("Book").Preload("Reader").First(&loan, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetching loan %d: %v", entities.ErrStoreFailure, id, err)
	}
	return &loan, nil
}

// GetAll retrieves every loan, returned and outstanding.
func (r *Repository) GetAll() ([]entities.Loan, error) {
	var loans []entities.Loan
	if err := r.db.Preload("Book").Preload("Reader").Order("id").Find(&loans).Error; err != nil {
		return nil, fmt.Errorf("%w: listing loans: %v", entities.ErrStoreFailure, err)
	}
	return loans, nil
}

// GetHistoryFor retrieves every loan ever made to a reader.
func (r *Repository) GetHistoryFor(readerID uint) ([]entities.Loan, error) {
	var loans []entities.Loan
	err := r.db.Preload("Book").Where("reader_id = ?", readerID).Order("id").Find(&loans).Error
	if err != nil {
		return nil, fmt.Errorf("%w: listing loans for reader %d: %v", entities.ErrStoreFailure, readerID, err)
	}
	return loans, nil
}

// GetByBook retrieves every loan referencing a book, returned and
// outstanding. Used when deleting a book to cascade its loan records.
func (r *Repository) GetByBook(bookID uint) ([]entities.Loan, error) {
	var loans []entities.Loan
	err := r.db.Where("book_id = ?", bookID).Order("id").Find(&loans).Error
	if err != nil {
		return nil, fmt.Errorf("%w: listing loans for book %d: %v", entities.ErrStoreFailure, bookID, err)
	}
	return loans, nil
}

// GetOutstandingByBook retrieves the single open loan for a book, or
// (nil, nil) if the book is not out. Finding more than one open loan is a
// consistency violation and is reported, never silently collapsed.
func (r *Repository) GetOutstandingByBook(bookID uint) (*entities.Loan, error) {
	var loans []entities.Loan
	err := r.db.Preload("Book").Preload("Reader").
		Where("book_id = ? AND return_date IS NULL", bookID).
		Find(&loans).Error
	if err != nil {
		return nil, fmt.Errorf("%w: fetching outstanding loan for book %d: %v", entities.ErrStoreFailure, bookID, err)
	}
	switch len(loans) {
	case 0:
		return nil, nil
	case 1:
		return &loans[0], nil
	default:
		return nil, fmt.Errorf("%w: book %d has %d outstanding loans", entities.ErrConstraintViolation, bookID, len(loans))
	}
}

// Update persists every field of the loan under its current ID.
func (r *Repository) Update(loan *entities.Loan) error {
	result := r.db.Model(&entities.Loan{}).Where("id = ?", loan.ID).
		Updates(map[string]interface{}{
			"loan_date":   loan.LoanDate,
			"return_date": loan.ReturnDate,
			"book_id":     loan.BookID,
			"reader_id":   loan.ReaderID,
		})
	if result.Error != nil {
		return fmt.Errorf("%w: updating loan %d: %v", entities.ErrStoreFailure, loan.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: loan %d", entities.ErrNotFound, loan.ID)
	}
	return nil
}

// Delete removes a loan row.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.Loan{}, id)
	if result.Error != nil {
		return fmt.Errorf("%w: deleting loan %d: %v", entities.ErrStoreFailure, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: loan %d", entities.ErrNotFound, id)
	}
	return nil
}
