// Package readers provides database operations for registered readers.
package readers

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mlorenzo/librarian/internal/entities"
)

// Repository handles all reader database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new readers repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new reader and fills in its store-assigned ID.
func (r *Repository) Create(reader *entities.Reader) error {
	if err := r.db.Create(reader).Error; err != nil {
		return fmt.Errorf("%w: creating reader: %v", entities.ErrStoreFailure, err)
	}
	return nil
}

// GetByID retrieves a reader by ID. A missing id yields (nil, nil).
func (r *Repository) GetByID(id uint) (*entities.Reader, error) {
	var reader entities.Reader
	err := r.db.First(&reader, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetching reader %d: %v", entities.ErrStoreFailure, id, err)
	}
	return &reader, nil
}

// GetAll retrieves every registered reader.
func (r *Repository) GetAll() ([]entities.Reader, error) {
	var readers []entities.Reader
	if err := r.db.Order("id").Find(&readers).Error; err != nil {
		return nil, fmt.Errorf("%w: listing readers: %v", entities.ErrStoreFailure, err)
	}
	return readers, nil
}

// Update persists every field of the reader under its current ID.
func (r *Repository) Update(reader *entities.Reader) error {
	result := r.db.Model(&entities.Reader{}).Where("id = ?", reader.ID).
		Updates(map[string]interface{}{
			"name":       reader.Name,
			"surname":    reader.Surname,
			"email":      reader.Email,
			"birth_date": reader.BirthDate,
		})
	if result.Error != nil {
		return fmt.Errorf("%w: updating reader %d: %v", entities.ErrStoreFailure, reader.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: reader %d", entities.ErrNotFound, reader.ID)
	}
	return nil
}

// Delete removes a reader row.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.Reader{}, id)
	if result.Error != nil {
		return fmt.Errorf("%w: deleting reader %d: %v", entities.ErrStoreFailure, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: reader %d", entities.ErrNotFound, id)
	}
	return nil
}
