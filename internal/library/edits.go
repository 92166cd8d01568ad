package library

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mlorenzo/librarian/internal/database/books"
	"github.com/mlorenzo/librarian/internal/database/loans"
	"github.com/mlorenzo/librarian/internal/database/readers"
	"github.com/mlorenzo/librarian/internal/entities"
)

// Field-edit structs for the modify operations. A nil field is left as is.
// All edits are resolved in memory first and persisted with a single update,
// never field by field.

type BookEdits struct {
	Title           *string
	Author          *string
	PublicationYear *int
	Available       *bool
}

type ReaderEdits struct {
	Name      *string
	Surname   *string
	Email     *string
	BirthDate *time.Time
}

type LoanEdits struct {
	BookID     *uint
	ReaderID   *uint
	LoanDate   *time.Time
	ReturnDate *time.Time
}

// ModifyBook applies the given edits to an existing book. A bad id aborts
// with a not-found error; it never creates a record.
func (s *Service) ModifyBook(id uint, edits BookEdits) (*entities.Book, error) {
	book, err := s.books.GetByID(id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, fmt.Errorf("%w: book %d", entities.ErrNotFound, id)
	}

	if edits.Title != nil {
		book.Title = *edits.Title
	}
	if edits.Author != nil {
		book.Author = *edits.Author
	}
	if edits.PublicationYear != nil {
		book.PublicationYear = *edits.PublicationYear
	}
	if edits.Available != nil {
		book.Available = *edits.Available
	}

	if err := s.books.Update(book); err != nil {
		return nil, err
	}
	return book, nil
}

// ModifyReader applies the given edits to an existing reader. An edited
// e-mail address is validated before anything is persisted.
func (s *Service) ModifyReader(id uint, edits ReaderEdits) (*entities.Reader, error) {
	reader, err := s.readers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if reader == nil {
		return nil, fmt.Errorf("%w: reader %d", entities.ErrNotFound, id)
	}

	if edits.Email != nil {
		if err := entities.ValidateEmail(*edits.Email); err != nil {
			return nil, err
		}
		reader.Email = *edits.Email
	}
	if edits.Name != nil {
		reader.Name = *edits.Name
	}
	if edits.Surname != nil {
		reader.Surname = *edits.Surname
	}
	if edits.BirthDate != nil {
		reader.BirthDate = *edits.BirthDate
	}

	if err := s.readers.Update(reader); err != nil {
		return nil, err
	}
	return reader, nil
}

// ModifyLoan applies the given edits to an existing loan. Replacement book
// and reader ids must resolve, otherwise the edit aborts untouched.
func (s *Service) ModifyLoan(id uint, edits LoanEdits) (*entities.Loan, error) {
	var modified *entities.Loan
	err := s.db.Transaction(func(tx *gorm.DB) error {
		br := books.NewRepository(tx)
		rr := readers.NewRepository(tx)
		lr := loans.NewRepository(tx)

		loan, err := lr.GetByID(id)
		if err != nil {
			return err
		}
		if loan == nil {
			return fmt.Errorf("%w: loan %d", entities.ErrNotFound, id)
		}

		if edits.BookID != nil {
			book, err := br.GetByID(*edits.BookID)
			if err != nil {
				return err
			}
			if book == nil {
				return fmt.Errorf("%w: book %d", entities.ErrNotFound, *edits.BookID)
			}
			loan.BookID = book.ID
			loan.Book = *book
		}
		if edits.ReaderID != nil {
			reader, err := rr.GetByID(*edits.ReaderID)
			if err != nil {
				return err
			}
			if reader == nil {
				return fmt.Errorf("%w: reader %d", entities.ErrNotFound, *edits.ReaderID)
			}
			loan.ReaderID = reader.ID
			loan.Reader = *reader
		}
		if edits.LoanDate != nil {
			loan.LoanDate = *edits.LoanDate
		}
		if edits.ReturnDate != nil {
			loan.ReturnDate = edits.ReturnDate
		}

		if err := lr.Update(loan); err != nil {
			return err
		}
		modified = loan
		return nil
	})
	if err != nil {
		return nil, err
	}
	return modified, nil
}
