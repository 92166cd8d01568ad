// Package library implements the lending workflows on top of the entity
// repositories: lending and returning books, and the cascading deletes that
// keep book availability consistent with the loan records.
//
// Every composite operation runs inside a single transaction, so the
// availability flag and the loan rows never observably diverge.
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

// Service orchestrates the repositories. The gorm handle is an explicit
// dependency; composite operations open a transaction on it and rebind the
// repositories to the transaction.
type Service struct {
	db      *gorm.DB
	books   *books.Repository
	readers *readers.Repository
	loans   *loans.Repository
}

// NewService creates a library service bound to the given database session.
func NewService(db *gorm.DB) *Service {
	return &Service{
		db:      db,
		books:   books.NewRepository(db),
		readers: readers.NewRepository(db),
		loans:   loans.NewRepository(db),
	}
}

// InsertBook registers a new book. A freshly inserted book is always
// available for lending.
func (s *Service) InsertBook(title, author string, publicationYear int) (*entities.Book, error) {
	book := &entities.Book{
		Title:           title,
		Author:          author,
		PublicationYear: publicationYear,
		Available:       true,
	}
	if err := s.books.Create(book); err != nil {
		return nil, err
	}
	return book, nil
}

// InsertReader registers a new reader after validating the e-mail address.
func (s *Service) InsertReader(name, surname, email string, birthDate time.Time) (*entities.Reader, error) {
	if err := entities.ValidateEmail(email); err != nil {
		return nil, err
	}
	reader := &entities.Reader{
		Name:      name,
		Surname:   surname,
		Email:     email,
		BirthDate: birthDate,
	}
	if err := s.readers.Create(reader); err != nil {
		return nil, err
	}
	return reader, nil
}

// LendBook opens a loan for an available book. The loan insert and the
// availability update commit or roll back together.
func (s *Service) LendBook(bookID, readerID uint) (*entities.Loan, error) {
	var loan *entities.Loan
	err := s.db.Transaction(func(tx *gorm.DB) error {
		br := books.NewRepository(tx)
		rr := readers.NewRepository(tx)
		lr := loans.NewRepository(tx)

		book, err := br.GetByID(bookID)
		if err != nil {
			return err
		}
		if book == nil {
			return fmt.Errorf("%w: book %d", entities.ErrNotFound, bookID)
		}
		reader, err := rr.GetByID(readerID)
		if err != nil {
			return err
		}
		if reader == nil {
			return fmt.Errorf("%w: reader %d", entities.ErrNotFound, readerID)
		}
		if !book.Available {
			return fmt.Errorf("%w: book %d (%s) is not available for lending", entities.ErrConstraintViolation, bookID, book.Title)
		}

		loan = &entities.Loan{
			LoanDate: time.Now(),
			BookID:   book.ID,
			ReaderID: reader.ID,
		}
		if err := lr.Create(loan); err != nil {
			return err
		}
		book.Available = false
		return br.Update(book)
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

// ReturnLoan closes the outstanding loan for a book. returnDate may be nil,
// in which case the current time is recorded. The loan update and the
// availability update commit or roll back together.
func (s *Service) ReturnLoan(bookID uint, returnDate *time.Time) (*entities.Loan, error) {
	var returned *entities.Loan
	err := s.db.Transaction(func(tx *gorm.DB) error {
		br := books.NewRepository(tx)
		lr := loans.NewRepository(tx)

		loan, err := lr.GetOutstandingByBook(bookID)
		if err != nil {
			return err
		}
		if loan == nil {
			return fmt.Errorf("%w: book %d", entities.ErrNoOutstandingLoan, bookID)
		}

		when := time.Now()
		if returnDate != nil {
			when = *returnDate
		}
		loan.ReturnDate = &when
		if err := lr.Update(loan); err != nil {
			return err
		}

		book, err := br.GetByID(loan.BookID)
		if err != nil {
			return err
		}
		if book == nil {
			return fmt.Errorf("%w: book %d", entities.ErrNotFound, loan.BookID)
		}
		book.Available = true
		if err := br.Update(book); err != nil {
			return err
		}
		returned = loan
		return nil
	})
	if err != nil {
		return nil, err
	}
	return returned, nil
}

// DeleteLoan removes a loan record. Deleting an outstanding loan is treated
// as "entered in error": the book was never really taken out, so its
// availability is repaired before the row goes away.
func (s *Service) DeleteLoan(loanID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		br := books.NewRepository(tx)
		lr := loans.NewRepository(tx)

		loan, err := lr.GetByID(loanID)
		if err != nil {
			return err
		}
		if loan == nil {
			return fmt.Errorf("%w: loan %d", entities.ErrNotFound, loanID)
		}
		return deleteLoan(br, lr, loan)
	})
}

// DeleteReader removes a reader and cascades to the reader's whole loan
// history, repairing book availability for any loan still outstanding.
func (s *Service) DeleteReader(readerID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		br := books.NewRepository(tx)
		rr := readers.NewRepository(tx)
		lr := loans.NewRepository(tx)

		reader, err := rr.GetByID(readerID)
		if err != nil {
			return err
		}
		if reader == nil {
			return fmt.Errorf("%w: reader %d", entities.ErrNotFound, readerID)
		}

		history, err := lr.GetHistoryFor(readerID)
		if err != nil {
			return err
		}
		if err := cascadeDeleteLoans(br, lr, history); err != nil {
			return err
		}
		return rr.Delete(readerID)
	})
}

// DeleteBook removes a book and cascades to every loan referencing it, so
// no loan row is ever left pointing at a nonexistent book.
func (s *Service) DeleteBook(bookID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		br := books.NewRepository(tx)
		lr := loans.NewRepository(tx)

		book, err := br.GetByID(bookID)
		if err != nil {
			return err
		}
		if book == nil {
			return fmt.Errorf("%w: book %d", entities.ErrNotFound, bookID)
		}

		refs, err := lr.GetByBook(bookID)
		if err != nil {
			return err
		}
		if err := cascadeDeleteLoans(br, lr, refs); err != nil {
			return err
		}
		return br.Delete(bookID)
	})
}

// cascadeDeleteLoans deletes every given loan through the same path explicit
// loan deletion takes, so the availability-repair rule applies uniformly to
// reader and book deletion.
func cascadeDeleteLoans(br *books.Repository, lr *loans.Repository, refs []entities.Loan) error {
	for i := range refs {
		if err := deleteLoan(br, lr, &refs[i]); err != nil {
			return err
		}
	}
	return nil
}

func deleteLoan(br *books.Repository, lr *loans.Repository, loan *entities.Loan) error {
	if loan.Outstanding() {
		book, err := br.GetByID(loan.BookID)
		if err != nil {
			return err
		}
		// The referenced book may itself be mid-deletion in this
		// transaction; only repair availability if it still exists.
		if book != nil {
			book.Available = true
			if err := br.Update(book); err != nil {
				return err
			}
		}
	}
	return lr.Delete(loan.ID)
}
