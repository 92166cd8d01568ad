package library

import (
	"fmt"

	"github.com/mlorenzo/librarian/internal/entities"
)

// Read surface consumed by the console layer. Listing operations pass
// straight through to the repositories; lookups that take a reader id verify
// the reader first so callers get a not-found error instead of an empty list.

func (s *Service) ListBooks() ([]entities.Book, error) {
	return s.books.GetAll()
}

func (s *Service) ListAvailableBooks() ([]entities.Book, error) {
	return s.books.GetAvailable()
}

func (s *Service) ListReaders() ([]entities.Reader, error) {
	return s.readers.GetAll()
}

func (s *Service) ListLoans() ([]entities.Loan, error) {
	return s.loans.GetAll()
}

func (s *Service) GetBook(id uint) (*entities.Book, error) {
	return s.books.GetByID(id)
}

func (s *Service) GetReader(id uint) (*entities.Reader, error) {
	return s.readers.GetByID(id)
}

func (s *Service) GetLoan(id uint) (*entities.Loan, error) {
	return s.loans.GetByID(id)
}

// BooksCurrentlyLoanedTo lists the books a reader holds on open loans.
func (s *Service) BooksCurrentlyLoanedTo(readerID uint) ([]entities.Book, error) {
	reader, err := s.readers.GetByID(readerID)
	if err != nil {
		return nil, err
	}
	if reader == nil {
		return nil, fmt.Errorf("%w: reader %d", entities.ErrNotFound, readerID)
	}
	return s.books.GetCurrentlyLoanedTo(readerID)
}

// LoanHistory lists every loan ever made to a reader, returned and open.
func (s *Service) LoanHistory(readerID uint) ([]entities.Loan, error) {
	reader, err := s.readers.GetByID(readerID)
	if err != nil {
		return nil, err
	}
	if reader == nil {
		return nil, fmt.Errorf("%w: reader %d", entities.ErrNotFound, readerID)
	}
	return s.loans.GetHistoryFor(readerID)
}

// OutstandingLoanForBook returns the open loan for a book, or nil if the
// book is not currently out.
func (s *Service) OutstandingLoanForBook(bookID uint) (*entities.Loan, error) {
	return s.loans.GetOutstandingByBook(bookID)
}
