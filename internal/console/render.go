package console

import (
	"errors"
	"fmt"

	"github.com/mlorenzo/librarian/internal/entities"
)

func formatBook(b entities.Book) string {
	availability := "available"
	if !b.Available {
		availability = "on loan"
	}
	return fmt.Sprintf("ID: %d | Title: %s | Author: %s | Year: %d | %s",
		b.ID, b.Title, b.Author, b.PublicationYear, availability)
}

func formatReader(r entities.Reader) string {
	return fmt.Sprintf("ID: %d | Name: %s %s | E-mail: %s | Born: %s",
		r.ID, r.Name, r.Surname, r.Email, entities.FormatDate(r.BirthDate))
}

func formatLoan(l entities.Loan) string {
	returned := "outstanding"
	if l.ReturnDate != nil {
		returned = "returned " + entities.FormatDate(*l.ReturnDate)
	}
	return fmt.Sprintf("ID: %d | Loaned: %s | %s | Book ID: %d | Reader ID: %d",
		l.ID, entities.FormatDate(l.LoanDate), returned, l.BookID, l.ReaderID)
}

// errorMessage turns a tagged core error into the message shown to the user.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, entities.ErrNotFound):
		return fmt.Sprintf("Nothing was found for the given ID (%v).", err)
	case errors.Is(err, entities.ErrNoOutstandingLoan):
		return "The selected book has no outstanding loan to return."
	case errors.Is(err, entities.ErrConstraintViolation):
		return fmt.Sprintf("The operation is not allowed: %v.", err)
	case errors.Is(err, entities.ErrValidation):
		return fmt.Sprintf("The entered value is not valid: %v.", err)
	default:
		return fmt.Sprintf("The operation failed and was rolled back: %v.", err)
	}
}
