// Package console implements the interactive menu dialog. It is pure I/O
// glue: prompts, parsing and re-prompt loops live here, while every mutation
// goes through the library service.
package console

import (
	"errors"
	"io"
	"time"

	"github.com/mlorenzo/librarian/internal/library"
)

// Menu drives the console dialog over the library service.
type Menu struct {
	svc *library.Service
	p   *prompter
}

// NewMenu creates a menu reading from in and writing to out. maxRetries
// bounds the re-prompt loops for malformed entries (0 = unlimited).
func NewMenu(svc *library.Service, in io.Reader, out io.Writer, maxRetries int) *Menu {
	return &Menu{
		svc: svc,
		p:   newPrompter(in, out, maxRetries),
	}
}

// Run executes the main menu loop until the user exits or input ends.
func (m *Menu) Run() error {
	err := m.mainMenu()
	if errors.Is(err, errInputClosed) {
		return nil
	}
	return err
}

func (m *Menu) mainMenu() error {
	for {
		m.p.separator()
		m.p.println("LIBRARY MANAGER")
		m.p.println("1-Manage loans")
		m.p.println("2-Manage books")
		m.p.println("3-Manage readers")
		m.p.println("0-Exit")
		option, err := m.p.readInt("Choose an option: ")
		if err != nil {
			return err
		}
		switch option {
		case 1:
			if err := m.loansMenu(); err != nil {
				return err
			}
		case 2:
			if err := m.booksMenu(); err != nil {
				return err
			}
		case 3:
			if err := m.readersMenu(); err != nil {
				return err
			}
		case 0:
			m.p.println("Goodbye.")
			return nil
		default:
			m.p.println("Unknown option, please try again.")
		}
	}
}

func (m *Menu) loansMenu() error {
	for {
		m.p.separator()
		m.p.println("LOANS")
		m.p.println("1-New loan")
		m.p.println("2-Return a loan")
		m.p.println("3-Delete a loan")
		m.p.println("4-Loan history of a reader")
		m.p.println("5-Modify a loan")
		m.p.println("0-Back to main menu")
		option, err := m.p.readInt("Choose an option: ")
		if err != nil {
			return err
		}
		var dialogErr error
		switch option {
		case 1:
			dialogErr = m.lendDialog()
		case 2:
			dialogErr = m.returnDialog()
		case 3:
			dialogErr = m.deleteLoanDialog()
		case 4:
			dialogErr = m.loanHistoryDialog()
		case 5:
			dialogErr = m.modifyLoanDialog()
		case 0:
			return nil
		default:
			m.p.println("Unknown option, please try again.")
		}
		if dialogErr != nil {
			return dialogErr
		}
	}
}

func (m *Menu) booksMenu() error {
	for {
		m.p.separator()
		m.p.println("BOOKS")
		m.p.println("1-Insert a book")
		m.p.println("2-Modify a book")
		m.p.println("3-Delete a book")
		m.p.println("4-Show books available for lending")
		m.p.println("5-Show all books")
		m.p.println("0-Back to main menu")
		option, err := m.p.readInt("Choose an option: ")
		if err != nil {
			return err
		}
		var dialogErr error
		switch option {
		case 1:
			dialogErr = m.insertBookDialog()
		case 2:
			dialogErr = m.modifyBookDialog()
		case 3:
			dialogErr = m.deleteBookDialog()
		case 4:
			dialogErr = m.showAvailableBooks()
		case 5:
			dialogErr = m.showAllBooks()
		case 0:
			return nil
		default:
			m.p.println("Unknown option, please try again.")
		}
		if dialogErr != nil {
			return dialogErr
		}
	}
}

func (m *Menu) readersMenu() error {
	for {
		m.p.separator()
		m.p.println("READERS")
		m.p.println("1-New reader")
		m.p.println("2-Modify a reader")
		m.p.println("3-Delete a reader")
		m.p.println("4-Books currently loaned to a reader")
		m.p.println("5-Show all readers")
		m.p.println("0-Back to main menu")
		option, err := m.p.readInt("Choose an option: ")
		if err != nil {
			return err
		}
		var dialogErr error
		switch option {
		case 1:
			dialogErr = m.insertReaderDialog()
		case 2:
			dialogErr = m.modifyReaderDialog()
		case 3:
			dialogErr = m.deleteReaderDialog()
		case 4:
			dialogErr = m.loanedBooksDialog()
		case 5:
			dialogErr = m.showAllReaders()
		case 0:
			return nil
		default:
			m.p.println("Unknown option, please try again.")
		}
		if dialogErr != nil {
			return dialogErr
		}
	}
}

func (m *Menu) showAllBooks() error {
	books, err := m.svc.ListBooks()
	if err != nil {
		m.p.println(errorMessage(err))
		return nil
	}
	m.p.separator()
	if len(books) == 0 {
		m.p.println("No books found in the database.")
		return nil
	}
	for _, b := range books {
		m.p.println(formatBook(b))
	}
	return nil
}

func (m *Menu) showAvailableBooks() error {
	books, err := m.svc.ListAvailableBooks()
	if err != nil {
		m.p.println(errorMessage(err))
		return nil
	}
	m.p.separator()
	if len(books) == 0 {
		m.p.println("No book is currently available for lending.")
		return nil
	}
	for _, b := range books {
		m.p.println(formatBook(b))
	}
	return nil
}

func (m *Menu) showAllReaders() error {
	readers, err := m.svc.ListReaders()
	if err != nil {
		m.p.println(errorMessage(err))
		return nil
	}
	m.p.separator()
	if len(readers) == 0 {
		m.p.println("No readers found in the database.")
		return nil
	}
	for _, r := range readers {
		m.p.println(formatReader(r))
	}
	return nil
}

func (m *Menu) lendDialog() error {
	if err := m.showAvailableBooks(); err != nil {
		return err
	}
	bookID, err := m.p.readID("Find the ID of the book to lend in the list above and enter it: ")
	if err != nil {
		return err
	}
	if err := m.showAllReaders(); err != nil {
		return err
	}
	readerID, err := m.p.readID("Find the ID of the reader in the list above and enter it: ")
	if err != nil {
		return err
	}
	loan, err := m.svc.LendBook(bookID, readerID)
	if err != nil {
		m.p.println(errorMessage(err))
		return nil
	}
	m.p.printf("Loan created: %s\n", formatLoan(*loan))
	return nil
}

func (m *Menu) returnDialog() error {
	bookID, err := m.p.readID("Enter the ID of the book being returned: ")
	if err != nil {
		return err
	}

	useManual, err := m.p.askYesNo("Do you want to enter the return date manually instead of using today")
	if err != nil {
		return err
	}
	var returnDate *time.Time
	if useManual {
		date, err := m.p.readDate("Return date")
		if err != nil {
			return err
		}
		returnDate = &date
	}

	loan, err := m.svc.ReturnLoan(bookID, returnDate)
	if err != nil {
		m.p.println(errorMessage(err))
		return nil
	}
	m.p.printf("Loan returned: %s\n", formatLoan(*loan))
	return nil
}

func (m *Menu) deleteLoanDialog() error {
	loans, err := m.svc.ListLoans()
	if err != nil {
		m.p.println(errorMessage(err))
		return nil
	}
	if len(loans) == 0 {
		m.p.println("There are no loans stored in the database.")
		return nil
	}
	for _, l := range loans {
		m.p.println(formatLoan(l))
	}
	loanID, err := m.p.readID("Enter the ID of the loan to delete: ")
	if err != nil {
		return err
	}
	if err := m.svc.DeleteLoan(loanID); err != nil {
		m.p.println(errorMessage(err))
		return nil
	}
	m.p.printf("Loan %d deleted.\n", loanID)
	return nil
}

func (m *Menu) loanHistoryDialog() error {
	readerID, err := m.p.readID("Enter the ID of the reader: ")
	if err != nil {
		return err
	}
	history, err := m.svc.LoanHistory(readerID)
	if err != nil {
		m.p.println(errorMessage(err))
		return nil
	}
	m.p.separator()
	if len(history) == 0 {
		m.p.println("The loan history is empty.")
		return nil
	}
	for _, l := range history {
		m.p.println(formatLoan(l))
	}
	return nil
}

func (m *Menu) modifyLoanDialog() error {
	loans, err := m.svc.ListLoans()
	if err != nil {
		m.p.println(errorMessage(err))
		return nil
	}
	if len(loans) == 0 {
		m.p.println("There is nothing to modify in an empty table.")
		return nil
	}
	for _, l := range loans {
		m.p.println(formatLoan(l))
	}
	loanID, err := m.p.readID("Enter the ID of the loan to modify: ")
	if err != nil {
		return err
	}

	var edits library.LoanEdits
	if yes, err := m.p.askYesNo("Modify the ID of the loaned book?"); err != nil {
		return err
	} else if yes {
		id, err := m.p.readID("Enter the new book ID: ")
		if err != nil {
			return err
		}
		edits.BookID = &id
	}
	if yes, err := m.p.askYesNo("Modify the ID of the reader?"); err != nil {
		return err
	} else if yes {
		id, err := m.p.readID("Enter the new reader ID: ")
		if err != nil {
			return err
		}
		edits.ReaderID = &id
	}
	if yes, err := m.p.askYesNo("Modify the loan date?"); err != nil {
		return err
	} else if yes {
		date, err := m.p.readDate("New loan date")
		if err != nil {
			return err
		}
		edits.LoanDate = &date
	}
	if yes, err := m.p.askYesNo("Modify the return date?"); err != nil {
		return err
	} else if yes {
		date, err := m.p.readDate("New return date")
		if err != nil {
			return err
		}
		edits.ReturnDate = &date
	}

	loan, err := m.svc.ModifyLoan(loanID, edits)
	if err != nil {
		m.p.println(errorMessage(err))
		return nil
	}
	m.p.printf("Loan updated: %s\n", formatLoan(*loan))
	return nil
}

func (m *Menu) insertBookDialog() error {
	title, err := m.p.readLine("Title: ")
	if err != nil {
		return err
	}
	author, err := m.p.readLine("Author: ")
	if err != nil {
		return err
	}
	year, err := m.p.readInt("Publication year: ")
	if err != nil {
		return err
	}
	book, err := m.svc.InsertBook(title, author, year)
	if err != nil {
		m.p.println(errorMessage(err))
		return nil
	}
	m.p.printf("Book inserted: %s\n", formatBook(*book))
	return nil
}

func (m *Menu) modifyBookDialog() error {
	if err := m.showAllBooks(); err != nil {
		return err
	}
	bookID, err := m.p.readID("Enter the ID of the book to modify: ")
	if err != nil {
		return err
	}

	var edits library.BookEdits
	if yes, err := m.p.askYesNo("Modify the title?"); err != nil {
		return err
	} else if yes {
		title, err := m.p.readLine("New title: ")
		if err != nil {
			return err
		}
		edits.Title = &title
	}
	if yes, err := m.p.askYesNo("Modify the author?"); err != nil {
		return err
	} else if yes {
		author, err := m.p.readLine("New author: ")
		if err != nil {
			return err
		}
		edits.Author = &author
	}
	if yes, err := m.p.askYesNo("Modify the publication year?"); err != nil {
		return err
	} else if yes {
		year, err := m.p.readInt("New publication year: ")
		if err != nil {
			return err
		}
		edits.PublicationYear = &year
	}
	m.p.println("CAUTION: only change availability if you are certain; it can break loan bookkeeping.")
	if yes, err := m.p.askYesNo("Modify the availability?"); err != nil {
		return err
	} else if yes {
		available, err := m.p.askYesNo("Should the book be available?")
		if err != nil {
			return err
		}
		edits.Available = &available
	}

	book, err := m.svc.ModifyBook(bookID, edits)
	if err != nil {
		m.p.println(errorMessage(err))
		return nil
	}
	m.p.printf("Book updated: %s\n", formatBook(*book))
	return nil
}

func (m *Menu) deleteBookDialog() error {
	bookID, err := m.p.readID("Enter the ID of the book to delete: ")
	if err != nil {
		return err
	}
	if err := m.svc.DeleteBook(bookID); err != nil {
		m.p.println(errorMessage(err))
		return nil
	}
	m.p.printf("Book %d and its loan records deleted.\n", bookID)
	return nil
}

func (m *Menu) insertReaderDialog() error {
	name, err := m.p.readLine("Name: ")
	if err != nil {
		return err
	}
	surname, err := m.p.readLine("Surname: ")
	if err != nil {
		return err
	}
	email, err := m.p.readEmail("E-mail: ")
	if err != nil {
		return err
	}
	birthDate, err := m.p.readDate("Birth date")
	if err != nil {
		return err
	}
	reader, err := m.svc.InsertReader(name, surname, email, birthDate)
	if err != nil {
		m.p.println(errorMessage(err))
		return nil
	}
	m.p.printf("Reader inserted: %s\n", formatReader(*reader))
	return nil
}

func (m *Menu) modifyReaderDialog() error {
	if err := m.showAllReaders(); err != nil {
		return err
	}
	readerID, err := m.p.readID("Enter the ID of the reader to modify: ")
	if err != nil {
		return err
	}

	var edits library.ReaderEdits
	if yes, err := m.p.askYesNo("Modify the name?"); err != nil {
		return err
	} else if yes {
		name, err := m.p.readLine("New name: ")
		if err != nil {
			return err
		}
		edits.Name = &name
	}
	if yes, err := m.p.askYesNo("Modify the surname?"); err != nil {
		return err
	} else if yes {
		surname, err := m.p.readLine("New surname: ")
		if err != nil {
			return err
		}
		edits.Surname = &surname
	}
	if yes, err := m.p.askYesNo("Modify the e-mail?"); err != nil {
		return err
	} else if yes {
		email, err := m.p.readEmail("New e-mail: ")
		if err != nil {
			return err
		}
		edits.Email = &email
	}
	if yes, err := m.p.askYesNo("Modify the birth date?"); err != nil {
		return err
	} else if yes {
		date, err := m.p.readDate("New birth date")
		if err != nil {
			return err
		}
		edits.BirthDate = &date
	}

	reader, err := m.svc.ModifyReader(readerID, edits)
	if err != nil {
		m.p.println(errorMessage(err))
		return nil
	}
	m.p.printf("Reader updated: %s\n", formatReader(*reader))
	return nil
}

func (m *Menu) deleteReaderDialog() error {
	readerID, err := m.p.readID("Enter the ID of the reader to delete: ")
	if err != nil {
		return err
	}
	if err := m.svc.DeleteReader(readerID); err != nil {
		m.p.println(errorMessage(err))
		return nil
	}
	m.p.printf("Reader %d and their loan records deleted.\n", readerID)
	return nil
}

func (m *Menu) loanedBooksDialog() error {
	readerID, err := m.p.readID("Enter the ID of the reader: ")
	if err != nil {
		return err
	}
	reader, err := m.svc.GetReader(readerID)
	if err != nil {
		m.p.println(errorMessage(err))
		return nil
	}
	if reader == nil {
		m.p.printf("No reader found with ID: %d\n", readerID)
		return nil
	}
	books, err := m.svc.BooksCurrentlyLoanedTo(readerID)
	if err != nil {
		m.p.println(errorMessage(err))
		return nil
	}
	m.p.separator()
	m.p.printf("BOOKS LOANED TO %s %s\n", reader.Name, reader.Surname)
	if len(books) == 0 {
		m.p.println("No book is currently loaned to the selected reader.")
		return nil
	}
	for _, b := range books {
		m.p.println(formatBook(b))
	}
	return nil
}
