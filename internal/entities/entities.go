package entities

import "time"

// Book is a single physical copy in the catalogue. Available is true iff
// no outstanding loan references the book.
type Book struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"index;size:512" json:"title"`
	Author          string    `gorm:"index;size:256" json:"author"`
	PublicationYear int       `json:"publication_year"`
	Available       bool      `json:"available"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Reader struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:256" json:"name"`
	Surname   string    `gorm:"size:256" json:"surname"`
	Email     string    `gorm:"index;size:255" json:"email"`
	BirthDate time.Time `json:"birth_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Loan links a book to the reader holding it. A nil ReturnDate means the
// loan is still outstanding.
type Loan struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	LoanDate   time.Time  `json:"loan_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	BookID     uint       `gorm:"index" json:"book_id"`
	Book       Book       `gorm:"foreignKey:BookID" json:"book,omitempty"`
	ReaderID   uint       `gorm:"index" json:"reader_id"`
	Reader     Reader     `gorm:"foreignKey:ReaderID" json:"reader,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Outstanding reports whether the loan has not been returned yet.
func (l Loan) Outstanding() bool {
	return l.ReturnDate == nil
}
