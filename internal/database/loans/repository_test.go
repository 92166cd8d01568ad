package loans

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mlorenzo/librarian/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB, func()) {
	dbPath := "./test_loans_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Book{},
		&entities.Reader{},
		&entities.Loan{},
	)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, db, cleanup
}

func seedBookAndReader(t *testing.T, db *gorm.DB) (*entities.Book, *entities.Reader) {
	book := &entities.Book{Title: "Dune", Author: "Herbert", PublicationYear: 1965, Available: true}
	require.NoError(t, db.Create(book).Error)
	reader := &entities.Reader{Name: "Ana", Surname: "Lopez", Email: "ana@x.com"}
	require.NoError(t, db.Create(reader).Error)
	return book, reader
}

func TestRepository_Create(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	book, reader := seedBookAndReader(t, db)

	loan := &entities.Loan{LoanDate: time.Now(), BookID: book.ID, ReaderID: reader.ID}
	err := repo.Create(loan)

	require.NoError(t, err)
	assert.NotZero(t, loan.ID)
	assert.Nil(t, loan.ReturnDate)
}

func TestRepository_GetByID(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	book, reader := seedBookAndReader(t, db)

	loan := &entities.Loan{LoanDate: time.Now(), BookID: book.ID, ReaderID: reader.ID}
	require.NoError(t, repo.Create(loan))

	got, err := repo.GetByID(loan.ID)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, book.ID, got.BookID)
	assert.Equal(t, reader.ID, got.ReaderID)
	assert.Equal(t, "Dune", got.Book.Title)
	assert.Equal(t, "Ana", got.Reader.Name)
}

func TestRepository_GetByID_Missing(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	got, err := repo.GetByID(123)

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepository_GetHistoryFor(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	book, reader := seedBookAndReader(t, db)

	other := &entities.Reader{Name: "Luis", Surname: "Perez", Email: "luis@x.com"}
	require.NoError(t, db.Create(other).Error)

	returnedAt := time.Now()
	require.NoError(t, repo.Create(&entities.Loan{LoanDate: time.Now(), BookID: book.ID, ReaderID: reader.ID, ReturnDate: &returnedAt}))
	require.NoError(t, repo.Create(&entities.Loan{LoanDate: time.Now(), BookID: book.ID, ReaderID: reader.ID}))
	require.NoError(t, repo.Create(&entities.Loan{LoanDate: time.Now(), BookID: book.ID, ReaderID: other.ID}))

	history, err := repo.GetHistoryFor(reader.ID)

	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestRepository_GetByBook(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	book, reader := seedBookAndReader(t, db)

	second := &entities.Book{Title: "Solaris", Author: "Lem", Available: true}
	require.NoError(t, db.Create(second).Error)

	returnedAt := time.Now()
	require.NoError(t, repo.Create(&entities.Loan{LoanDate: time.Now(), BookID: book.ID, ReaderID: reader.ID, ReturnDate: &returnedAt}))
	require.NoError(t, repo.Create(&entities.Loan{LoanDate: time.Now(), BookID: book.ID, ReaderID: reader.ID}))
	require.NoError(t, repo.Create(&entities.Loan{LoanDate: time.Now(), BookID: second.ID, ReaderID: reader.ID}))

	refs, err := repo.GetByBook(book.ID)

	require.NoError(t, err)
	assert.Len(t, refs, 2)
}

func TestRepository_GetOutstandingByBook(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	book, reader := seedBookAndReader(t, db)

	returnedAt := time.Now()
	require.NoError(t, repo.Create(&entities.Loan{LoanDate: time.Now(), BookID: book.ID, ReaderID: reader.ID, ReturnDate: &returnedAt}))
	open := &entities.Loan{LoanDate: time.Now(), BookID: book.ID, ReaderID: reader.ID}
	require.NoError(t, repo.Create(open))

	got, err := repo.GetOutstandingByBook(book.ID)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, open.ID, got.ID)
	assert.Nil(t, got.ReturnDate)
}

func TestRepository_GetOutstandingByBook_None(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	book, _ := seedBookAndReader(t, db)

	got, err := repo.GetOutstandingByBook(book.ID)

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepository_GetOutstandingByBook_Duplicate(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	book, reader := seedBookAndReader(t, db)

	// Two open loans for one book is a consistency violation; it must be
	// reported, not silently collapsed to one row.
	require.NoError(t, repo.Create(&entities.Loan{LoanDate: time.Now(), BookID: book.ID, ReaderID: reader.ID}))
	require.NoError(t, repo.Create(&entities.Loan{LoanDate: time.Now(), BookID: book.ID, ReaderID: reader.ID}))

	_, err := repo.GetOutstandingByBook(book.ID)

	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrConstraintViolation)
}

func TestRepository_Update(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	book, reader := seedBookAndReader(t, db)

	loan := &entities.Loan{LoanDate: time.Now(), BookID: book.ID, ReaderID: reader.ID}
	require.NoError(t, repo.Create(loan))

	returnedAt := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	loan.ReturnDate = &returnedAt
	require.NoError(t, repo.Update(loan))

	got, err := repo.GetByID(loan.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ReturnDate)
	assert.True(t, got.ReturnDate.Equal(returnedAt))
}

func TestRepository_Update_Missing(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.Update(&entities.Loan{ID: 999, LoanDate: time.Now()})

	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	book, reader := seedBookAndReader(t, db)

	loan := &entities.Loan{LoanDate: time.Now(), BookID: book.ID, ReaderID: reader.ID}
	require.NoError(t, repo.Create(loan))

	require.NoError(t, repo.Delete(loan.ID))

	got, err := repo.GetByID(loan.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepository_Delete_Missing(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.Delete(999)

	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}
