package books

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
	dbPath := "./test_books_" + t.Name() + ".db"

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

func TestRepository_Create(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	book := &entities.Book{Title: "Dune", Author: "Herbert", PublicationYear: 1965, Available: true}
	err := repo.Create(book)

	require.NoError(t, err)
	assert.NotZero(t, book.ID)
}

func TestRepository_GetByID(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	book := &entities.Book{Title: "Dune", Author: "Herbert", PublicationYear: 1965, Available: true}
	require.NoError(t, repo.Create(book))

	got, err := repo.GetByID(book.ID)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, book.ID, got.ID)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, "Herbert", got.Author)
	assert.Equal(t, 1965, got.PublicationYear)
	assert.True(t, got.Available)
}

func TestRepository_GetByID_Missing(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	got, err := repo.GetByID(999)

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepository_GetAll(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(&entities.Book{Title: "Dune", Author: "Herbert", Available: true}))
	require.NoError(t, repo.Create(&entities.Book{Title: "Solaris", Author: "Lem", Available: false}))

	books, err := repo.GetAll()

	require.NoError(t, err)
	assert.Len(t, books, 2)
}

func TestRepository_GetAvailable(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(&entities.Book{Title: "Dune", Author: "Herbert", Available: true}))
	require.NoError(t, repo.Create(&entities.Book{Title: "Solaris", Author: "Lem", Available: false}))

	books, err := repo.GetAvailable()

	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
}

func TestRepository_GetCurrentlyLoanedTo(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	out := &entities.Book{Title: "Dune", Author: "Herbert", Available: false}
	returned := &entities.Book{Title: "Solaris", Author: "Lem", Available: true}
	require.NoError(t, repo.Create(out))
	require.NoError(t, repo.Create(returned))

	reader := &entities.Reader{Name: "Ana", Surname: "Lopez", Email: "ana@x.com"}
	require.NoError(t, db.Create(reader).Error)

	returnedAt := time.Now()
	require.NoError(t, db.Create(&entities.Loan{BookID: out.ID, ReaderID: reader.ID, LoanDate: time.Now()}).Error)
	require.NoError(t, db.Create(&entities.Loan{BookID: returned.ID, ReaderID: reader.ID, LoanDate: time.Now(), ReturnDate: &returnedAt}).Error)

	books, err := repo.GetCurrentlyLoanedTo(reader.ID)

	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, out.ID, books[0].ID)
}

func TestRepository_Update(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	book := &entities.Book{Title: "Dune", Author: "Herbert", PublicationYear: 1965, Available: true}
	require.NoError(t, repo.Create(book))

	book.Title = "Dune Messiah"
	book.PublicationYear = 1969
	book.Available = false
	require.NoError(t, repo.Update(book))

	got, err := repo.GetByID(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", got.Title)
	assert.Equal(t, 1969, got.PublicationYear)
	assert.False(t, got.Available)
}

func TestRepository_Update_Missing(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.Update(&entities.Book{ID: 999, Title: "Ghost"})

	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	book := &entities.Book{Title: "Dune", Author: "Herbert", Available: true}
	require.NoError(t, repo.Create(book))

	require.NoError(t, repo.Delete(book.ID))

	got, err := repo.GetByID(book.ID)
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
