package storage_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/linemk/silkbloom/internal/domain/models"
	"github.com/linemk/silkbloom/internal/storage"
	"github.com/stretchr/testify/assert"
)

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	raw, err := json.Marshal(v)
	assert.NoError(t, err)
	return string(raw)
}

func TestListProducts_Success(t *testing.T) {
	// Создаем sqlmock для эмуляции хранилища.
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewProductRepository(storage.NewStore(db))
	ctx := context.Background()

	catalog := []*models.Product{
		{ID: "p1", Name: "Qirollik Atirguli", Price: 45000, Icon: "🌹", Description: "Klassik qizil atirgul, 50sm"},
		{ID: "p2", Name: "Bahor Lolasi", Price: 35000, Icon: "🌷", Description: "Yumshoq pushti lolalar, 5 dona"},
	}
	rows := sqlmock.NewRows([]string{"value"}).AddRow(mustJSON(t, catalog))
	mock.ExpectQuery("SELECT value FROM kv WHERE name = \\?").
		WithArgs(storage.CollectionProducts).WillReturnRows(rows)

	products, err := repo.ListProducts(ctx)
	assert.NoError(t, err)
	assert.Len(t, products, 2)
	// порядок хранения сохраняется
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, 45000, products[0].Price)
	assert.Equal(t, "p2", products[1].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListProducts_AbsentCollection(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewProductRepository(storage.NewStore(db))

	// Отсутствующая коллекция читается как пустая последовательность.
	rows := sqlmock.NewRows([]string{"value"})
	mock.ExpectQuery("SELECT value FROM kv WHERE name = \\?").
		WithArgs(storage.CollectionProducts).WillReturnRows(rows)

	products, err := repo.ListProducts(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, products)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListProducts_CorruptStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewProductRepository(storage.NewStore(db))

	// Испорченный JSON должен давать типизированную ошибку, а не панику.
	rows := sqlmock.NewRows([]string{"value"}).AddRow(`{"not":"a list"`)
	mock.ExpectQuery("SELECT value FROM kv WHERE name = \\?").
		WithArgs(storage.CollectionProducts).WillReturnRows(rows)

	products, err := repo.ListProducts(context.Background())
	assert.Nil(t, products)

	var corrupt *storage.CorruptStoreError
	assert.ErrorAs(t, err, &corrupt)
	assert.Equal(t, storage.CollectionProducts, corrupt.Collection)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListProducts_ShapeValidation(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewProductRepository(storage.NewStore(db))

	// Товар без идентификатора — тоже порча хранилища.
	rows := sqlmock.NewRows([]string{"value"}).AddRow(`[{"name":"no id","price":10}]`)
	mock.ExpectQuery("SELECT value FROM kv WHERE name = \\?").
		WithArgs(storage.CollectionProducts).WillReturnRows(rows)

	_, err = repo.ListProducts(context.Background())
	var corrupt *storage.CorruptStoreError
	assert.ErrorAs(t, err, &corrupt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProductByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewProductRepository(storage.NewStore(db))

	rows := sqlmock.NewRows([]string{"value"}).
		AddRow(mustJSON(t, []*models.Product{{ID: "p1", Name: "Qirollik Atirguli", Price: 45000}}))
	mock.ExpectQuery("SELECT value FROM kv WHERE name = \\?").
		WithArgs(storage.CollectionProducts).WillReturnRows(rows)

	product, err := repo.GetProductByID(context.Background(), "missing")
	assert.Nil(t, product)
	assert.ErrorIs(t, err, storage.ErrProductNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteProduct_RemovesExactlyOne(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewProductRepository(storage.NewStore(db))

	catalog := []*models.Product{
		{ID: "p1", Name: "Qirollik Atirguli", Price: 45000},
		{ID: "p2", Name: "Bahor Lolasi", Price: 35000},
	}
	rows := sqlmock.NewRows([]string{"value"}).AddRow(mustJSON(t, catalog))
	mock.ExpectQuery("SELECT value FROM kv WHERE name = \\?").
		WithArgs(storage.CollectionProducts).WillReturnRows(rows)

	// после удаления p1 перезаписывается коллекция только с p2
	kept := mustJSON(t, []*models.Product{catalog[1]})
	mock.ExpectExec("INSERT INTO kv").
		WithArgs(storage.CollectionProducts, kept).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.DeleteProduct(context.Background(), "p1")
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteProduct_NotFoundLeavesCatalogUntouched(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewProductRepository(storage.NewStore(db))

	rows := sqlmock.NewRows([]string{"value"}).
		AddRow(mustJSON(t, []*models.Product{{ID: "p1", Name: "Qirollik Atirguli", Price: 45000}}))
	mock.ExpectQuery("SELECT value FROM kv WHERE name = \\?").
		WithArgs(storage.CollectionProducts).WillReturnRows(rows)

	// записи не ожидаем: каталог не меняется
	err = repo.DeleteProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrProductNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSet_PersistError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	st := storage.NewStore(db)

	mock.ExpectExec("INSERT INTO kv").
		WithArgs("products", "[]").
		WillReturnError(errors.New("disk full"))

	err = st.Set(context.Background(), "products", []byte("[]"))

	var persist *storage.PersistError
	assert.ErrorAs(t, err, &persist)
	assert.Equal(t, "products", persist.Key)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByLogin_MatchesPhone(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(storage.NewStore(db))

	users := []*models.User{
		{Email: "admin@silkbloom.uz", Name: "Admin", Role: models.RoleAdmin, PassHash: []byte("hash")},
		{Email: "mijoz@example.com", Phone: "+998901234567", Name: "Mijoz", Role: models.RoleCustomer, PassHash: []byte("hash")},
	}
	rows := sqlmock.NewRows([]string{"value"}).AddRow(mustJSON(t, users))
	mock.ExpectQuery("SELECT value FROM kv WHERE name = \\?").
		WithArgs(storage.CollectionUsers).WillReturnRows(rows)

	user, err := repo.GetUserByLogin(context.Background(), "+998901234567")
	assert.NoError(t, err)
	assert.Equal(t, "mijoz@example.com", user.Email)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByLogin_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(storage.NewStore(db))

	rows := sqlmock.NewRows([]string{"value"}).AddRow("[]")
	mock.ExpectQuery("SELECT value FROM kv WHERE name = \\?").
		WithArgs(storage.CollectionUsers).WillReturnRows(rows)

	user, err := repo.GetUserByLogin(context.Background(), "nobody@example.com")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurrentUser_NoSession(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewSessionRepository(storage.NewStore(db))

	rows := sqlmock.NewRows([]string{"value"})
	mock.ExpectQuery("SELECT value FROM kv WHERE name = \\?").
		WithArgs(storage.KeyCurrentUser).WillReturnRows(rows)

	user, err := repo.CurrentUser(context.Background())
	assert.Nil(t, user)
	assert.ErrorIs(t, err, storage.ErrNoSession)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendOrder_WritesWholeCollection(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(storage.NewStore(db))

	existing := []*models.Order{}
	rows := sqlmock.NewRows([]string{"value"}).AddRow(mustJSON(t, existing))
	mock.ExpectQuery("SELECT value FROM kv WHERE name = \\?").
		WithArgs(storage.CollectionOrders).WillReturnRows(rows)

	order := &models.Order{
		ID:       "o-1",
		Customer: "Mijoz",
		Phone:    "+998901234567",
		Items:    []models.OrderItem{{Name: "Qirollik Atirguli", Quantity: 2, UnitPrice: 45000}},
		Total:    90000,
	}
	mock.ExpectExec("INSERT INTO kv").
		WithArgs(storage.CollectionOrders, mustJSON(t, []*models.Order{order})).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.AppendOrder(context.Background(), order)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
