package repository

import (
	"context"
	"regexp"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/records-service/internal/domain"
)

var listingRowColumns = []string{"oid", "doc"}

func TestListingRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO airbnb (oid, doc) VALUES ($1, $2::jsonb)`)).
		WithArgs("65a1f0c2e4b0a1b2c3d4e5f6", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = NewListingRepository(mock).Create(context.Background(), &domain.Listing{
		OID: "65a1f0c2e4b0a1b2c3d4e5f6", Name: "Loft", Price: "$120", Images: []string{},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingRepository_FindByAppID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT oid, doc FROM airbnb WHERE id = $1 ORDER BY oid LIMIT 1`)).
		WithArgs("1001").
		WillReturnRows(pgxmock.NewRows(listingRowColumns).
			AddRow("65a1f0c2e4b0a1b2c3d4e5f6", []byte(`{"_id":"65a1f0c2e4b0a1b2c3d4e5f6","id":"1001","NAME":"Loft","price":"$120"}`)))

	listing, err := NewListingRepository(mock).FindByAppID(context.Background(), "1001")
	require.NoError(t, err)
	assert.Equal(t, "65a1f0c2e4b0a1b2c3d4e5f6", listing.OID)
	assert.Equal(t, "1001", listing.ID)
	assert.Equal(t, "Loft", listing.Name)
	assert.NotNil(t, listing.Images)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingRepository_FindByOIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT oid, doc FROM airbnb WHERE oid = $1`)).
		WithArgs("65a1f0c2e4b0a1b2c3d4e5f6").
		WillReturnRows(pgxmock.NewRows(listingRowColumns))

	_, err = NewListingRepository(mock).FindByOID(context.Background(), "65a1f0c2e4b0a1b2c3d4e5f6")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestListingRepository_UpdateByAppID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE airbnb SET doc = doc || $2::jsonb WHERE oid = (SELECT oid FROM airbnb WHERE id = $1 ORDER BY oid LIMIT 1) RETURNING oid, doc`)).
		WithArgs("1001", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(listingRowColumns).
			AddRow("65a1f0c2e4b0a1b2c3d4e5f6", []byte(`{"id":"1001","NAME":"Loft","price":"$150","images":["a.jpg"]}`)))

	listing, err := NewListingRepository(mock).UpdateByAppID(context.Background(), "1001", map[string]any{"price": "$150"})
	require.NoError(t, err)
	assert.Equal(t, "$150", listing.Price)
	assert.Equal(t, []string{"a.jpg"}, listing.Images)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingRepository_DeleteByOIDMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM airbnb WHERE oid = $1 RETURNING oid, doc`)).
		WithArgs("65a1f0c2e4b0a1b2c3d4e5f6").
		WillReturnRows(pgxmock.NewRows(listingRowColumns))

	_, err = NewListingRepository(mock).DeleteByOID(context.Background(), "65a1f0c2e4b0a1b2c3d4e5f6")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestListingRepository_ListSortsByDocumentKey(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT oid, doc FROM airbnb ORDER BY doc->>'price' DESC, oid ASC LIMIT $1 OFFSET $2`)).
		WithArgs(10, 0).
		WillReturnRows(pgxmock.NewRows(listingRowColumns).
			AddRow("65a1f0c2e4b0a1b2c3d4e5f1", []byte(`{"NAME":"A","price":"300"}`)).
			AddRow("65a1f0c2e4b0a1b2c3d4e5f2", []byte(`{"NAME":"B","price":"200"}`)))

	listings, err := NewListingRepository(mock).List(context.Background(), ListingFilter{
		Sort:  []domain.SortField{{Field: "price", Desc: true}, {Field: "_id"}},
		Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "A", listings[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingRepository_ListRejectsUnknownSort(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	_, err = NewListingRepository(mock).List(context.Background(), ListingFilter{
		Sort:  []domain.SortField{{Field: "price'; --"}},
		Limit: 10,
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedSortField)
}

func TestListingRepository_Count(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM airbnb`)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))

	total, err := NewListingRepository(mock).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}
