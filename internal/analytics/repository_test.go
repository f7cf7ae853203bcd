package analytics

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	return db, mock
}

func TestGetSummary_AggregatesDashboardQueries(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	mock.ExpectQuery(`SELECT status, COUNT\(\*\) AS count FROM "bookings" GROUP BY`).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("CANCELLED", 1).
			AddRow("CONFIRMED", 4).
			AddRow("PENDING", 2))

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_price\), 0\) FROM "bookings" WHERE status =`).
		WithArgs("CONFIRMED").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(135992))

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(original_price - total_price\), 0\) FROM "bookings"`).
		WithArgs("CONFIRMED").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(6800))

	// The tally reads the usage_limit column; a zero limit surfaces as a
	// NULL max_uses.
	mock.ExpectQuery(`SELECT id, code, used_count, NULLIF\(usage_limit, 0\) AS max_uses, active FROM "coupons"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "used_count", "max_uses", "active"}).
			AddRow("0b844050-7f54-4af6-b9c1-5e2d8a7f3041", "SUNRISE15", 9, nil, true).
			AddRow("8d4f6a10-33ab-4a18-9d2e-0f5a3c1b7e42", "MONSOON10", 4, 100, true))

	mock.ExpectQuery(`SELECT agents\.id, agents\.name, agents\.total_commission, COUNT\(bookings\.id\) AS confirmed_bookings FROM "agents" LEFT JOIN bookings`).
		WithArgs("CONFIRMED").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "total_commission", "confirmed_bookings"}).
			AddRow("45e1c7b2-96d0-4c64-8f3a-2d9b1e0a6c58", "Sunrise Travels", 9600, 4))

	mock.ExpectQuery(`TO_CHAR\(DATE\(created_at\), 'YYYY-MM-DD'\) AS date`).
		WithArgs("CONFIRMED", 30).
		WillReturnRows(sqlmock.NewRows([]string{"date", "bookings", "revenue"}).
			AddRow("2026-08-29", 3, 67996).
			AddRow("2026-08-30", 4, 67996))

	summary, err := NewRepository(db).GetSummary(context.Background(), 30)
	require.NoError(t, err)

	assert.Equal(t, int64(7), summary.TotalBookings)
	assert.Equal(t, int64(135992), summary.ConfirmedRevenue)
	assert.Equal(t, int64(6800), summary.TotalDiscount)
	assert.Len(t, summary.BookingsByStatus, 3)

	require.Len(t, summary.CouponRedemptions, 2)
	assert.Equal(t, "SUNRISE15", summary.CouponRedemptions[0].Code)
	assert.Nil(t, summary.CouponRedemptions[0].MaxUses, "uncapped coupon has no max_uses")
	require.NotNil(t, summary.CouponRedemptions[1].MaxUses)
	assert.Equal(t, 100, *summary.CouponRedemptions[1].MaxUses)

	require.Len(t, summary.AgentCommissions, 1)
	assert.Equal(t, int64(9600), summary.AgentCommissions[0].TotalCommission)
	assert.Len(t, summary.DailyBookings, 2)

	assert.NoError(t, mock.ExpectationsWereMet())
}
