package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/creator-ledger/backend/internal/application/adapter"
	"github.com/creator-ledger/backend/internal/domain/entity"
	"github.com/creator-ledger/backend/internal/integration/persistence/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&model.UserModel{},
		&model.TransactionModel{},
		&model.ExpenseModel{},
		&model.PlatformConnectionModel{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()

	user := entity.NewUser(email, "Test Creator", "hash")
	if err := NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestTransactionRepositoryDateRange(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewTransactionRepository(db)
	user := seedUser(t, db, "range@example.com")

	for _, d := range []time.Time{
		day(2023, time.December, 31),
		day(2024, time.January, 1),
		day(2024, time.February, 14),
		day(2024, time.March, 31),
		day(2024, time.April, 1),
	} {
		txn := entity.NewTransaction(
			user.ID, entity.PlatformYouTube, "ad-revenue", "payout",
			decimal.RequireFromString("10"), decimal.RequireFromString("1"), d,
		)
		if err := repo.Create(ctx, txn); err != nil {
			t.Fatalf("failed to create transaction: %v", err)
		}
	}

	t.Run("range bounds are inclusive", func(t *testing.T) {
		transactions, err := repo.FindByUserAndDateRange(ctx, user.ID,
			day(2024, time.January, 1), day(2024, time.March, 31))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(transactions) != 3 {
			t.Errorf("expected 3 transactions inside the quarter, got %d", len(transactions))
		}
	})

	t.Run("totals cover only the range", func(t *testing.T) {
		totals, err := repo.GetTotals(ctx, user.ID,
			day(2024, time.January, 1), day(2024, time.March, 31))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !totals.TotalRevenue.Equal(decimal.RequireFromString("30")) {
			t.Errorf("total revenue: expected 30, got %s", totals.TotalRevenue)
		}
		if !totals.TotalFees.Equal(decimal.RequireFromString("3")) {
			t.Errorf("total fees: expected 3, got %s", totals.TotalFees)
		}
		if totals.TransactionCount != 3 {
			t.Errorf("transaction count: expected 3, got %d", totals.TransactionCount)
		}
	})

	t.Run("other users are not visible", func(t *testing.T) {
		other := seedUser(t, db, "other@example.com")
		transactions, err := repo.FindByUserAndDateRange(ctx, other.ID,
			day(2024, time.January, 1), day(2024, time.March, 31))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(transactions) != 0 {
			t.Errorf("expected no transactions for another user, got %d", len(transactions))
		}
	})
}

func TestExpenseRepositoryTotals(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewExpenseRepository(db)
	user := seedUser(t, db, "expenses@example.com")

	for _, amount := range []string{"12.50", "7.50"} {
		exp := entity.NewExpense(user.ID, "equipment", "gear",
			decimal.RequireFromString(amount), day(2024, time.February, 10))
		if err := repo.Create(ctx, exp); err != nil {
			t.Fatalf("failed to create expense: %v", err)
		}
	}

	totals, err := repo.GetTotals(ctx, user.ID,
		day(2024, time.January, 1), day(2024, time.March, 31))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !totals.TotalExpenses.Equal(decimal.RequireFromString("20")) {
		t.Errorf("total expenses: expected 20, got %s", totals.TotalExpenses)
	}
	if totals.ExpenseCount != 2 {
		t.Errorf("expense count: expected 2, got %d", totals.ExpenseCount)
	}
}

func TestLedgerQueryReadsBothTables(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "ledger@example.com")

	txnRepo := NewTransactionRepository(db)
	expRepo := NewExpenseRepository(db)

	txn := entity.NewTransaction(
		user.ID, entity.PlatformPatreon, "membership", "monthly pledge",
		decimal.RequireFromString("100"), decimal.RequireFromString("5"),
		day(2024, time.February, 1),
	)
	if err := txnRepo.Create(ctx, txn); err != nil {
		t.Fatalf("failed to create transaction: %v", err)
	}
	exp := entity.NewExpense(user.ID, "software", "editing suite",
		decimal.RequireFromString("30"), day(2024, time.February, 2))
	if err := expRepo.Create(ctx, exp); err != nil {
		t.Fatalf("failed to create expense: %v", err)
	}

	ledger := NewLedgerQuery(db)

	transactions, err := ledger.GetTransactions(ctx, user.ID,
		day(2024, time.January, 1), day(2024, time.March, 31))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(transactions))
	}

	expenses, err := ledger.GetExpenses(ctx, user.ID,
		day(2024, time.January, 1), day(2024, time.March, 31))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(expenses) != 1 {
		t.Fatalf("expected 1 expense, got %d", len(expenses))
	}
}

func TestUserDirectoryListsSubscribedUsers(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	seedUser(t, db, "a@example.com")
	seedUser(t, db, "b@example.com")
	optedOut := seedUser(t, db, "unsubscribed@example.com")

	err := db.Model(&model.UserModel{}).
		Where("id = ?", optedOut.ID).
		Update("email_notifications", false).Error
	if err != nil {
		t.Fatalf("failed to opt user out: %v", err)
	}

	var directory adapter.UserDirectory = NewUserDirectory(db)
	users, err := directory.ListUsers(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 subscribed users, got %d", len(users))
	}
	for _, u := range users {
		if u.Email == optedOut.Email {
			t.Errorf("opted-out user %s should not be in the directory", u.Email)
		}
	}
}

func TestPlatformConnectionUpsert(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewPlatformConnectionRepository(db)
	user := seedUser(t, db, "connections@example.com")

	conn := entity.NewPlatformConnection(user.ID, entity.PlatformTwitch)
	if err := repo.Upsert(ctx, conn); err != nil {
		t.Fatalf("failed to upsert connection: %v", err)
	}

	conn.MarkConnected()
	if err := repo.Upsert(ctx, conn); err != nil {
		t.Fatalf("failed to upsert connected state: %v", err)
	}

	connections, err := repo.FindByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(connections) != 1 {
		t.Fatalf("expected a single row after upsert, got %d", len(connections))
	}
	if connections[0].Status != entity.ConnectionStatusConnected {
		t.Errorf("expected connected status, got %s", connections[0].Status)
	}
}
