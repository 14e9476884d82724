package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"simpleguide/cmd/internal/domain/database"
	"simpleguide/cmd/internal/domain/entity"
)

const testNow = int64(1700000000000)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(database.Options{Driver: database.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB) *entity.User {
	t.Helper()
	u := &entity.User{
		SubUUID:   fmt.Sprintf("sub-%d", testNow),
		Username:  "owner",
		Email:     "owner@example.com",
		Active:    true,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
	require.NoError(t, NewUserRepository(db).Create(u))
	return u
}

func seedCategory(t *testing.T, db *gorm.DB, owner *entity.User, name string) *entity.Category {
	t.Helper()
	c := &entity.Category{Name: name, UserID: owner.ID, Active: true, CreatedAt: testNow, UpdatedAt: testNow}
	require.NoError(t, NewCategoryRepository(db).Create(c))
	return c
}

func newCompany(owner *entity.User, cat *entity.Category, i int, name, state string) *entity.Company {
	return &entity.Company{
		Name:        name,
		Razao:       fmt.Sprintf("%s %d LTDA", name, i),
		Document:    fmt.Sprintf("17808028%06d", i),
		Email:       "contact@example.com",
		Phone1:      fmt.Sprintf("(11)9888877%02d", i),
		State:       state,
		City:        "Salvador",
		Category1ID: cat.ID,
		UserID:      owner.ID,
		Active:      true,
		CreatedAt:   testNow,
		UpdatedAt:   testNow,
	}
}

func seedCompany(t *testing.T, db *gorm.DB, c *entity.Company) *entity.Company {
	t.Helper()
	require.NoError(t, NewCompanyRepository(db).Create(c))
	return c
}

func newSubscriber(owner *entity.User, company *entity.Company, username string, active bool) *entity.Subscriber {
	return &entity.Subscriber{
		CompanyID:    company.ID,
		Username:     username,
		InCharge:     "Paula",
		Description:  "A friendly business",
		OpeningHours: "08:00 - 18:00",
		Logo:         "logo.jpg",
		UserID:       owner.ID,
		Active:       active,
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	}
}

func seedSubscriber(t *testing.T, db *gorm.DB, s *entity.Subscriber) *entity.Subscriber {
	t.Helper()
	require.NoError(t, NewSubscriberRepository(db).Create(s))
	return s
}
