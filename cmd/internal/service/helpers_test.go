package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"simpleguide/cmd/internal/contract"
	"simpleguide/cmd/internal/domain/database"
	"simpleguide/cmd/internal/domain/database/repository"
	"simpleguide/cmd/internal/domain/entity"
	cognitoclient "simpleguide/cmd/internal/infrastructure/aws/cognito"
	"simpleguide/cmd/internal/validators"
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

func newValidator() *validator.Validate {
	v := validator.New()
	validators.Register(v)
	return v
}

func seedUser(t *testing.T, db *gorm.DB, name string, perms entity.Permission) *entity.User {
	t.Helper()
	u := &entity.User{
		SubUUID:     "sub-" + name,
		Username:    name,
		Email:       name + "@example.com",
		Permissions: perms,
		Active:      true,
		CreatedAt:   testNow,
		UpdatedAt:   testNow,
	}
	require.NoError(t, repository.NewUserRepository(db).Create(u))
	return u
}

func seedCategory(t *testing.T, db *gorm.DB, owner *entity.User, name string) *entity.Category {
	t.Helper()
	c := &entity.Category{Name: name, UserID: owner.ID, Active: true, CreatedAt: testNow, UpdatedAt: testNow}
	require.NoError(t, repository.NewCategoryRepository(db).Create(c))
	return c
}

func seedCompany(t *testing.T, db *gorm.DB, owner *entity.User, cat *entity.Category, i int, name, state string) *entity.Company {
	t.Helper()
	c := &entity.Company{
		Name:        name,
		Razao:       fmt.Sprintf("%s %d LTDA", name, i),
		Document:    fmt.Sprintf("17808028%06d", i),
		Email:       "contact@example.com",
		Phone1:      fmt.Sprintf("(71)9888877%02d", i),
		State:       state,
		City:        "Salvador",
		Category1ID: cat.ID,
		UserID:      owner.ID,
		Active:      true,
		CreatedAt:   testNow,
		UpdatedAt:   testNow,
	}
	require.NoError(t, repository.NewCompanyRepository(db).Create(c))
	return c
}

func seedSubscriber(t *testing.T, db *gorm.DB, owner *entity.User, company *entity.Company, username string, active bool) *entity.Subscriber {
	t.Helper()
	s := &entity.Subscriber{
		CompanyID: company.ID,
		Username:  username,
		InCharge:  "Paula",
		Logo:      company.ID + "/seeded-logo.jpg",
		UserID:    owner.ID,
		Active:    active,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
	require.NoError(t, repository.NewSubscriberRepository(db).Create(s))
	return s
}

// memStorage is an in-memory assets.Storage.
type memStorage struct {
	mu      sync.Mutex
	files   map[string][]byte
	deleted []string
	putErr  error
}

func newMemStorage() *memStorage {
	return &memStorage{files: map[string][]byte{}}
}

func (m *memStorage) Put(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.files[key] = data
	return nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *memStorage) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[key]
	return ok, nil
}

func (m *memStorage) has(key string) bool {
	ok, _ := m.Exists(context.Background(), key)
	return ok
}

// fakeCognito records calls and returns canned results.
type fakeCognito struct {
	sub       string
	createErr error
	signInErr error
	created   []string
	deleted   []string
}

func (f *fakeCognito) SignIn(_ context.Context, user *cognitoclient.UserLogin) (*cognitoclient.AuthCreate, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return &cognitoclient.AuthCreate{AccessToken: "access-" + user.Email, IDToken: "id-" + user.Email}, nil
}

func (f *fakeCognito) AdminCreateUser(_ context.Context, user *cognitoclient.User) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, user.Email)
	return f.sub, nil
}

func (f *fakeCognito) AdminDeleteUser(_ context.Context, email string) error {
	f.deleted = append(f.deleted, email)
	return nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
		}
	}

	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func upload(t *testing.T, field string) *contract.ImageUpload {
	data := pngBytes(t, 32, 32)
	return &contract.ImageUpload{Field: field, Filename: field + ".png", Size: int64(len(data)), Data: data}
}

func ptr[T any](v T) *T {
	return &v
}
