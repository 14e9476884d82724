package assets

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"simpleguide/cmd/internal/domain/entity"
)

type memStorage struct {
	files     map[string][]byte
	deleted   []string
	deleteErr error
	existsErr error
}

func newMemStorage(keys ...string) *memStorage {
	s := &memStorage{files: map[string][]byte{}}
	for _, k := range keys {
		s.files[k] = []byte("x")
	}
	return s
}

func (m *memStorage) Put(_ context.Context, key string, data []byte) error {
	m.files[key] = data
	return nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, key)
	delete(m.files, key)
	return nil
}

func (m *memStorage) Exists(_ context.Context, key string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	_, ok := m.files[key]
	return ok, nil
}

type stubLoader struct {
	sub *entity.Subscriber
	err error
}

func (s *stubLoader) FindByID(int64) (*entity.Subscriber, error) {
	return s.sub, s.err
}

var company = &entity.Company{ID: "8b1e6a52-2f3c-4b8e-9a57-2c1d3f4e5a6b", Razao: "PADARIA SÃO JOÃO LTDA"}

const canonicalLogo = "8b1e6a52-2f3c-4b8e-9a57-2c1d3f4e5a6b/padaria-sao-joao-ltda-logo.jpg"

func TestPlaceEmptyFieldIsNoop(t *testing.T) {
	store := newMemStorage()
	m := NewManager(store, &stubLoader{err: errors.New("must not be called")})

	sub := &entity.Subscriber{ID: 1}
	require.NoError(t, m.Place(context.Background(), sub, company, entity.ImageLogo))
	assert.Empty(t, sub.Logo)
}

func TestPlaceRenamesNewUpload(t *testing.T) {
	m := NewManager(newMemStorage(), &stubLoader{})

	sub := &entity.Subscriber{Logo: "my logo.png"}
	require.NoError(t, m.Place(context.Background(), sub, company, entity.ImageLogo))
	assert.Equal(t, canonicalLogo, sub.Logo)
}

func TestPlaceKeepsKeysWithDirectory(t *testing.T) {
	m := NewManager(newMemStorage(), &stubLoader{})

	sub := &entity.Subscriber{Photo2: "legacy/some-photo.jpg"}
	require.NoError(t, m.Place(context.Background(), sub, company, entity.ImagePhoto2))
	assert.Equal(t, "legacy/some-photo.jpg", sub.Photo2)
}

func TestPlaceKeepsStaleSlugAfterRazaoChange(t *testing.T) {
	store := newMemStorage(canonicalLogo)
	m := NewManager(store, &stubLoader{sub: &entity.Subscriber{ID: 3, Logo: canonicalLogo}})

	renamed := &entity.Company{ID: company.ID, Razao: "PADARIA NOVA LTDA"}
	sub := &entity.Subscriber{ID: 3, Logo: canonicalLogo}
	require.NoError(t, m.Place(context.Background(), sub, renamed, entity.ImageLogo))

	assert.Equal(t, canonicalLogo, sub.Logo)
	assert.Empty(t, store.deleted)
}

func TestPlaceReplacesPreviousFile(t *testing.T) {
	old := "8b1e6a52-2f3c-4b8e-9a57-2c1d3f4e5a6b/old-razao-logo.jpg"
	store := newMemStorage(old)
	m := NewManager(store, &stubLoader{sub: &entity.Subscriber{ID: 7, Logo: old}})

	sub := &entity.Subscriber{ID: 7, Logo: "upload.jpg"}
	require.NoError(t, m.Place(context.Background(), sub, company, entity.ImageLogo))

	assert.Equal(t, []string{old}, store.deleted)
	assert.Equal(t, canonicalLogo, sub.Logo)
}

func TestPlaceUnchangedValueKeepsFile(t *testing.T) {
	store := newMemStorage(canonicalLogo)
	m := NewManager(store, &stubLoader{sub: &entity.Subscriber{ID: 7, Logo: canonicalLogo}})

	sub := &entity.Subscriber{ID: 7, Logo: canonicalLogo}
	require.NoError(t, m.Place(context.Background(), sub, company, entity.ImageLogo))

	assert.Empty(t, store.deleted)
	assert.Equal(t, canonicalLogo, sub.Logo)
}

func TestPlaceMissingPreviousRecordStops(t *testing.T) {
	m := NewManager(newMemStorage(), &stubLoader{})

	sub := &entity.Subscriber{ID: 99, Logo: "upload.jpg"}
	require.NoError(t, m.Place(context.Background(), sub, company, entity.ImageLogo))
	assert.Equal(t, "upload.jpg", sub.Logo)
}

func TestPlaceStorageFailuresDoNotFail(t *testing.T) {
	old := "dir/old.jpg"
	store := newMemStorage(old)
	store.deleteErr = errors.New("access denied")
	m := NewManager(store, &stubLoader{sub: &entity.Subscriber{ID: 7, Logo: old}})

	sub := &entity.Subscriber{ID: 7, Logo: "upload.jpg"}
	require.NoError(t, m.Place(context.Background(), sub, company, entity.ImageLogo))
	assert.Equal(t, canonicalLogo, sub.Logo)

	store.existsErr = errors.New("timeout")
	sub = &entity.Subscriber{ID: 7, Logo: "again.jpg"}
	require.NoError(t, m.Place(context.Background(), sub, company, entity.ImageLogo))
}

func TestPlaceSkipsDeleteWhenOldFileIsGone(t *testing.T) {
	store := newMemStorage()
	m := NewManager(store, &stubLoader{sub: &entity.Subscriber{ID: 7, Logo: "dir/gone.jpg"}})

	sub := &entity.Subscriber{ID: 7, Logo: "upload.jpg"}
	require.NoError(t, m.Place(context.Background(), sub, company, entity.ImageLogo))
	assert.Empty(t, store.deleted)
}

func TestPlaceLoaderError(t *testing.T) {
	m := NewManager(newMemStorage(), &stubLoader{err: errors.New("db down")})

	sub := &entity.Subscriber{ID: 7, Logo: "upload.jpg"}
	assert.Error(t, m.Place(context.Background(), sub, company, entity.ImageLogo))
}

func TestPlaceAll(t *testing.T) {
	m := NewManager(newMemStorage(), &stubLoader{})

	sub := &entity.Subscriber{Logo: "a.jpg", Photo1: "b.jpg", Photo4: "c.jpg"}
	require.NoError(t, m.PlaceAll(context.Background(), sub, company))

	assert.Equal(t, canonicalLogo, sub.Logo)
	assert.Equal(t, company.ID+"/padaria-sao-joao-ltda-photo1.jpg", sub.Photo1)
	assert.Empty(t, sub.Photo2)
	assert.Equal(t, company.ID+"/padaria-sao-joao-ltda-photo4.jpg", sub.Photo4)
}

func TestStageHoldsBackTheDelete(t *testing.T) {
	old := company.ID + "/old-razao-logo.jpg"
	store := newMemStorage(old)
	m := NewManager(store, &stubLoader{sub: &entity.Subscriber{ID: 7, Logo: old}})

	sub := &entity.Subscriber{ID: 7, Logo: "upload.jpg"}
	superseded, err := m.Stage(sub, company, entity.ImageLogo)
	require.NoError(t, err)

	assert.Equal(t, old, superseded)
	assert.Equal(t, canonicalLogo, sub.Logo)
	assert.Contains(t, store.files, old)
	assert.Empty(t, store.deleted)
}

func TestStageSameCanonicalKeyIsNotSuperseded(t *testing.T) {
	m := NewManager(newMemStorage(canonicalLogo), &stubLoader{sub: &entity.Subscriber{ID: 7, Logo: canonicalLogo}})

	sub := &entity.Subscriber{ID: 7, Logo: "upload.jpg"}
	superseded, err := m.Stage(sub, company, entity.ImageLogo)
	require.NoError(t, err)

	assert.Empty(t, superseded)
	assert.Equal(t, canonicalLogo, sub.Logo)
}

func TestStageAll(t *testing.T) {
	oldPhoto := "legacy/photo1.jpg"
	m := NewManager(newMemStorage(), &stubLoader{sub: &entity.Subscriber{ID: 7, Logo: canonicalLogo, Photo1: oldPhoto}})

	sub := &entity.Subscriber{ID: 7, Logo: "new-logo.jpg", Photo1: "new-photo.jpg"}
	superseded, err := m.StageAll(sub, company)
	require.NoError(t, err)

	assert.Equal(t, []string{oldPhoto}, superseded)
	assert.Equal(t, company.ID+"/padaria-sao-joao-ltda-photo1.jpg", sub.Photo1)

	_, err = NewManager(newMemStorage(), &stubLoader{err: errors.New("db down")}).StageAll(sub, company)
	assert.Error(t, err)
}
