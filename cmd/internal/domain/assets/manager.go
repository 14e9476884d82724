package assets

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/labstack/gommon/log"
	"simpleguide/cmd/internal/domain/entity"
	"simpleguide/cmd/internal/utils"
)

// Storage is the object store holding subscriber images.
type Storage interface {
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// SubscriberLoader reads the persisted version of a subscriber.
type SubscriberLoader interface {
	FindByID(id int64) (*entity.Subscriber, error)
}

// Manager assigns canonical storage keys to subscriber images and removes
// files replaced by a new upload.
type Manager struct {
	Storage Storage
	Subs    SubscriberLoader
}

func NewManager(storage Storage, subs SubscriberLoader) *Manager {
	return &Manager{Storage: storage, Subs: subs}
}

// CanonicalKey is where an image of the company lives once placed.
func CanonicalKey(company *entity.Company, field string) string {
	return fmt.Sprintf("%s/%s-%s.jpg", company.ID, utils.Slugify(company.Razao), field)
}

// Place runs before a subscriber is written. For the given image field it:
//
//  1. does nothing when the field is empty;
//  2. for a persisted subscriber, deletes the previously stored file when the
//     value changed (a missing previous record stops here);
//  3. renames a bare file name (no directory part) to CanonicalKey.
//
// Storage failures are logged and never abort the write.
func (m *Manager) Place(ctx context.Context, sub *entity.Subscriber, company *entity.Company, field string) error {
	old, ok, err := m.previousKey(sub, field)
	if err != nil || !ok {
		return err
	}

	if old != "" {
		m.discard(ctx, old)
	}
	m.rename(sub, company, field)
	return nil
}

// PlaceAll runs Place for every image field of the subscriber.
func (m *Manager) PlaceAll(ctx context.Context, sub *entity.Subscriber, company *entity.Company) error {
	for _, field := range entity.ImageFields {
		if err := m.Place(ctx, sub, company, field); err != nil {
			return err
		}
	}
	return nil
}

// Stage is Place with the delete held back: it renames the field and returns
// the stored key the write would supersede, so the caller can discard it once
// the record is saved. A key the field keeps after renaming is not returned.
func (m *Manager) Stage(sub *entity.Subscriber, company *entity.Company, field string) (string, error) {
	old, ok, err := m.previousKey(sub, field)
	if err != nil || !ok {
		return "", err
	}

	m.rename(sub, company, field)
	if old == sub.ImageKey(field) {
		return "", nil
	}
	return old, nil
}

// StageAll runs Stage for every image field and collects the superseded keys.
func (m *Manager) StageAll(sub *entity.Subscriber, company *entity.Company) ([]string, error) {
	var superseded []string
	for _, field := range entity.ImageFields {
		old, err := m.Stage(sub, company, field)
		if err != nil {
			return nil, err
		}

		if old != "" {
			superseded = append(superseded, old)
		}
	}
	return superseded, nil
}

// previousKey returns the stored value of field when the persisted record
// holds a different, non-empty one. ok is false when there is nothing to do:
// an empty field, or a persisted identity whose record is gone.
func (m *Manager) previousKey(sub *entity.Subscriber, field string) (old string, ok bool, err error) {
	current := sub.ImageKey(field)
	if current == "" {
		return "", false, nil
	}

	if sub.ID == 0 {
		return "", true, nil
	}

	previous, err := m.Subs.FindByID(sub.ID)
	if err != nil {
		return "", false, fmt.Errorf("failed to load subscriber %d: %w", sub.ID, err)
	}

	if previous == nil {
		return "", false, nil
	}

	if old = previous.ImageKey(field); old != current {
		return old, true, nil
	}
	return "", true, nil
}

func (m *Manager) rename(sub *entity.Subscriber, company *entity.Company, field string) {
	if !hasDir(sub.ImageKey(field)) {
		sub.SetImageKey(field, CanonicalKey(company, field))
	}
}

// Discard removes a stored file, logging instead of failing.
func (m *Manager) Discard(ctx context.Context, key string) {
	if key == "" {
		return
	}
	m.discard(ctx, key)
}

func (m *Manager) discard(ctx context.Context, key string) {
	exists, err := m.Storage.Exists(ctx, key)
	if err != nil {
		log.Warnf("failed to check stored file %s: %v", key, err)
		return
	}

	if !exists {
		return
	}

	if err := m.Storage.Delete(ctx, key); err != nil {
		log.Warnf("failed to delete stored file %s: %v", key, err)
	}
}

func hasDir(key string) bool {
	dir := path.Dir(strings.ReplaceAll(key, "\\", "/"))
	return dir != "." && dir != "/"
}
