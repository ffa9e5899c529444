package service

import (
	"context"
	"errors"

	"github.com/folioworks/folioworks/internal/content"
	"github.com/folioworks/folioworks/internal/content/repository"
	"github.com/folioworks/folioworks/pkg/logger"
	"github.com/folioworks/folioworks/pkg/metrics"
)

var (
	ErrUnknownSection = errors.New("unknown section")
)

// Service implements the reader and editor semantics for section documents
// on top of a Store. Readers get merged render models that silently degrade
// to defaults; editors get raw drafts and full-overwrite saves.
type Service struct {
	store repository.Store
}

func New(store repository.Store) *Service {
	return &Service{store: store}
}

// Resolve produces the public render model for a section: the section
// defaults overridden field-by-field by whatever the store holds. Absent
// documents and read failures both fall back to defaults; the public site
// never sees an error from here.
func (s *Service) Resolve(ctx context.Context, key string) (content.Document, error) {
	sec, ok := content.Lookup(key)
	if !ok {
		return nil, ErrUnknownSection
	}
	doc, err := s.store.Get(ctx, content.Collection, key)
	if err != nil && err != repository.ErrNotFound {
		logger.Warnf("content read for %q failed, serving defaults: %v", key, err)
		doc = nil
	}
	metrics.ContentReads.WithLabelValues(key).Inc()
	return content.Merge(sec.Defaults, doc, sec.ImageFields), nil
}

// Watch subscribes to a section and invokes fn with the merged render model
// immediately and after every save, until the returned function is called.
func (s *Service) Watch(ctx context.Context, key string, fn func(content.Document)) (func(), error) {
	sec, ok := content.Lookup(key)
	if !ok {
		return nil, ErrUnknownSection
	}
	unsub := s.store.Subscribe(ctx, content.Collection, key, func(doc content.Document) {
		fn(content.Merge(sec.Defaults, doc, sec.ImageFields))
	})
	return unsub, nil
}

// Draft returns the raw stored document for an editor to seed from, or the
// section defaults when nothing is stored or the read fails. The editor must
// stay usable even when the store is unreachable.
func (s *Service) Draft(ctx context.Context, key string) (content.Document, error) {
	sec, ok := content.Lookup(key)
	if !ok {
		return nil, ErrUnknownSection
	}
	doc, err := s.store.Get(ctx, content.Collection, key)
	if err != nil {
		if err != repository.ErrNotFound {
			logger.Warnf("draft read for %q failed, seeding defaults: %v", key, err)
		}
		return sec.DefaultDraft(), nil
	}
	return doc, nil
}

// Save overwrites the section document with the submitted draft in full.
// Last writer wins; there is no version check and no field merge.
func (s *Service) Save(ctx context.Context, key string, draft content.Document) error {
	if _, ok := content.Lookup(key); !ok {
		return ErrUnknownSection
	}
	if err := s.store.Set(ctx, content.Collection, key, draft); err != nil {
		metrics.ContentSaves.WithLabelValues(key, "error").Inc()
		return err
	}
	metrics.ContentSaves.WithLabelValues(key, "ok").Inc()
	return nil
}

// AppendItem returns draft with a new placeholder entry (and a fresh unique
// id) appended to its list; nothing is persisted until the draft is saved.
func (s *Service) AppendItem(key string, draft content.Document) (content.Document, error) {
	sec, ok := content.Lookup(key)
	if !ok {
		return nil, ErrUnknownSection
	}
	if !sec.HasItems {
		return nil, ErrUnknownSection
	}
	return content.AppendItem(sec, draft), nil
}

// RemoveItem returns draft with the entry at index removed; persisted only
// on the next save.
func (s *Service) RemoveItem(key string, draft content.Document, index int) (content.Document, error) {
	sec, ok := content.Lookup(key)
	if !ok || !sec.HasItems {
		return nil, ErrUnknownSection
	}
	return content.RemoveItem(draft, index), nil
}
