package services

import (
	"context"
	"sync"
	"time"

	"blogapi/application/ports"
	"blogapi/domain/blog"
	"blogapi/infrastructure/cache"
)

// memPostRepository is an in-memory ports.PostRepository that counts
// FindByID calls so tests can observe whether reads hit the store.
type memPostRepository struct {
	mu          sync.Mutex
	posts       map[string]blog.Post
	findByIDHit int
	saveCalls   int
	failSave    error
}

func newMemPostRepository() *memPostRepository {
	return &memPostRepository{posts: make(map[string]blog.Post)}
}

func (r *memPostRepository) Save(ctx context.Context, post *blog.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saveCalls++
	if r.failSave != nil {
		return r.failSave
	}
	r.posts[post.ID] = *post
	return nil
}

func (r *memPostRepository) FindByID(ctx context.Context, id string) (*blog.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findByIDHit++
	post, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	return &post, nil
}

func (r *memPostRepository) FindAll(ctx context.Context) ([]*blog.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*blog.Post
	for id := range r.posts {
		post := r.posts[id]
		all = append(all, &post)
	}
	return all, nil
}

func (r *memPostRepository) Search(ctx context.Context, term string) ([]*blog.Post, error) {
	// Store-level matching is covered by the repository integration
	// tests; here search just exercises the delegation path.
	return r.FindAll(ctx)
}

func (r *memPostRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return false, nil
	}
	delete(r.posts, id)
	return true, nil
}

type memCategoryRepository struct {
	categories map[string]blog.Category
}

func newMemCategoryRepository(categories ...blog.Category) *memCategoryRepository {
	r := &memCategoryRepository{categories: make(map[string]blog.Category)}
	for _, c := range categories {
		r.categories[c.ID] = c
	}
	return r
}

func (r *memCategoryRepository) Save(ctx context.Context, category *blog.Category) error {
	r.categories[category.ID] = *category
	return nil
}

func (r *memCategoryRepository) FindByID(ctx context.Context, id string) (*blog.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	return &category, nil
}

func (r *memCategoryRepository) FindAll(ctx context.Context) ([]*blog.Category, error) {
	var all []*blog.Category
	for id := range r.categories {
		category := r.categories[id]
		all = append(all, &category)
	}
	return all, nil
}

type memTagRepository struct {
	tags map[string]blog.Tag
}

func newMemTagRepository(tags ...blog.Tag) *memTagRepository {
	r := &memTagRepository{tags: make(map[string]blog.Tag)}
	for _, tag := range tags {
		r.tags[tag.ID] = tag
	}
	return r
}

func (r *memTagRepository) Save(ctx context.Context, tag *blog.Tag) error {
	r.tags[tag.ID] = *tag
	return nil
}

func (r *memTagRepository) FindByIDs(ctx context.Context, ids []string) ([]blog.Tag, error) {
	var found []blog.Tag
	for _, id := range ids {
		if tag, ok := r.tags[id]; ok {
			found = append(found, tag)
		}
	}
	return found, nil
}

func (r *memTagRepository) FindAll(ctx context.Context) ([]blog.Tag, error) {
	var all []blog.Tag
	for _, tag := range r.tags {
		all = append(all, tag)
	}
	return all, nil
}

// memTxManager mimics the real transaction manager's hook semantics
// without a database: after-commit hooks run only when fn succeeds.
type memTxManager struct{}

func (memTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	txCtx := ports.WithAfterCommitHooks(ctx)
	if err := fn(txCtx); err != nil {
		return err
	}
	ports.RunAfterCommitHooks(txCtx)
	return nil
}

// memStore is an in-memory cache.Store.
type memStore struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{entries: make(map[string][]byte)}
}

func (s *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.entries[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return data, nil
}

func (s *memStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}

func (s *memStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *memStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
