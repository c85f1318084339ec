// Package store provides the in-memory repositories backing the blog API.
// Data lives for the lifetime of the process; a restart clears all state.
package store

import (
	"strconv"
	"sync"
	"time"
)

// Post is a single blog post. IDs are sequential integers rendered as
// strings, assigned at creation and never reused.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CursorPage is one page of a cursor-paginated listing.
type CursorPage struct {
	Posts      []Post
	NextCursor string
	HasMore    bool
}

// PostStore is a mutex-guarded in-memory post repository. All reads return
// copies; the slice is never aliased outside the store.
type PostStore struct {
	mu     sync.Mutex
	posts  []Post
	nextID int64

	now func() time.Time
}

// NewPostStore creates an empty post store.
func NewPostStore() *PostStore {
	return &PostStore{
		nextID: 1,
		now:    time.Now,
	}
}

// Create allocates the next sequential id and appends a new post.
func (s *PostStore) Create(title, description string) Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	post := Post{
		ID:          strconv.FormatInt(s.nextID, 10),
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.nextID++
	s.posts = append(s.posts, post)

	return post
}

// GetByID returns the post with the given id, or false if it is unknown.
func (s *PostStore) GetByID(id string) (Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.posts {
		if p.ID == id {
			return p, true
		}
	}
	return Post{}, false
}

// Update mutates only the provided fields and refreshes UpdatedAt.
// Returns false without side effects if the id is unknown.
func (s *PostStore) Update(id string, title, description *string) (Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].ID != id {
			continue
		}
		if title != nil {
			s.posts[i].Title = *title
		}
		if description != nil {
			s.posts[i].Description = *description
		}
		s.posts[i].UpdatedAt = s.now().UTC()
		return s.posts[i], true
	}
	return Post{}, false
}

// Delete removes the post with the given id. Returns true if a post was
// removed.
func (s *PostStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return true
		}
	}
	return false
}

// List returns posts in insertion order. If page or limit is not positive
// the full set is returned; otherwise the slice for that page, clipped to
// bounds (an out-of-range page yields an empty slice, not an error).
func (s *PostStore) List(page, limit int) []Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	if page <= 0 || limit <= 0 {
		return append([]Post(nil), s.posts...)
	}

	offset := (page - 1) * limit
	if offset >= len(s.posts) {
		return []Post{}
	}

	end := offset + limit
	if end > len(s.posts) {
		end = len(s.posts)
	}
	return append([]Post(nil), s.posts[offset:end]...)
}

// ListByCursor returns up to limit posts after the post identified by
// cursor (exclusive). An empty or unmatched cursor restarts the scan from
// the head, which makes resumption robust to stale cursors. NextCursor is
// the id of the last returned post when more items remain.
func (s *PostStore) ListByCursor(cursor string, limit int) CursorPage {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := 0
	if cursor != "" {
		for i, p := range s.posts {
			if p.ID == cursor {
				start = i + 1
				break
			}
		}
	}

	end := start + limit
	if end > len(s.posts) {
		end = len(s.posts)
	}

	page := CursorPage{
		Posts:   append([]Post(nil), s.posts[start:end]...),
		HasMore: start+limit < len(s.posts),
	}
	if page.HasMore && len(page.Posts) > 0 {
		page.NextCursor = page.Posts[len(page.Posts)-1].ID
	}

	return page
}

// Count returns the number of stored posts.
func (s *PostStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.posts)
}
