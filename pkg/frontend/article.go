package frontend

import "sync"

// Article is the display surface a view is written to.
type Article interface {
	Update(title, content string)
}

// ArticleFunc adapts a function to Article.
type ArticleFunc func(title, content string)

// Update calls f.
func (f ArticleFunc) Update(title, content string) { f(title, content) }

// Memory keeps the last displayed view. Safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	title   string
	content string
	updates int
}

// Update replaces the displayed view.
func (m *Memory) Update(title, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.title = title
	m.content = content
	m.updates++
}

// Title returns the displayed title.
func (m *Memory) Title() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.title
}

// Content returns the displayed body.
func (m *Memory) Content() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.content
}

// Updates counts how many views were displayed.
func (m *Memory) Updates() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.updates
}
