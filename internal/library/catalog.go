package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

// AllSubjects is the subject filter that matches every topic.
const AllSubjects = "전체"

var (
	ErrTopicNotFound = errors.New("topic not found")
	ErrNotPDF        = errors.New("not a PDF file")
)

// Catalog is the in-memory topic library. Attached documents live here and
// outlive any study session that reads them.
type Catalog struct {
	mu     sync.RWMutex
	topics []Topic
	byID   map[string]int
}

func NewCatalog(topics ...Topic) *Catalog {
	c := &Catalog{byID: make(map[string]int, len(topics))}
	for _, t := range topics {
		c.byID[t.ID] = len(c.topics)
		c.topics = append(c.topics, t.clone())
	}
	return c
}

// All returns every topic in catalog order.
func (c *Catalog) All() []Topic {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Topic, len(c.topics))
	for i, t := range c.topics {
		out[i] = t.clone()
	}
	return out
}

func (c *Catalog) Get(id string) (Topic, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.byID[id]
	if !ok {
		return Topic{}, fmt.Errorf("%w: %s", ErrTopicNotFound, id)
	}
	return c.topics[i].clone(), nil
}

// Subjects returns AllSubjects followed by each distinct subject in order of
// first appearance.
func (c *Catalog) Subjects() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	subjects := []string{AllSubjects}
	for _, t := range c.topics {
		if !slices.Contains(subjects, t.Subject) {
			subjects = append(subjects, t.Subject)
		}
	}
	return subjects
}

// Filter returns topics in subject (AllSubjects or "" for any) whose title
// or one of whose tags contains query, case-insensitively.
func (c *Catalog) Filter(subject, query string) []Topic {
	c.mu.RLock()
	defer c.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	var out []Topic
	for _, t := range c.topics {
		if subject != "" && subject != AllSubjects && t.Subject != subject {
			continue
		}
		if q != "" && !matches(t, q) {
			continue
		}
		out = append(out, t.clone())
	}
	return out
}

func matches(t Topic, q string) bool {
	if strings.Contains(strings.ToLower(t.Title), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// AttachDocument marks path as the topic's original document. The path must
// name an existing regular file with a .pdf extension.
func (c *Catalog) AttachDocument(topicID, path string) (Document, error) {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return Document{}, fmt.Errorf("%w: %s", ErrNotPDF, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return Document{}, fmt.Errorf("attach %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return Document{}, fmt.Errorf("%w: %s is not a regular file", ErrNotPDF, path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	doc := Document{
		Name:       info.Name(),
		Path:       abs,
		Size:       info.Size(),
		AttachedAt: time.Now(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.byID[topicID]
	if !ok {
		return Document{}, fmt.Errorf("%w: %s", ErrTopicNotFound, topicID)
	}
	c.topics[i].Document = &doc
	return doc, nil
}

func (c *Catalog) DetachDocument(topicID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.byID[topicID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTopicNotFound, topicID)
	}
	c.topics[i].Document = nil
	return nil
}
