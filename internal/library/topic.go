package library

import (
	"fmt"
	"slices"
	"time"
)

// View is one of the content tabs of the study view.
type View string

const (
	ViewSummary   View = "summary"
	ViewDetail    View = "detail"
	ViewSlides    View = "slides"
	ViewQuestions View = "questions"
)

// AllViews returns the views in tab order.
func AllViews() []View {
	return []View{ViewSummary, ViewDetail, ViewSlides, ViewQuestions}
}

// Label is the tab caption.
func (v View) Label() string {
	switch v {
	case ViewSummary:
		return "요약"
	case ViewDetail:
		return "상세"
	case ViewSlides:
		return "슬라이드"
	case ViewQuestions:
		return "문족(기출)"
	default:
		return string(v)
	}
}

func (v View) Valid() bool {
	return slices.Contains(AllViews(), v)
}

// Next cycles to the following tab, wrapping around.
func (v View) Next() View {
	views := AllViews()
	i := slices.Index(views, v)
	return views[(i+1)%len(views)]
}

// Prev cycles to the preceding tab, wrapping around.
func (v View) Prev() View {
	views := AllViews()
	i := slices.Index(views, v)
	if i <= 0 {
		return views[len(views)-1]
	}
	return views[i-1]
}

// ParseView accepts the view name or its tab label.
func ParseView(s string) (View, error) {
	for _, v := range AllViews() {
		if s == string(v) || s == v.Label() {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown view %q (want summary, detail, slides or questions)", s)
}

// Document is a PDF the user attached to a topic. Only the marker is used;
// the file is never read.
type Document struct {
	Name       string
	Path       string
	Size       int64
	AttachedAt time.Time
}

// Topic is one study card in the library.
type Topic struct {
	ID          string
	Title       string
	Subject     string
	Professor   string
	LastStudied string
	Mastery     int // 0-100
	Tags        []string

	// Notes holds the per-view excerpt shown in the study view.
	Notes map[View]string

	Document *Document
}

func (t Topic) HasDocument() bool {
	return t.Document != nil
}

// Note returns the excerpt for v, or "" when the topic has none.
func (t Topic) Note(v View) string {
	return t.Notes[v]
}

func (t Topic) clone() Topic {
	c := t
	c.Tags = slices.Clone(t.Tags)
	if t.Notes != nil {
		c.Notes = make(map[View]string, len(t.Notes))
		for k, v := range t.Notes {
			c.Notes[k] = v
		}
	}
	if t.Document != nil {
		d := *t.Document
		c.Document = &d
	}
	return c
}
