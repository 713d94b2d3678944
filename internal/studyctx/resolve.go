// Package studyctx describes what the user is looking at, so the study aid
// can bias its answer toward the material on screen.
package studyctx

import (
	"fmt"

	"github.com/abhisek/studyos/internal/library"
)

var viewDescriptions = map[library.View]string{
	library.ViewSummary:   "핵심 요약",
	library.ViewDetail:    "교과서 상세 내용",
	library.ViewSlides:    "강의 슬라이드",
	library.ViewQuestions: "기출 문제",
}

// Resolve returns a short, non-empty description of view for topic. It is
// pure: no document content is read, only the attachment marker.
// Unknown views are described as the summary view.
func Resolve(view library.View, topic library.Topic) string {
	if !view.Valid() {
		view = library.ViewSummary
	}

	title := topic.Title
	if title == "" {
		title = topic.ID
	}

	if view == library.ViewDetail && topic.HasDocument() {
		return fmt.Sprintf("사용자가 '%s' 주제의 원본 문서(%s)를 보고 있습니다.", title, topic.Document.Name)
	}

	desc := fmt.Sprintf("'%s' 주제의 %s(%s) 화면", title, viewDescriptions[view], view.Label())
	if note := topic.Note(view); note != "" {
		desc += ": " + note
	}
	return desc
}
