package library

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topicIDs(topics []Topic) []string {
	ids := make([]string, len(topics))
	for i, t := range topics {
		ids[i] = t.ID
	}
	return ids
}

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	all := c.All()
	require.Len(t, all, 5)
	assert.Equal(t, []string{"t1", "t2", "t3", "t4", "t5"}, topicIDs(all))

	t1, err := c.Get("t1")
	require.NoError(t, err)
	assert.Equal(t, "심박출량(Cardiac Output)의 기전", t1.Title)
	assert.Equal(t, 75, t1.Mastery)
	assert.NotEmpty(t, t1.Note(ViewSlides))
	assert.False(t, t1.HasDocument())

	_, err = c.Get("t9")
	assert.ErrorIs(t, err, ErrTopicNotFound)
}

func TestCatalog_Subjects(t *testing.T) {
	assert.Equal(t,
		[]string{AllSubjects, "생리학", "해부학", "약리학", "병리학"},
		DefaultCatalog().Subjects())
}

func TestCatalog_Filter(t *testing.T) {
	c := DefaultCatalog()

	tests := []struct {
		name    string
		subject string
		query   string
		want    []string
	}{
		{"everything", AllSubjects, "", []string{"t1", "t2", "t3", "t4", "t5"}},
		{"empty subject means all", "", "", []string{"t1", "t2", "t3", "t4", "t5"}},
		{"by subject", "생리학", "", []string{"t1", "t4"}},
		{"title match", AllSubjects, "GFR", []string{"t4"}},
		{"case insensitive", AllSubjects, "cardiac", []string{"t1"}},
		{"tag match", AllSubjects, "순환기", []string{"t1"}},
		{"subject and query", "해부학", "신경", []string{"t2"}},
		{"subject excludes match", "약리학", "신경", nil},
		{"no match", AllSubjects, "미생물", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Filter(tt.subject, tt.query)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, topicIDs(got))
		})
	}
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	c := DefaultCatalog()
	t1, err := c.Get("t1")
	require.NoError(t, err)

	t1.Tags[0] = "changed"
	t1.Notes[ViewSummary] = "changed"

	again, err := c.Get("t1")
	require.NoError(t, err)
	assert.Equal(t, "심장", again.Tags[0])
	assert.NotEqual(t, "changed", again.Note(ViewSummary))
}

func TestCatalog_AttachDocument(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "guyton.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4"), 0o644))

	c := DefaultCatalog()
	doc, err := c.AttachDocument("t1", pdf)
	require.NoError(t, err)
	assert.Equal(t, "guyton.pdf", doc.Name)
	assert.Equal(t, int64(8), doc.Size)

	t1, err := c.Get("t1")
	require.NoError(t, err)
	require.True(t, t1.HasDocument())
	assert.Equal(t, "guyton.pdf", t1.Document.Name)

	require.NoError(t, c.DetachDocument("t1"))
	t1, err = c.Get("t1")
	require.NoError(t, err)
	assert.False(t, t1.HasDocument())
}

func TestCatalog_AttachDocumentErrors(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0o644))
	pdf := filepath.Join(dir, "slides.PDF")
	require.NoError(t, os.WriteFile(pdf, []byte("x"), 0o644))
	folder := filepath.Join(dir, "folder.pdf")
	require.NoError(t, os.Mkdir(folder, 0o755))

	c := DefaultCatalog()

	_, err := c.AttachDocument("t1", txt)
	assert.ErrorIs(t, err, ErrNotPDF)

	_, err = c.AttachDocument("t1", filepath.Join(dir, "missing.pdf"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = c.AttachDocument("t1", folder)
	assert.ErrorIs(t, err, ErrNotPDF)

	_, err = c.AttachDocument("nope", pdf)
	assert.ErrorIs(t, err, ErrTopicNotFound)

	_, err = c.AttachDocument("t2", pdf)
	assert.NoError(t, err, "extension check is case-insensitive")

	assert.ErrorIs(t, c.DetachDocument("nope"), ErrTopicNotFound)
}

func TestView(t *testing.T) {
	v, err := ParseView("slides")
	require.NoError(t, err)
	assert.Equal(t, ViewSlides, v)

	v, err = ParseView("상세")
	require.NoError(t, err)
	assert.Equal(t, ViewDetail, v)

	_, err = ParseView("video")
	assert.Error(t, err)

	assert.Equal(t, ViewDetail, ViewSummary.Next())
	assert.Equal(t, ViewSummary, ViewQuestions.Next())
	assert.Equal(t, ViewQuestions, ViewSummary.Prev())
	assert.Equal(t, "문족(기출)", ViewQuestions.Label())
	assert.False(t, View("video").Valid())
}

func TestDashboardData(t *testing.T) {
	queue := ReviewQueue()
	require.Len(t, queue, 3)
	assert.Equal(t, PriorityHigh, queue[0].Priority)
	assert.Equal(t, "어제", queue[2].Due)

	assert.Equal(t, []string{"생리학", "병리학"}, WeakSubjects())
	assert.Len(t, SubjectScores(), 5)
}
