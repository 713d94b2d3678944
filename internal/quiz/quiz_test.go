package quiz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studyos/internal/library"
	"github.com/abhisek/studyos/internal/llm"
	"github.com/abhisek/studyos/internal/logging"
)

const validQuiz = `{"questions":[
 {"question":"후부하를 증가시키는 요인은?","choices":["SVR 감소","대동맥 판막 협착증","승모판 역류증","저혈량증"],"answer_index":1,"explanation":"대동맥 판막 협착은 심실이 이겨내야 할 저항을 높인다."},
 {"question":"중복맥박패임이 의미하는 것은?","choices":["대동맥 판막 폐쇄","승모판 개방","심방 수축","등용적 이완 종료"],"answer_index":0,"explanation":"대동맥 판막이 닫히며 생긴다."},
 {"question":"CO를 구하는 식은?","choices":["SV + HR","SV x HR","SV / HR","HR - SV"],"answer_index":1,"explanation":"CO = SV x HR."}
]}`

func newTestGenerator(responses ...llm.MockResponse) (*Generator, *llm.MockProvider) {
	mock := llm.NewMockProvider(responses...)
	return NewGenerator(mock, DefaultConfig(), logging.Discard()), mock
}

func topicT1(t *testing.T) library.Topic {
	t.Helper()
	topic, err := library.DefaultCatalog().Get("t1")
	require.NoError(t, err)
	return topic
}

func TestGenerate(t *testing.T) {
	g, mock := newTestGenerator(llm.TextResponse(validQuiz))

	q, err := g.Generate(context.Background(), topicT1(t), library.ViewQuestions)
	require.NoError(t, err)

	assert.Equal(t, "t1", q.TopicID)
	assert.Equal(t, library.ViewQuestions, q.View)
	require.Len(t, q.Questions, QuestionCount)
	for _, question := range q.Questions {
		assert.Len(t, question.Choices, ChoiceCount)
		assert.NotEmpty(t, question.Explanation)
	}
	assert.Equal(t, "대동맥 판막 협착증", q.Questions[0].Choices[q.Questions[0].Answer])

	req, ok := mock.LastCall()
	require.True(t, ok)
	assert.Equal(t, QuizSchema, req.Schema)
	assert.Equal(t, systemPrompt, req.System)
	require.Len(t, req.Messages, 1)
	assert.Contains(t, req.Messages[0].Content, "[Context Material]")
	assert.Contains(t, req.Messages[0].Content, "전부하(Preload)")
	assert.Contains(t, req.Messages[0].Content, "심장, 순환기")
}

func TestGenerate_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"two questions", `{"questions":[{"question":"a","choices":["1","2","3","4"],"answer_index":0,"explanation":"x"},{"question":"b","choices":["1","2","3","4"],"answer_index":0,"explanation":"x"}]}`},
		{"three choices", `{"questions":[{"question":"a","choices":["1","2","3"],"answer_index":0,"explanation":"x"},{"question":"b","choices":["1","2","3","4"],"answer_index":0,"explanation":"x"},{"question":"c","choices":["1","2","3","4"],"answer_index":0,"explanation":"x"}]}`},
		{"answer out of range", `{"questions":[{"question":"a","choices":["1","2","3","4"],"answer_index":4,"explanation":"x"},{"question":"b","choices":["1","2","3","4"],"answer_index":0,"explanation":"x"},{"question":"c","choices":["1","2","3","4"],"answer_index":0,"explanation":"x"}]}`},
		{"not json", `퀴즈를 만들 수 없습니다`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGenerator(llm.TextResponse(tt.body))
			_, err := g.Generate(context.Background(), topicT1(t), library.ViewSummary)
			require.Error(t, err)
			var invalid *llm.ErrInvalidResponse
			assert.True(t, errors.As(err, &invalid), "got %T", err)
		})
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	g, _ := newTestGenerator(llm.ErrorResponse(&llm.ErrRateLimit{}))
	_, err := g.Generate(context.Background(), topicT1(t), library.ViewSummary)
	var rl *llm.ErrRateLimit
	assert.True(t, errors.As(err, &rl))
}

func TestGenerate_Purpose(t *testing.T) {
	var got string
	p := purposeProvider(func(ctx context.Context) { got = llm.PurposeFrom(ctx) })
	g := NewGenerator(p, DefaultConfig(), nil)
	g.Generate(context.Background(), topicT1(t), library.ViewSummary)
	assert.Equal(t, llm.PurposeQuiz, got)
}

type purposeProvider func(ctx context.Context)

func (p purposeProvider) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	p(ctx)
	return &llm.Response{Content: []byte(validQuiz)}, nil
}

func (purposeProvider) ModelID() string { return "purpose" }

func TestScore(t *testing.T) {
	q := &Quiz{Questions: []Question{{Answer: 1}, {Answer: 0}, {Answer: 3}}}
	assert.Equal(t, 3, q.Score([]int{1, 0, 3}))
	assert.Equal(t, 1, q.Score([]int{1, 2, 2}))
	assert.Equal(t, 1, q.Score([]int{1}))
	assert.Equal(t, 3, q.Score([]int{1, 0, 3, 0}), "extra answers are ignored")
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"A", 0, false},
		{"b", 1, false},
		{" D ", 3, false},
		{"1", 0, false},
		{"4", 3, false},
		{"E", 0, true},
		{"0", 0, true},
		{"5", 0, true},
		{"", 0, true},
		{"가", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseChoice(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "C", ChoiceLabel(2))
}
