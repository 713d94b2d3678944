// Package quiz generates three-question multiple-choice quizzes for a topic.
// Unlike the study aid, failures are returned as errors.
package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/abhisek/studyos/internal/library"
	"github.com/abhisek/studyos/internal/llm"
	"github.com/abhisek/studyos/internal/studyctx"
)

const systemPrompt = `당신은 의과대학 학습 조교 'Study OS AI'입니다.
제공된 학습 자료에 근거하여 객관식 문제 3개를 한국어로 출제하십시오.
각 문제는 보기 4개와 정답 하나, 짧은 해설을 가집니다.`

type Config struct {
	MaxTokens   int
	Temperature float64
}

func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.7,
	}
}

// Question is one multiple-choice item.
type Question struct {
	Text        string
	Choices     []string
	Answer      int // index into Choices
	Explanation string
}

// Correct reports whether choice (zero-based) is the answer.
func (q Question) Correct(choice int) bool {
	return choice == q.Answer
}

type Quiz struct {
	TopicID   string
	View      library.View
	Questions []Question
}

// Score counts correct answers; answers[i] is the choice for question i.
func (q *Quiz) Score(answers []int) int {
	score := 0
	for i, a := range answers {
		if i < len(q.Questions) && q.Questions[i].Correct(a) {
			score++
		}
	}
	return score
}

// Generator produces quizzes through an LLM provider.
type Generator struct {
	provider llm.Provider
	cfg      Config
	logger   *slog.Logger
}

func NewGenerator(provider llm.Provider, cfg Config, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{provider: provider, cfg: cfg, logger: logger}
}

type quizOutput struct {
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	Question    string   `json:"question"`
	Choices     []string `json:"choices"`
	AnswerIndex int      `json:"answer_index"`
	Explanation string   `json:"explanation"`
}

// Generate builds a quiz on the material shown in view of topic.
func (g *Generator) Generate(ctx context.Context, topic library.Topic, view library.View) (*Quiz, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuiz)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			llm.UserMessage(buildUserMessage(topic, view)),
		},
		Schema:      QuizSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("quiz generation: %w", err)
	}

	if err := llm.ValidateContent(QuizSchema, resp.Content); err != nil {
		return nil, err
	}

	var out quizOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse quiz response: %w", err)
	}

	quiz := &Quiz{TopicID: topic.ID, View: view}
	for _, q := range out.Questions {
		quiz.Questions = append(quiz.Questions, Question{
			Text:        strings.TrimSpace(q.Question),
			Choices:     q.Choices,
			Answer:      q.AnswerIndex,
			Explanation: strings.TrimSpace(q.Explanation),
		})
	}

	g.logger.DebugContext(ctx, "quiz generated", "topic_id", topic.ID, "questions", len(quiz.Questions))
	return quiz, nil
}

func buildUserMessage(topic library.Topic, view library.View) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[Context Material]:\n%s\n\n", studyctx.Resolve(view, topic))
	fmt.Fprintf(&b, "주제: %s\n과목: %s\n", topic.Title, topic.Subject)
	if len(topic.Tags) > 0 {
		fmt.Fprintf(&b, "키워드: %s\n", strings.Join(topic.Tags, ", "))
	}
	b.WriteString("\n이 자료를 바탕으로 객관식 문제 3개를 만들어 주세요.")
	return b.String()
}

// ChoiceLabel renders index i as A, B, C or D.
func ChoiceLabel(i int) string {
	return string(rune('A' + i))
}

// ParseChoice accepts a letter (A-D, any case) or a 1-based number and
// returns the zero-based index.
func ParseChoice(s string) (int, error) {
	s = strings.TrimSpace(s)
	if len(s) == 1 {
		c := strings.ToUpper(s)[0]
		if c >= 'A' && c < 'A'+ChoiceCount {
			return int(c - 'A'), nil
		}
	}
	n, err := strconv.Atoi(s)
	if err == nil && n >= 1 && n <= ChoiceCount {
		return n - 1, nil
	}
	return 0, fmt.Errorf("invalid choice %q: want A-D or 1-%d", s, ChoiceCount)
}
