package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/abhisek/studyos/internal/library"
	"github.com/abhisek/studyos/internal/quiz"
)

var weaknessCmd = &cobra.Command{
	Use:   "weakness [topic]...",
	Short: "Summarize weak areas and suggest what to review",
	Long: `Ask the study assistant for a short analysis of weak topics. Without
arguments the subjects scoring below 50 on the dashboard are used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer s.Close()
		s.warnIfUnavailable()

		topics := args
		if len(topics) == 0 {
			topics = library.WeakSubjects()
		}
		fmt.Fprintf(cmd.OutOrStdout(), "분석 대상: %s\n\n", strings.Join(topics, ", "))
		fmt.Fprintln(cmd.OutOrStdout(), s.aid.SummarizeWeaknesses(cmd.Context(), topics))
		return nil
	},
}

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take a three-question quiz on a topic",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, view, err := topicAndView(cmd)
		if err != nil {
			return err
		}
		s, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		t, err := s.topic(topic)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s 퀴즈를 만드는 중...\n", t.Title)
		q, err := s.quiz.Generate(cmd.Context(), t, view)
		if err != nil {
			return fmt.Errorf("generate quiz: %w", err)
		}
		return runQuiz(cmd.Context(), q, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	quizCmd.Flags().StringP("topic", "t", "t1", "Topic ID (see `studyos topics`)")
	quizCmd.Flags().StringP("view", "v", string(library.ViewQuestions), "Material to draw questions from")

	topicsCmd.Flags().StringP("subject", "s", library.AllSubjects, "Only list topics of this subject")
	topicsCmd.Flags().StringP("search", "q", "", "Match titles and tags")
}

var errQuizAborted = errors.New("quiz aborted")

// runQuiz asks every question on out, reading answers from in, and prints
// the score. Invalid answers are asked again.
func runQuiz(ctx context.Context, q *quiz.Quiz, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	answers := make([]int, 0, len(q.Questions))

	for i, question := range q.Questions {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%d. %s\n", i+1, question.Text)
		for j, c := range question.Choices {
			fmt.Fprintf(out, "   %s) %s\n", quiz.ChoiceLabel(j), c)
		}

		var choice int
		for {
			fmt.Fprint(out, "답: ")
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("read answer: %w", err)
				}
				return errQuizAborted
			}
			c, err := quiz.ParseChoice(scanner.Text())
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			choice = c
			break
		}
		answers = append(answers, choice)

		if question.Correct(choice) {
			fmt.Fprintln(out, "정답!")
		} else {
			fmt.Fprintf(out, "오답. 정답은 %s\n", quiz.ChoiceLabel(question.Answer))
		}
		if question.Explanation != "" {
			fmt.Fprintln(out, question.Explanation)
		}
	}

	fmt.Fprintf(out, "\n%d / %d 정답\n", q.Score(answers), len(q.Questions))
	return nil
}

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the topic library",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		search, _ := cmd.Flags().GetString("search")

		catalog := library.DefaultCatalog()
		docFlags, _ := cmd.Flags().GetStringArray("doc")
		docs, err := parseDocFlags(docFlags)
		if err != nil {
			return err
		}
		for _, d := range docs {
			if _, err := catalog.AttachDocument(d.TopicID, d.Path); err != nil {
				return fmt.Errorf("attach document: %w", err)
			}
		}

		return printTopics(cmd.OutOrStdout(), catalog.Filter(subject, search))
	},
}

func printTopics(out io.Writer, topics []library.Topic) error {
	if len(topics) == 0 {
		fmt.Fprintln(out, "No topics found.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSubject\tTitle\tMastery\tLast studied\tDocument")
	for _, t := range topics {
		doc := "-"
		if t.HasDocument() {
			doc = fmt.Sprintf("%s (%s)", t.Document.Name, humanize.Bytes(uint64(t.Document.Size)))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d%%\t%s\t%s\n",
			t.ID, t.Subject, t.Title, t.Mastery, t.LastStudied, doc)
	}
	return tw.Flush()
}
