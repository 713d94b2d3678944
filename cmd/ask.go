package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyos/internal/conversation"
	"github.com/abhisek/studyos/internal/library"
	"github.com/abhisek/studyos/internal/studyctx"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>...",
	Short: "Ask the study assistant one question about a topic",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := askQuery(args)
		if err != nil {
			return err
		}
		topic, view, err := topicAndView(cmd)
		if err != nil {
			return err
		}
		s, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer s.Close()
		s.warnIfUnavailable()

		t, err := s.topic(topic)
		if err != nil {
			return err
		}
		reply := s.aid.Ask(cmd.Context(), studyctx.Resolve(view, t), query)
		fmt.Fprintln(cmd.OutOrStdout(), reply)
		return nil
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk with the study assistant about a topic",
	Long: `Start a line-based conversation about a topic. Commands:
  /view VIEW   switch the material (summary, detail, slides, questions)
  /quit        leave`,
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
		s.warnIfUnavailable()

		t, err := s.topic(topic)
		if err != nil {
			return err
		}
		sess := s.newController(cmd.Context()).Open(t)
		defer sess.Close()
		sess.SetView(view)

		return chatLoop(sess, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	for _, c := range []*cobra.Command{askCmd, chatCmd} {
		c.Flags().StringP("topic", "t", "t1", "Topic ID (see `studyos topics`)")
		c.Flags().StringP("view", "v", string(library.ViewSummary), "Material on screen: summary, detail, slides or questions")
	}
}

var errEmptyQuestion = errors.New("question is empty")

// askQuery joins the arguments into the trimmed query sent to the assistant.
func askQuery(args []string) (string, error) {
	q := strings.TrimSpace(strings.Join(args, " "))
	if q == "" {
		return "", errEmptyQuestion
	}
	return q, nil
}

func topicAndView(cmd *cobra.Command) (string, library.View, error) {
	topic, _ := cmd.Flags().GetString("topic")
	raw, _ := cmd.Flags().GetString("view")
	view, err := library.ParseView(raw)
	if err != nil {
		return "", "", err
	}
	return topic, view, nil
}

// chatLoop reads one question per line and prints the reply once it lands.
func chatLoop(sess *conversation.Session, in io.Reader, out io.Writer) error {
	t := sess.Topic()
	fmt.Fprintf(out, "%s · %s\n", t.Title, sess.View().Label())
	fmt.Fprintln(out, "질문을 입력하세요. /quit 으로 종료합니다.")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		fields := strings.Fields(line)
		switch {
		case line == "/quit" || line == "/exit":
			return nil
		case len(fields) > 0 && fields[0] == "/view":
			v, err := library.ParseView(strings.Join(fields[1:], " "))
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			sess.SetView(v)
			fmt.Fprintf(out, "보기: %s\n", v.Label())
			continue
		}

		if !sess.Submit(line) {
			continue
		}
		sess.Wait()

		msgs := sess.Messages()
		if last := msgs[len(msgs)-1]; last.Role == conversation.RoleAssistant {
			fmt.Fprintln(out, last.Text)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}
