package cmd

import (
	"context"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyos/internal/app"
	"github.com/abhisek/studyos/internal/screens"
	"github.com/abhisek/studyos/internal/screens/dashboard"
	"github.com/abhisek/studyos/internal/screens/settings"
	"github.com/abhisek/studyos/internal/selfupdate"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Launch the study TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	runCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	s, err := openServices(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	skipSplash, _ := cmd.Flags().GetBool("no-splash")

	deps := screens.Deps{
		Catalog:       s.catalog,
		Conversations: s.newController(ctx),
		Weakness:      s.aid,
		Quiz:          s.quiz,
		Events:        s.store.LLMEvents(),
		Settings:      s.settingsEntries(cmd),
		Logger:        s.logger,
	}
	if s.llmErr == nil {
		deps.ModelName = s.provider.ModelID()
	}

	return app.Run(app.Options{
		Deps: deps,
		Notices: dashboard.Notices{
			LLMUnavailable: s.llmErr != nil,
			LatestVersion:  latestRelease(ctx, s),
		},
		SkipSplash: skipSplash,
	})
}

// latestRelease returns a newer release tag, or "" when there is none or
// the check fails. Development builds skip the check.
func latestRelease(ctx context.Context, s *services) string {
	if version == "(devel)" {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	res, err := selfupdate.NewChecker().Check(ctx, &selfupdate.CheckInput{Version: version})
	if err != nil {
		s.logger.Debug("update check failed", "error", err)
		return ""
	}
	if !res.UpdateAvailable {
		return ""
	}
	return res.LatestVersion
}

func (s *services) settingsEntries(cmd *cobra.Command) []settings.Entry {
	provider, model := "없음", "없음"
	if s.cfg.LLM != nil {
		provider = s.cfg.LLM.Provider
	}
	if s.llmErr == nil {
		model = s.provider.ModelID()
	}
	dbPath, _ := resolveDBPath(cmd)

	return []settings.Entry{
		{Label: "AI 제공자", Value: provider},
		{Label: "모델", Value: model},
		{Label: "데이터베이스", Value: dbPath},
		{Label: "로그 디렉터리", Value: s.cfg.LogDir},
		{Label: "로그 레벨", Value: s.cfg.LogLevel.String()},
		{Label: "텔레메트리", Value: strconv.FormatBool(s.cfg.Telemetry)},
		{Label: "환경", Value: s.cfg.Env},
		{Label: "버전", Value: version},
	}
}
