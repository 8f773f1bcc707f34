package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"wiki-quiz/internal/app"
	"wiki-quiz/internal/config"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "generate <wikipedia-url>...",
	Short: "Generate and store quizzes for Wikipedia articles",
	Long: "Runs the same scrape, generate and store flow as POST /api/generate for each URL " +
		"and prints the stored quiz as JSON.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		timeout, _ := cmd.Flags().GetDuration("timeout")
		keepGoing, _ := cmd.Flags().GetBool("keep-going")

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := logger.Initialize(cfg.Logger); err != nil {
			return err
		}
		defer logger.Sync()

		ctx, stop := context.WithTimeout(cmd.Context(), timeout)
		defer stop()

		application, err := app.New(ctx, cfg)
		if err != nil {
			return err
		}
		defer application.Close()

		r := &runner{
			service:   application.QuizService,
			repo:      application.Repository,
			out:       cmd.OutOrStdout(),
			keepGoing: keepGoing,
		}
		return r.run(ctx, args)
	},
}

type runner struct {
	service   service.QuizService
	repo      domain.QuizRepository
	out       io.Writer
	keepGoing bool
}

// run generates a quiz for every url in order. With keepGoing a failure is
// logged and the remaining urls are still processed; the joined errors are
// returned at the end.
func (r *runner) run(ctx context.Context, urls []string) error {
	l := logger.Get()
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")

	var errs []error
	for _, raw := range urls {
		url := strings.TrimSpace(raw)

		replaced := false
		if existing, err := r.repo.GetByURL(ctx, url); err != nil {
			l.Warn("Could not look up existing quiz", zap.String("url", url), zap.Error(err))
		} else if existing != nil {
			replaced = true
		}

		quiz, err := r.service.GenerateQuiz(ctx, url)
		if err != nil {
			l.Error("Quiz generation failed", zap.String("url", url), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", url, err))
			if !r.keepGoing {
				break
			}
			continue
		}

		l.Info("Quiz stored",
			zap.String("url", url),
			zap.Int64("id", quiz.ID),
			zap.Int("questions", len(quiz.Quiz)),
			zap.Bool("replaced", replaced),
		)
		if err := encoder.Encode(quiz); err != nil {
			return fmt.Errorf("failed to write quiz: %w", err)
		}
	}
	return errors.Join(errs...)
}

func main() {
	rootCmd.Flags().Duration("timeout", 10*time.Minute, "Overall deadline for all generations")
	rootCmd.Flags().Bool("keep-going", false, "Continue with the remaining URLs after a failure")

	if err := rootCmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
