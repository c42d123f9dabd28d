package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Big-jpg/swipehire/internal/feed"
	"github.com/Big-jpg/swipehire/internal/logger"
	"github.com/Big-jpg/swipehire/internal/models"
)

const (
	PromptLike         = "Like"
	PromptDislike      = "Dislike"
	PromptUndo         = "Undo last decision"
	PromptHistory      = "Show swipe history"
	PromptApplications = "Show applications"
	PromptExit         = "Exit"
)

var errExit = errors.New("exit requested")

var swipePrompt = promptui.Select{
	Label: "Your decision",
	Items: []string{PromptLike, PromptDislike, PromptUndo, PromptHistory, PromptApplications, PromptExit},
}

var swipeCmd = &cobra.Command{
	Use:   "swipe",
	Short: "Walk through the feed in the terminal",
	Run: func(cmd *cobra.Command, _ []string) {
		swipe(cmd)
	},
}

func init() {
	rootCmd.AddCommand(swipeCmd)

	swipeCmd.Flags().StringP("subject", "s", "", "external id of the user to swipe as")
	swipeCmd.MarkFlagRequired("subject")
}

func swipe(cmd *cobra.Command) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger, config := bootstrap()
	defer logger.Sync()

	st, err := openStore(ctx, config.Database, logger, config.Database.AutoMigrate)
	if err != nil {
		logger.Fatal("opening the database", zap.Error(err))
	}
	defer st.Close()

	svc, err := newFeed(ctx, config, st, logger)
	if err != nil {
		logger.Fatal("preparing the feed", zap.Error(err))
	}

	subject, _ := cmd.Flags().GetString("subject")
	user, err := st.EnsureUser(ctx, subject, "", "", "")
	if err != nil {
		logger.Fatal("ensuring the user", zap.Error(err))
	}

	out := cmd.OutOrStdout()
	for {
		next, err := svc.NextJob(ctx, user.ID)
		if err != nil {
			if errors.Is(err, feed.ErrProfileRequired) {
				logger.Info("exiting", zap.String("reason", "profile required"),
					zap.String("hint", "save a profile through PUT /api/profile first"))
				return
			}
			logger.Fatal("getting the next job", zap.Error(err))
		}

		if next.Exhausted() {
			logger.Info("no more jobs in the feed")
		} else {
			printCard(out, next)
		}

		_, action, err := swipePrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleSwipeAction(ctx, action, svc, user.ID, next, out, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleSwipeAction(ctx context.Context, action string, svc *feed.Service, userID uint, next *feed.NextResult, out io.Writer, log *zap.Logger) error {
	switch action {
	case PromptLike, PromptDislike:
		if next.Exhausted() {
			log.Info("nothing to decide on", zap.String("hint", "undo a decision or exit"))
			return nil
		}
		decision := models.DecisionDislike
		if action == PromptLike {
			decision = models.DecisionLike
		}
		res, err := svc.RecordDecision(ctx, userID, feed.DecisionInput{
			JobID:    next.Job.ID,
			Decision: decision,
			Verdict:  next.Verdict,
		})
		if err != nil {
			return err
		}
		fields := []zap.Field{logger.JobID(next.Job.ID), logger.SwipeID(res.SwipeID), zap.String("decision", string(decision))}
		if res.ApplicationID != nil {
			fields = append(fields, zap.Uint("application_id", *res.ApplicationID))
		}
		log.Info("decision recorded", fields...)
		return nil
	case PromptUndo:
		res, err := svc.UndoLastDecision(ctx, userID)
		if errors.Is(err, feed.ErrNothingToUndo) {
			log.Info("nothing to undo")
			return nil
		}
		if err != nil {
			return err
		}
		log.Info("decision undone", logger.SwipeID(res.SwipeID), zap.Int64("failed_applications", res.FailedApplications))
		return nil
	case PromptHistory:
		entries, err := svc.ListSwipeHistory(ctx, userID, nil)
		if err != nil {
			return err
		}
		return printJSON(out, entries)
	case PromptApplications:
		entries, err := svc.ListApplications(ctx, userID)
		if err != nil {
			return err
		}
		return printJSON(out, entries)
	case PromptExit:
		log.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func printCard(out io.Writer, next *feed.NextResult) {
	job := next.Job
	fmt.Fprintf(out, "\n%s @ %s\n", job.Title, job.CompanyName)
	if job.City != "" || job.Country != "" {
		fmt.Fprintf(out, "  location: %s %s\n", job.City, job.Country)
	}
	if job.WorkMode != nil {
		fmt.Fprintf(out, "  work mode: %s\n", *job.WorkMode)
	}
	if job.SalaryMin != nil || job.SalaryMax != nil {
		fmt.Fprintf(out, "  salary: %s %s - %s\n", job.Currency, intOrDash(job.SalaryMin), intOrDash(job.SalaryMax))
	}
	if job.Summary != "" {
		fmt.Fprintf(out, "  %s\n", job.Summary)
	}
	if next.Verdict != nil {
		mark := "not qualified"
		if next.Verdict.Qualified {
			mark = "qualified"
		}
		fmt.Fprintf(out, "  fit: %s (%s)\n", mark, next.Verdict.Reason)
	}
	fmt.Fprintln(out)
}

func intOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}

func printJSON(out io.Writer, v any) error {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(pretty))
	return err
}
