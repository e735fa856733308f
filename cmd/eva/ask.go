package main

import (
	"fmt"
	"strings"

	"github.com/junova144/Eva/models"

	"github.com/spf13/cobra"
)

func newAskCmd() *cobra.Command {
	var grade string
	var course string
	var sessionID string

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Validate a question and answer it with the matching subject agent",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := models.ParseCourse(course); err != nil {
				return fmt.Errorf("invalid --course: %w", err)
			}

			ctx := cmd.Context()
			eva := mustStart(ctx)
			defer eva.Close(ctx)

			answer := eva.Orchestrator.Process(ctx, models.Question{
				Text:      strings.Join(args, " "),
				Grade:     grade,
				Course:    course,
				SessionID: sessionID,
			})
			fmt.Fprintln(cmd.OutOrStdout(), answer)
			return nil
		},
	}
	cmd.Flags().StringVar(&grade, "grade", string(models.GradeFirst), "Student grade, e.g. \"3° Secundaria\"")
	cmd.Flags().StringVar(&course, "course", "", "Declared course, e.g. \"Matemática\"")
	cmd.Flags().StringVar(&sessionID, "session", "", "Session id to keep conversation memory between calls")
	cmd.MarkFlagRequired("course")
	return cmd
}
