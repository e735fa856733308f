package main

import (
	"fmt"

	"github.com/junova144/Eva/models"

	"github.com/spf13/cobra"
)

func newCoursesCmd() *cobra.Command {
	var grade string

	cmd := &cobra.Command{
		Use:   "courses",
		Short: "List courses and their syllabus summary per grade",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, entry := range models.Catalog() {
				if grade != "" && string(entry.Grade) != grade {
					continue
				}
				fmt.Fprintf(out, "%s · %s\n", entry.Grade, entry.Course)
				if entry.Description != "" {
					fmt.Fprintf(out, "  %s\n", entry.Description)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&grade, "grade", "", "Only list courses of this grade")
	return cmd
}
