package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/learntrack/internal/release"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check whether a newer release is available",
	RunE: func(cmd *cobra.Command, args []string) error {
		checker := release.NewChecker(release.WithTimeout(30 * time.Second))

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		result, err := checker.Check(ctx, &release.CheckInput{Version: version})
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}

		if !result.UpdateAvailable {
			if result.CurrentVersion == "(devel)" {
				fmt.Println("Running a development build; latest release is", result.LatestVersion)
			} else {
				fmt.Println("Already running the latest version.")
			}
			return nil
		}

		fmt.Printf("Update available: %s → %s\n", result.CurrentVersion, result.LatestVersion)
		fmt.Println("Download:", result.ReleaseURL)
		return nil
	},
}
