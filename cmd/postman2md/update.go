package main

import (
	"fmt"
	"os"

	"github.com/blang/semver"
	"github.com/charmbracelet/huh"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"github.com/spf13/cobra"
)

const repoSlug = "blackcoderx/postman2md"

var updateYes bool

func init() {
	updateCmd.Flags().BoolVarP(&updateYes, "yes", "y", false, "update without asking for confirmation")
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update postman2md to the latest release",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if version == "dev" {
			fmt.Fprintln(out, "You are running a development build of postman2md. Update is not supported.")
			return nil
		}

		current, err := semver.ParseTolerant(version)
		if err != nil {
			return fmt.Errorf("failed to parse current version %q: %w", version, err)
		}

		latest, found, err := selfupdate.DetectLatest(repoSlug)
		if err != nil {
			return fmt.Errorf("failed to detect latest release: %w", err)
		}
		if !found || latest.Version.LTE(current) {
			fmt.Fprintln(out, "Current version is the latest")
			return nil
		}

		if !updateYes {
			confirmed := false
			err := huh.NewConfirm().
				Title(fmt.Sprintf("Update from %s to %s?", current, latest.Version)).
				Affirmative("Update").
				Negative("Cancel").
				Value(&confirmed).
				Run()
			if err != nil {
				return fmt.Errorf("failed to read confirmation: %w", err)
			}
			if !confirmed {
				return nil
			}
		}

		exe, err := os.Executable()
		if err != nil {
			return fmt.Errorf("could not locate executable path: %w", err)
		}
		if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
			return fmt.Errorf("failed to update binary: %w", err)
		}
		fmt.Fprintln(out, "Successfully updated to version", latest.Version)
		return nil
	},
}
