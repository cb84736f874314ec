package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"github.com/spf13/cobra"
)

// Repo is the GitHub repository releases are fetched from.
const Repo = "Fepozopo/colorogram"

// ErrDevBuild is returned when the running binary has no release version.
var ErrDevBuild = errors.New("development build has no release version")

// updater abstracts the release lookup and the binary swap.
type updater struct {
	detect func(slug string) (*selfupdate.Release, bool, error)
	apply  func(assetURL, exe string) error
	exe    func() (string, error)
}

var githubUpdater = updater{
	detect: selfupdate.DetectLatest,
	apply:  selfupdate.UpdateTo,
	exe:    os.Executable,
}

// NewUpdateCmd checks GitHub for a newer release and replaces the running
// binary with it.
func NewUpdateCmd(ctx context.Context, version string) *cobra.Command {
	return newUpdateCmd(ctx, version, githubUpdater)
}

func newUpdateCmd(ctx context.Context, version string, u updater) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "update colorogram to the latest GitHub release",
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			return u.run(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), version, yes)
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "update without asking for confirmation")
	return cmd
}

func (u updater) run(ctx context.Context, in io.Reader, out io.Writer, version string, yes bool) error {
	current, err := parseVersion(version)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Current version: %s\n", current)

	latest, found, err := u.detect(Repo)
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}
	if !found || latest == nil {
		fmt.Fprintf(out, "No releases found for %s.\n", Repo)
		return nil
	}
	fmt.Fprintf(out, "Latest version: %s\n", latest.Version)

	if !needsUpdate(current, latest.Version) {
		fmt.Fprintf(out, "You are already running the latest version: %s.\n", current)
		return nil
	}
	if latest.AssetURL == "" {
		fmt.Fprintf(out, "A new version (%s) is available but there is no downloadable asset for this platform.\n", latest.Version)
		return nil
	}

	if !yes {
		ok, err := confirm(in, out, fmt.Sprintf("A new version (%s) is available. Update now? (y/N): ", latest.Version))
		if err != nil {
			return fmt.Errorf("failed reading input: %w", err)
		}
		if !ok {
			fmt.Fprintln(out, "Update cancelled.")
			return nil
		}
	}

	exe, err := u.exe()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}
	slog.InfoContext(ctx, "updating", "from", current.String(), "to", latest.Version.String(), "asset", latest.AssetURL)
	if err := u.apply(latest.AssetURL, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	fmt.Fprintf(out, "Updated to version %s.\n", latest.Version)
	return nil
}

// parseVersion accepts build versions with or without a leading "v".
func parseVersion(version string) (semver.Version, error) {
	if version == "" || version == "dev" {
		return semver.Version{}, ErrDevBuild
	}
	v, err := semver.ParseTolerant(version)
	if err != nil {
		return semver.Version{}, fmt.Errorf("could not parse current version %q: %w", version, err)
	}
	return v, nil
}

func needsUpdate(current, latest semver.Version) bool {
	return latest.GT(current)
}

// confirm prints prompt and reports whether the answer was y or yes.
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
