// Package docs renders the imageclean command tree as Markdown pages and
// man pages.
package docs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// visibleCommands returns the documented children of cmd.
func visibleCommands(cmd *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, c := range cmd.Commands() {
		if !c.IsAvailableCommand() || c.IsAdditionalHelpTopicCommand() {
			continue
		}
		out = append(out, c)
	}
	return out
}

// baseName joins the command path with sep, e.g. "imageclean-config-init".
func baseName(cmd *cobra.Command, sep string) string {
	return strings.ReplaceAll(cmd.CommandPath(), " ", sep)
}

// walk renders cmd and every visible descendant into dir, one file each.
func walk(cmd *cobra.Command, dir string, name func(*cobra.Command) string, render func(*cobra.Command, *os.File) error) error {
	for _, c := range visibleCommands(cmd) {
		if err := walk(c, dir, name, render); err != nil {
			return err
		}
	}

	path := filepath.Join(dir, name(cmd))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := render(cmd, f); err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return nil
}
