package docs

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// GenMarkdownTree writes <command-path>.md for cmd and its subcommands.
func GenMarkdownTree(cmd *cobra.Command, dir string) error {
	return walk(cmd, dir, markdownFilename, func(c *cobra.Command, f *os.File) error {
		return GenMarkdown(c, f)
	})
}

func markdownFilename(cmd *cobra.Command) string {
	return baseName(cmd, "_") + ".md"
}

// GenMarkdown writes the Markdown page for a single command.
func GenMarkdown(cmd *cobra.Command, w io.Writer) error {
	cmd.InitDefaultHelpFlag()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "## %s\n\n", cmd.CommandPath())
	if cmd.Short != "" {
		buf.WriteString(cmd.Short + "\n\n")
	}

	if cmd.Runnable() {
		buf.WriteString("### Synopsis\n\n")
		if cmd.Long != "" {
			buf.WriteString(cmd.Long + "\n\n")
		}
		fmt.Fprintf(&buf, "```\n%s\n```\n\n", cmd.UseLine())
	}

	if cmd.Example != "" {
		fmt.Fprintf(&buf, "### Examples\n\n```\n%s\n```\n\n", cmd.Example)
	}

	if subs := visibleCommands(cmd); len(subs) > 0 {
		buf.WriteString("### Subcommands\n\n")
		for _, c := range subs {
			fmt.Fprintf(&buf, "* [%s](%s) - %s\n", c.CommandPath(), markdownFilename(c), c.Short)
		}
		buf.WriteString("\n")
	}

	if flags := cmd.NonInheritedFlags(); flags.HasAvailableFlags() {
		fmt.Fprintf(&buf, "### Options\n\n```\n%s```\n\n", flags.FlagUsages())
	}
	if flags := cmd.InheritedFlags(); flags.HasAvailableFlags() {
		fmt.Fprintf(&buf, "### Options inherited from parent commands\n\n```\n%s```\n\n", flags.FlagUsages())
	}

	if cmd.HasParent() {
		p := cmd.Parent()
		fmt.Fprintf(&buf, "### See also\n\n* [%s](%s) - %s\n", p.CommandPath(), markdownFilename(p), p.Short)
	}

	_, err := buf.WriteTo(w)
	return err
}
