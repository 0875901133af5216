package docs

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cpuguy83/go-md2man/v2/md2man"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ManHeader is the metadata on a man page's title line.
type ManHeader struct {
	Section string
	Date    *time.Time
	Manual  string
}

func (h ManHeader) section() string {
	if h.Section == "" {
		return "1"
	}
	return h.Section
}

// GenManTree writes <command-path>.<section> for cmd and its subcommands.
func GenManTree(cmd *cobra.Command, dir string, header ManHeader) error {
	name := func(c *cobra.Command) string {
		return baseName(c, "-") + "." + header.section()
	}
	return walk(cmd, dir, name, func(c *cobra.Command, f *os.File) error {
		return GenMan(c, header, f)
	})
}

// GenMan renders the man page of a single command in roff.
func GenMan(cmd *cobra.Command, header ManHeader, w io.Writer) error {
	_, err := w.Write(md2man.Render(manMarkdown(cmd, header)))
	return err
}

// manMarkdown builds the md2man source: a pandoc-style title line followed by
// the conventional sections.
func manMarkdown(cmd *cobra.Command, header ManHeader) []byte {
	cmd.InitDefaultHelpFlag()

	var buf bytes.Buffer
	name := cmd.CommandPath()
	section := header.section()

	date := ""
	if header.Date != nil {
		date = header.Date.Format("Jan 2006")
	}
	fmt.Fprintf(&buf, "%% %s(%s) %s | %s\n\n", strings.ToUpper(baseName(cmd, "-")), section, date, header.Manual)

	buf.WriteString("# NAME\n")
	fmt.Fprintf(&buf, "%s \\- %s\n\n", name, cmd.Short)

	buf.WriteString("# SYNOPSIS\n")
	fmt.Fprintf(&buf, "**%s**", name)
	if cmd.NonInheritedFlags().HasAvailableFlags() {
		buf.WriteString(" [OPTIONS]")
	}
	if cmd.HasAvailableSubCommands() {
		buf.WriteString(" COMMAND")
	}
	buf.WriteString("\n\n")

	if cmd.Long != "" {
		fmt.Fprintf(&buf, "# DESCRIPTION\n%s\n\n", cmd.Long)
	}

	if subs := visibleCommands(cmd); len(subs) > 0 {
		buf.WriteString("# COMMANDS\n")
		for _, c := range subs {
			fmt.Fprintf(&buf, "**%s**\n: %s\n\n", c.Name(), c.Short)
		}
	}

	local, inherited := cmd.NonInheritedFlags(), cmd.InheritedFlags()
	if local.HasAvailableFlags() || inherited.HasAvailableFlags() {
		buf.WriteString("# OPTIONS\n")
		manFlags(&buf, local)
		manFlags(&buf, inherited)
	}

	if cmd.Example != "" {
		fmt.Fprintf(&buf, "# EXAMPLES\n```\n%s\n```\n\n", cmd.Example)
	}

	var related []string
	if cmd.HasParent() {
		related = append(related, fmt.Sprintf("**%s(%s)**", baseName(cmd.Parent(), "-"), section))
	}
	for _, c := range visibleCommands(cmd) {
		related = append(related, fmt.Sprintf("**%s(%s)**", baseName(c, "-"), section))
	}
	if len(related) > 0 {
		fmt.Fprintf(&buf, "# SEE ALSO\n%s\n", strings.Join(related, ", "))
	}

	return buf.Bytes()
}

// manFlags lists the visible flags of one set as a definition list.
func manFlags(buf *bytes.Buffer, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		if f.Shorthand != "" {
			fmt.Fprintf(buf, "**-%s**, **--%s**", f.Shorthand, f.Name)
		} else {
			fmt.Fprintf(buf, "**--%s**", f.Name)
		}
		if t := f.Value.Type(); t != "bool" {
			fmt.Fprintf(buf, " <%s>", t)
		}
		fmt.Fprintf(buf, "\n: %s", f.Usage)
		switch f.DefValue {
		case "", "false", "0", "[]":
		default:
			fmt.Fprintf(buf, " (default: %s)", f.DefValue)
		}
		buf.WriteString("\n\n")
	})
}
