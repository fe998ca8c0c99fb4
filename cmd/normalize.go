package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <file>...",
		Short: "Collapse whitespace runs in source files in place",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				if err := requireFile(path); err != nil {
					return err
				}
			}
			for _, path := range args {
				if err := normalizeFile(path); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "normalized %s\n", path)
			}
			return nil
		},
	}
}

// normalizeFile rewrites path so every line is trimmed and inner whitespace
// runs become single spaces, one trailing newline per line.
func normalizeFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var out strings.Builder
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		out.WriteString(strings.Join(strings.Fields(line), " "))
		out.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(out.String()), info.Mode().Perm()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
