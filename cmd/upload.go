package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/101Room/berezin-dicts/internal/adapters/metadata/inifile"
	"github.com/101Room/berezin-dicts/internal/adapters/render/report"
	"github.com/101Room/berezin-dicts/internal/application"
	"github.com/101Room/berezin-dicts/internal/domain"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newUploadCmd(app *app) *cobra.Command {
	var filePaths []string
	var dirPath string
	var cookiePath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Create a dictionary on the remote site for each source file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			files, err := resolveSourceFiles(filePaths, dirPath)
			if err != nil {
				return err
			}
			if err := requireFile(cookiePath); err != nil {
				return err
			}

			return runUpload(cmd, app, files, cookiePath, asJSON)
		},
	}

	cmd.Flags().StringArrayVarP(&filePaths, "file", "f", nil, "Source file to upload (repeatable)")
	cmd.Flags().StringVarP(&dirPath, "dir", "d", "", "Upload every file in this directory")
	cmd.Flags().StringVarP(&cookiePath, "cookies", "c", "", "Netscape cookie-jar file of the authenticated session")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	_ = cmd.MarkFlagRequired("cookies")
	cmd.MarkFlagsMutuallyExclusive("file", "dir")

	return cmd
}

func runUpload(cmd *cobra.Command, app *app, files []string, cookiePath string, asJSON bool) error {
	logger := app.newLogger(cmd.ErrOrStderr())

	// The gateway is built before any network activity: a broken cookie jar
	// must fail the run with zero requests issued.
	gateway, err := app.newGateway(cookiePath)
	if err != nil {
		return err
	}

	pipeline := application.NewPipeline(gateway, app.metaStore, app.history, app.clock, logger, application.Config{
		FormURL:    app.formURL,
		Visibility: app.visibility,
		Kind:       app.kind,
		Strict:     app.strict,
	})

	var results []domain.UploadResult
	run := func(ctx context.Context) error {
		var runErr error
		results, runErr = pipeline.Run(ctx, files)
		return runErr
	}

	if asJSON || !isTerminal(cmd) {
		err = run(cmd.Context())
	} else {
		err = runUploadSpinner(cmd.Context(), cmd.ErrOrStderr(), run)
	}

	if writeErr := writeUploadOutput(cmd, results, asJSON); writeErr != nil {
		return writeErr
	}
	if err != nil {
		return err
	}

	return batchOutcome(results)
}

func writeUploadOutput(cmd *cobra.Command, results []domain.UploadResult, asJSON bool) error {
	if asJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), report.Render(results))
	return err
}

// batchOutcome keeps per-file failures non-fatal unless nothing succeeded.
func batchOutcome(results []domain.UploadResult) error {
	if len(results) == 0 {
		return nil
	}
	for _, result := range results {
		if result.Outcome == domain.OutcomeCreated {
			return nil
		}
	}
	return fmt.Errorf("all %d uploads failed", len(results))
}

// resolveSourceFiles checks every path before any network activity, and
// expands -d into the directory's regular files minus the descriptor.
func resolveSourceFiles(filePaths []string, dirPath string) ([]string, error) {
	if len(filePaths) == 0 && dirPath == "" {
		return nil, fmt.Errorf("one of --file or --dir is required")
	}

	if dirPath != "" {
		return listSourceDir(dirPath)
	}

	for _, path := range filePaths {
		if err := requireFile(path); err != nil {
			return nil, err
		}
	}
	return filePaths, nil
}

func listSourceDir(dirPath string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("read source directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == inifile.DescriptorFileName {
			continue
		}
		files = append(files, filepath.Join(dirPath, entry.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s holds no source files", dirPath)
	}
	sort.Strings(files)

	return files, nil
}

func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s not found", path)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

func isTerminal(cmd *cobra.Command) bool {
	file, ok := cmd.OutOrStdout().(*os.File)
	return ok && isatty.IsTerminal(file.Fd())
}
