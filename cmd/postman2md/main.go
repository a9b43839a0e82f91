package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blackcoderx/postman2md/pkg/collection"
	"github.com/blackcoderx/postman2md/pkg/config"
	"github.com/blackcoderx/postman2md/pkg/convert"
	"github.com/blackcoderx/postman2md/pkg/render"
	"github.com/blackcoderx/postman2md/pkg/storage"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "postman2md <collection>",
	Short: "Generate Markdown API docs from a Postman collection",
	Long: `postman2md reads a Postman 2.1 collection and writes one Markdown page per
request into a "generated" directory next to the collection file.

Pages are named <resource>-<METHOD>.md and are overwritten on every run.
Settings are read from POSTMAN2MD_* environment variables, a .env file and an
optional .postman2md.yaml config file.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup(cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		res, outDir, err := generate(args[0], cfg, log)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), render.Summary(res, outDir))
		return nil
	},
}

// setup loads .env and the config and builds the logger.
func setup(logOut io.Writer) (*config.Config, *slog.Logger, error) {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(logOut, "Warning: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	log, err := cfg.NewLogger(logOut)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// outputDir returns the directory pages are written to for a collection path.
func outputDir(collectionPath string, cfg *config.Config) string {
	return filepath.Join(filepath.Dir(collectionPath), cfg.OutputDir)
}

func newConverter(w convert.ArtifactWriter, cfg *config.Config, log *slog.Logger) *convert.Converter {
	return convert.New(w, convert.Options{
		Extension:     cfg.Extension,
		WriteCombined: cfg.WriteCombined,
		CombinedName:  cfg.CombinedName,
		Logger:        log,
	})
}

// generate runs the full conversion of the collection at path.
func generate(path string, cfg *config.Config, log *slog.Logger) (*convert.Result, string, error) {
	coll, err := collection.FileLoader{}.Load(path)
	if err != nil {
		return nil, "", err
	}

	outDir := outputDir(path, cfg)
	res, err := newConverter(storage.NewDirWriter(outDir), cfg, log).Run(coll)
	if err != nil {
		return nil, "", err
	}
	return res, outDir, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, render.ErrorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
