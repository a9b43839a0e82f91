package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackcoderx/postman2md/pkg/collection"
	"github.com/blackcoderx/postman2md/pkg/storage"
	"github.com/blackcoderx/postman2md/pkg/tui"
)

func init() {
	rootCmd.AddCommand(browseCmd)
}

var browseCmd = &cobra.Command{
	Use:   "browse <collection|dir>",
	Short: "Browse documentation pages interactively",
	Long: `browse opens an interactive viewer over documentation pages.

Given a collection file, the pages are rendered in memory and nothing is
written. Given a directory, the pages already in it are shown.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup(cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		pages, err := loadBrowsePages(args[0], func(path string) (map[string]string, error) {
			coll, err := collection.FileLoader{}.Load(path)
			if err != nil {
				return nil, err
			}
			mem := storage.NewMemoryWriter()
			if _, err := newConverter(mem, cfg, log).Run(coll); err != nil {
				return nil, err
			}
			return mem.Pages(), nil
		}, cfg.Extension)
		if err != nil {
			return err
		}
		if len(pages) == 0 {
			return fmt.Errorf("no pages found in %s", args[0])
		}

		return tui.Run(pages)
	},
}

// loadBrowsePages reads pages from a directory, or generates them from a
// collection file with gen.
func loadBrowsePages(path string, gen func(string) (map[string]string, error), ext string) ([]tui.Page, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var pages map[string]string
	if info.IsDir() {
		pages, err = storage.ReadPages(path, ext)
	} else {
		pages, err = gen(path)
	}
	if err != nil {
		return nil, err
	}
	return tui.PagesFromMap(pages), nil
}
