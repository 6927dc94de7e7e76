// Command tombi-lsp starts the TOML language server over stdio,
// wired per SPEC_FULL.md §6. Flags follow the teacher pack's cobra
// convention (vippsas-sqlcode/cli/cmd).
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	glspserver "github.com/tliron/glsp/server"

	"github.com/maurice/tombi/lspserver"
	"github.com/maurice/tombi/schemastore"
)

var (
	schemaURL   string
	catalogURLs []string
	offline     bool
	cacheSize   int
)

func main() {
	root := &cobra.Command{
		Use:   "tombi-lsp",
		Short: "TOML language server: completion, hover, and schema validation over stdio",
		RunE:  run,
	}
	root.Flags().StringVar(&schemaURL, "schema", "", "root JSON Schema URL to validate documents against")
	root.Flags().StringSliceVar(&catalogURLs, "catalog", nil, "schema catalog URL(s) for fileMatch-based schema selection")
	root.Flags().BoolVar(&offline, "offline", false, "reject http(s) schema fetches")
	root.Flags().IntVar(&cacheSize, "cache-size", 256, "number of resolved schemas to keep cached")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log := logrus.StandardLogger()

	store, err := schemastore.NewStore(cacheSize)
	if err != nil {
		return err
	}
	if err := store.LoadConfig(schemastore.Config{
		RootSchemaURL: schemaURL,
		CatalogURLs:   catalogURLs,
		Offline:       offline,
	}); err != nil {
		log.WithError(err).Warn("failed to load schema catalog, continuing without it")
	}

	tombiServer := lspserver.NewServer(store, log)
	glspSrv := glspserver.NewServer(tombiServer.Handler(), "tombi-lsp", false)
	return glspSrv.RunStdio()
}
