package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/emploitools/offresemploi/pkg/poleemploi"
)

func referentielCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "referentiel <name>",
		Short: "Fetch a reference table (referentiel)",
		Long: "Fetches one of the reference tables the API publishes and prints\n" +
			"its code/label pairs in the order the service returns them.\n\n" +
			"Known referentiels: " + knownReferentiels(),
		Example: `  offres-emploi referentiel themes
  offres-emploi referentiel naturesContrats --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			entries, err := client.Referentiel(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(entries)
			}
			return printRefEntries(entries)
		},
	}
}

func knownReferentiels() string {
	return strings.Join(poleemploi.ValidReferentiels(), ", ")
}
