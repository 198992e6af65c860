package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emploitools/offresemploi/pkg/poleemploi"
)

func searchCmd() *cobra.Command {
	var (
		rangeParam  string
		departement string
		commune     string
		distance    string
		minCreation string
		maxCreation string
		sortParam   string
		extraParams []string
		showFilters bool
		fetchAll    bool
		maxPages    int
	)

	cmd := &cobra.Command{
		Use:   "search [keywords]",
		Short: "Search job offers by criteria",
		Long: "Searches the Offres d'emploi v2 API. Keywords map to the motsCles\n" +
			"parameter; any other API parameter can be passed with --param.",
		Example: `  offres-emploi search boulanger
  offres-emploi search "ouvrier agricole" --departement 33 --range 0-49
  offres-emploi search --param typeContrat=CDI --param qualification=9
  offres-emploi search boulanger --all --max-pages 4`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := poleemploi.SearchParams{}
			if len(args) == 1 {
				params["motsCles"] = args[0]
			}
			setIfNotEmpty(params, "range", rangeParam)
			setIfNotEmpty(params, "departement", departement)
			setIfNotEmpty(params, "commune", commune)
			setIfNotEmpty(params, "distance", distance)
			setIfNotEmpty(params, "minCreationDate", minCreation)
			setIfNotEmpty(params, "maxCreationDate", maxCreation)
			setIfNotEmpty(params, "sort", sortParam)

			for _, kv := range extraParams {
				k, v, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("invalid --param %q, want key=value", kv)
				}
				params[k] = v
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			if fetchAll {
				return runSearchAll(cmd, client, params, maxPages, showFilters)
			}
			return runSearch(cmd, client, params, showFilters)
		},
	}

	cmd.Flags().StringVar(&rangeParam, "range", "", `result window, e.g. "0-149"`)
	cmd.Flags().StringVar(&departement, "departement", "", "department code, e.g. 33")
	cmd.Flags().StringVar(&commune, "commune", "", "INSEE commune code")
	cmd.Flags().StringVar(&distance, "distance", "", "radius in km around the commune")
	cmd.Flags().StringVar(&minCreation, "min-creation-date", "", "ISO-8601 lower bound on creation date")
	cmd.Flags().StringVar(&maxCreation, "max-creation-date", "", "ISO-8601 upper bound on creation date")
	cmd.Flags().StringVar(&sortParam, "sort", "", "sort mode (0, 1 or 2)")
	cmd.Flags().StringArrayVar(&extraParams, "param", nil, "extra API parameter as key=value (repeatable)")
	cmd.Flags().BoolVar(&showFilters, "show-filters", false, "also print the filter aggregates")
	cmd.Flags().BoolVar(&fetchAll, "all", false, "paginate through all result windows")
	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "window cap when using --all")

	return cmd
}

func setIfNotEmpty(params poleemploi.SearchParams, key, value string) {
	if value != "" {
		params[key] = value
	}
}

func runSearch(
	cmd *cobra.Command,
	client *poleemploi.Client,
	params poleemploi.SearchParams,
	showFilters bool,
) error {
	res, err := client.Search(cmd.Context(), params)
	if err != nil {
		return err
	}

	if jsonOutput() {
		return outputJSON(res)
	}

	if err := printOffresTable(res.Resultats); err != nil {
		return err
	}
	fmt.Printf("\nShowing %d-%d of %d offers\n",
		res.ContentRange.FirstIndex,
		res.ContentRange.LastIndex,
		res.ContentRange.MaxResults,
	)

	if showFilters {
		fmt.Println()
		return printFilterRows(poleemploi.FlattenFilters(res.FiltresPossibles))
	}
	return nil
}

func runSearchAll(
	cmd *cobra.Command,
	client *poleemploi.Client,
	params poleemploi.SearchParams,
	maxPages int,
	showFilters bool,
) error {
	var opts []poleemploi.PaginatorOption
	if maxPages > 0 {
		opts = append(opts, poleemploi.WithMaxPages(maxPages))
	}
	p := poleemploi.NewPaginator(client, opts...)

	res, err := p.All(cmd.Context(), params)
	if err != nil {
		return err
	}

	if jsonOutput() {
		return outputJSON(res)
	}

	if err := printOffresTable(res.Offres); err != nil {
		return err
	}
	fmt.Printf("\nFetched %d of %d offers in %d windows (stopped: %s)\n",
		len(res.Offres),
		res.TotalAvailable,
		res.PagesUsed,
		res.StoppedAt,
	)

	if showFilters {
		fmt.Println()
		return printFilterRows(poleemploi.FlattenFilters(res.FiltresPossibles))
	}
	return nil
}
