package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"

	"fomezero/internal/config"
	"fomezero/internal/engine"
)

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type options struct {
	dataPath  string
	countries []string
	session   *engine.Session
}

// rows returns the selected slice of the session. Without --country every
// country is selected.
func (o *options) rows(cmd *cobra.Command) []engine.Record {
	if !cmd.Flags().Changed("country") {
		return o.session.Select(o.session.Countries)
	}
	return o.session.Select(o.countries)
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "report",
		Short:         "Restaurant dataset reports",
		Long:          "Loads the restaurant dataset, cleans and enriches it, and prints one view as JSON.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("data") {
				if err := config.LoadDotEnv(".env"); err != nil {
					return err
				}
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				opts.dataPath = cfg.DatasetPath
			}
			log.SetOutput(cmd.ErrOrStderr())

			s, err := engine.LoadSession(opts.dataPath, engine.DefaultLookups())
			if err != nil {
				return err
			}
			opts.session = s
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.dataPath, "data", "d", "dataset/zomato.csv", "Path to the dataset CSV")
	rootCmd.PersistentFlags().StringSliceVarP(&opts.countries, "country", "c", nil, "Countries to include (repeatable; default all)")

	rootCmd.AddCommand(
		viewCmd(opts, "overview", "Headline figures", func(rows []engine.Record) any {
			return engine.BuildOverview(rows)
		}),
		viewCmd(opts, "countries", "Per-country rankings", func(rows []engine.Record) any {
			return engine.BuildCountriesView(rows)
		}),
		viewCmd(opts, "cities", "Per-city rankings", func(rows []engine.Record) any {
			return engine.BuildCitiesView(rows)
		}),
		viewCmd(opts, "cuisines", "Cuisine rankings and featured best restaurants", func(rows []engine.Record) any {
			return engine.BuildCuisinesView(rows, engine.FeaturedCuisines)
		}),
		viewCmd(opts, "map", "Restaurant map markers", func(rows []engine.Record) any {
			return engine.MapPoints(rows)
		}),
		newBestCmd(opts),
		newTopCmd(opts),
	)

	return rootCmd
}

func viewCmd(opts *options, use, short string, build func([]engine.Record) any) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printJSON(cmd.OutOrStdout(), build(opts.rows(cmd)))
		},
	}
}

func newBestCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "best CUISINE",
		Short: "Best rated restaurant of a cuisine (N/A when there is none)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd.OutOrStdout(), engine.BestRestaurant(opts.rows(cmd), args[0]))
		},
	}
}

func newTopCmd(opts *options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Top restaurants by rating, then votes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printJSON(cmd.OutOrStdout(), engine.TopRestaurants(opts.rows(cmd), limit))
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of restaurants")
	return cmd
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
