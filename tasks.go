package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio-guide/internal/catalog"
	"github.com/Zachkp/portfolio-guide/internal/chart"
	"github.com/Zachkp/portfolio-guide/internal/server"
	"github.com/Zachkp/portfolio-guide/internal/theme"
	"github.com/Zachkp/portfolio-guide/internal/viewmodel"
)

func newListCmd() *cobra.Command {
	var q server.PageQuery
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the projects for a filter, query and sort",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			projects := viewmodel.Apply(store.Projects(), q.Selection())

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCOMPLEXITY\tTIME\tDAYS\tTAGS")
			for _, p := range projects {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
					p.ID, p.Name, p.Complexity, p.Time, viewmodel.NormalizedDays(p.Time), strings.Join(p.Tags, ", "))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "no projects found")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&q.Filter, "filter", "All", "complexity level: All, Beginner, Intermediate or Advanced")
	cmd.Flags().StringVar(&q.Query, "query", "", "case-insensitive search over project names and tags")
	cmd.Flags().StringVar(&q.Sort, "sort", string(viewmodel.Recommended), "recommended, popular, recent or time")
	return cmd
}

func newChartCmd() *cobra.Command {
	var args struct {
		theme  string
		format string
		hide   string
		out    string
		labels bool
	}
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render the complexity vs. time chart to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			format := chart.ParseFormat(args.format)
			inst, err := chart.NewRenderer().Acquire(store.Projects(), chart.Options{
				Dark:   theme.Parse(args.theme).IsDark(),
				Hidden: server.ParseHidden(args.hide),
				Format: format,
				Labels: args.labels,
			})
			if err != nil {
				return fmt.Errorf("render chart: %w", err)
			}
			defer inst.Close()

			out := args.out
			if out == "" {
				out = "chart." + string(format)
			}
			if out == "-" {
				_, err = inst.WriteTo(cmd.OutOrStdout())
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if _, err := inst.WriteTo(f); err != nil {
				f.Close()
				return fmt.Errorf("write %s: %w", out, err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&args.theme, "theme", "light", "light or dark")
	cmd.Flags().StringVar(&args.format, "format", string(chart.SVG), "svg or png")
	cmd.Flags().StringVar(&args.hide, "hide", "", "comma-separated complexity levels to leave out")
	cmd.Flags().StringVar(&args.out, "out", "", "output file, - for stdout (default chart.<format>)")
	cmd.Flags().BoolVar(&args.labels, "labels", false, "annotate each point with its project name")
	return cmd
}

func newSeedCmd() *cobra.Command {
	var db string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the selected catalog into a sqlite file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := openCatalog(ctx)
			if err != nil {
				return err
			}
			conn, err := catalog.OpenSQLite(db)
			if err != nil {
				return err
			}
			defer conn.Close()

			snap := store.Snapshot()
			if err := catalog.SaveSQLite(ctx, conn, snap); err != nil {
				return fmt.Errorf("seed %s: %w", db, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %s: %d projects, %d skills, %d techniques\n",
				db, len(snap.Projects), len(snap.Skills), len(snap.Techniques))
			return nil
		},
	}
	cmd.Flags().StringVar(&db, "db", "catalog.db", "sqlite file to write")
	return cmd
}
