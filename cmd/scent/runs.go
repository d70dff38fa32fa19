// SPDX-License-Identifier: MIT

package main

import (
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/scent/store"
)

func (a *app) runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect stored scoring runs",
		Long: `List and show runs persisted by 'score --store sqlite --store-path <db>'.
The store comes from the store section of the configuration or from the
flags below.`,
	}
	cmd.PersistentFlags().String("store", "", "memory|sqlite")
	cmd.PersistentFlags().String("store-path", "", "sqlite database path")

	list := &cobra.Command{
		Use:   "list",
		Short: "List runs, newest first",
		Args:  cobra.NoArgs,
		RunE:  a.runRunsList,
	}
	show := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run and, with --scores, its per-cell scores",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runRunsShow,
	}
	show.Flags().Bool("scores", false, "include per-cell scores")
	cmd.AddCommand(list, show)

	return cmd
}

func (a *app) runsStore(cmd *cobra.Command) (store.Store, error) {
	f := cmd.Flags()
	if f.Changed("store") {
		a.cfg.Store.Kind, _ = f.GetString("store")
	}
	if f.Changed("store-path") {
		a.cfg.Store.Path, _ = f.GetString("store-path")
	}
	if a.cfg.Store.Kind == "" {
		return nil, fail(ExitConfigError, "no store configured: set --store or store.kind")
	}
	if err := a.cfg.Validate(); err != nil {
		return nil, &exitError{code: ExitConfigError, err: err}
	}

	return a.openStore(cmd.Context())
}

type runView struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Source      string    `json:"source"`
	Fingerprint string    `json:"fingerprint"`
	Genes       int       `json:"genes"`
	Edges       int       `json:"edges"`
	Cells       int       `json:"cells"`
	BatchSize   int       `json:"batch_size"`
	Normalized  bool      `json:"normalized"`
	MaxEntropy  float64   `json:"max_entropy,omitempty"`
}

func viewOf(r store.Run) runView {
	return runView{
		ID: r.ID.String(), CreatedAt: r.CreatedAt, Source: r.Source, Fingerprint: r.Fingerprint,
		Genes: r.Genes, Edges: r.Edges, Cells: r.Cells, BatchSize: r.BatchSize,
		Normalized: r.Normalized, MaxEntropy: r.MaxEntropy,
	}
}

func (a *app) runRunsList(cmd *cobra.Command, _ []string) error {
	st, err := a.runsStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()
	runs, err := st.ListRuns(cmd.Context())
	if err != nil {
		return fail(ExitError, "store: %w", err)
	}

	if !a.human {
		views := make([]runView, len(runs))
		for i, r := range runs {
			views[i] = viewOf(r)
		}
		return a.printJSON(views)
	}
	if len(runs) == 0 {
		a.printf("No runs stored.\n")
		return nil
	}
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fprintf(tw, "ID\tCREATED\tCELLS\tGENES\tSOURCE\n")
	for _, r := range runs {
		fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, humanize.Time(r.CreatedAt),
			humanize.Comma(int64(r.Cells)), humanize.Comma(int64(r.Genes)), r.Source)
	}

	return tw.Flush()
}

func (a *app) runRunsShow(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fail(ExitConfigError, "run id %q: %w", args[0], err)
	}
	withScores, _ := cmd.Flags().GetBool("scores")
	st, err := a.runsStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	run, ok, err := st.GetRun(ctx, id)
	if err != nil {
		return fail(ExitError, "store: %w", err)
	}
	if !ok {
		return fail(ExitDataError, "run %s: %w", id, store.ErrRunNotFound)
	}
	var scores []store.CellScore
	if withScores {
		if scores, err = st.Scores(ctx, id); err != nil {
			return fail(ExitError, "store: %w", err)
		}
	}

	if !a.human {
		type scoreView struct {
			Cell  string  `json:"cell"`
			Score float64 `json:"sr"`
		}
		out := struct {
			runView
			Scores []scoreView `json:"scores,omitempty"`
		}{runView: viewOf(run)}
		for _, s := range scores {
			out.Scores = append(out.Scores, scoreView{s.Cell, s.Score})
		}
		return a.printJSON(out)
	}
	a.printf("Run:          %s\n", run.ID)
	a.printf("Created:      %s (%s)\n", run.CreatedAt.Format(time.RFC3339), humanize.Time(run.CreatedAt))
	a.printf("Source:       %s\n", run.Source)
	a.printf("Network:      %d genes, %d edges (%s)\n", run.Genes, run.Edges, run.Fingerprint)
	a.printf("Cells:        %s in batches of %d\n", humanize.Comma(int64(run.Cells)), run.BatchSize)
	if run.Normalized {
		a.printf("Normalized:   yes (max entropy %.6f)\n", run.MaxEntropy)
	} else {
		a.printf("Normalized:   no\n")
	}
	if withScores {
		tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
		fprintf(tw, "\nCELL\tSR\n")
		for _, s := range scores {
			fprintf(tw, "%s\t%.6f\n", s.Cell, s.Score)
		}
		return tw.Flush()
	}

	return nil
}
