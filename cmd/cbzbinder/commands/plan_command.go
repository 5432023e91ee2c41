package commands

import (
	"fmt"

	"github.com/danielkitchener/CBZBinder/internal/manga"
	"github.com/danielkitchener/CBZBinder/pkg/binder"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	command := &cobra.Command{
		Use:   "plan [folder]",
		Short: "Show which chapters go into which volume",
		Long:  "Show which chapters go into which volume.\nThe folder is scanned for chapter archives and every chapter is assigned to a volume from the given definitions. Nothing is written.",
		RunE:  PlanCommand,
		Args:  cobra.ExactArgs(1),
	}
	addSelectionFlags(command)

	AddCommand(command)
}

func PlanCommand(cmd *cobra.Command, args []string) error {
	options, err := buildOptions(cmd, args[0], true)
	if err != nil {
		return err
	}

	plan, err := binder.NewPlan(options)
	if err != nil {
		return err
	}
	log.Debug().Int("scanned", plan.Scanned).Int("assigned", plan.Chapters()).Msg("Plan built")

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderPlan(plan))
	if len(plan.Unassigned) > 0 {
		names := lo.Map(plan.Unassigned, func(file manga.ChapterFile, _ int) string {
			return fmt.Sprintf("%s (chapter %s)", file.Name, formatChapter(file.Number))
		})
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderTree([]treeItem{{
			label:    fmt.Sprintf("%d chapter(s) outside every volume", len(names)),
			children: lo.Map(names, func(name string, _ int) treeItem { return treeItem{label: name} }),
		}}))
	}
	return nil
}

func renderPlan(plan *binder.Plan) string {
	assigned := lo.SliceToMap(plan.Assignments, func(assignment manga.VolumeAssignment) (int, manga.VolumeAssignment) {
		return assignment.Volume, assignment
	})

	rows := lo.Map(plan.Ranges, func(r manga.VolumeRange, _ int) table.Row {
		assignment, ok := assigned[r.Volume]
		if !ok {
			return table.Row{fmt.Sprintf("%02d", r.Volume), formatRange(r), 0, "-", "-"}
		}
		return table.Row{
			fmt.Sprintf("%02d", r.Volume),
			formatRange(r),
			len(assignment.Files),
			assignment.Files[0].Name,
			assignment.Files[len(assignment.Files)-1].Name,
		}
	})

	return renderTable([]column{
		{title: "Volume", align: text.AlignRight},
		{title: "Chapters range", align: text.AlignLeft},
		{title: "Files", align: text.AlignRight},
		{title: "First", align: text.AlignLeft},
		{title: "Last", align: text.AlignLeft},
	}, rows)
}
