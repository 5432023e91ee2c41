package commands

import (
	"fmt"

	"github.com/danielkitchener/CBZBinder/internal/volume"
	"github.com/danielkitchener/CBZBinder/pkg/binder"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	command := &cobra.Command{
		Use:   "preview [folder] [volume] [start chapter]",
		Short: "List the pages a volume would contain",
		Long:  "List the pages a volume would contain.\nThe volume starts at the given chapter and ends where the next volume given with --volume or --generate starts, or at --stop. Nothing is written.",
		RunE:  PreviewCommand,
		Args:  cobra.ExactArgs(3),
	}
	addSelectionFlags(command)

	AddCommand(command)
}

func PreviewCommand(cmd *cobra.Command, args []string) error {
	target, err := volume.ParseDefinition(fmt.Sprintf("%s:%s", args[1], args[2]))
	if err != nil {
		return err
	}

	options, err := buildOptions(cmd, args[0], false)
	if err != nil {
		return err
	}

	preview, err := binder.Preview(options, target.Volume, target.StartChapter)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderPreview(preview))
	return nil
}

func renderPreview(preview *binder.PreviewResult) string {
	chapters := lo.Map(preview.Chapters, func(chapter binder.ChapterPreview, _ int) treeItem {
		if chapter.Err != nil {
			return treeItem{label: fmt.Sprintf("%s: unreadable (%v)", chapter.File.Name, chapter.Err)}
		}
		return treeItem{
			label: fmt.Sprintf("%s (chapter %s, %d pages)", chapter.File.Name, formatChapter(chapter.File.Number), len(chapter.Pages)),
			children: lo.Map(chapter.Pages, func(page string, _ int) treeItem {
				return treeItem{label: page}
			}),
		}
	})
	if len(chapters) == 0 {
		chapters = []treeItem{{label: "no chapters"}}
	}

	return renderTree([]treeItem{{
		label:    fmt.Sprintf("Volume %02d %s: %d chapter(s), %d page(s)", preview.Volume, formatRange(preview.Range), len(preview.Chapters), preview.TotalPages),
		children: chapters,
	}})
}
