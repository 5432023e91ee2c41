package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/danielkitchener/CBZBinder/internal/manga"
	"github.com/danielkitchener/CBZBinder/pkg/binder"
	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

const lockFileName = ".cbzbinder.lock"

func init() {
	command := &cobra.Command{
		Use:   "merge [folder]",
		Short: "Merge chapter archives into volume archives",
		Long:  "Merge chapter archives into volume archives.\nEvery volume that receives at least one chapter is written as <prefix><volume>.<format> with its pages stored uncompressed in reading order.\nThe chapter archives are left untouched.",
		RunE:  MergeCommand,
		Args:  cobra.ExactArgs(1),
	}
	addSelectionFlags(command)
	addOutputFlags(command)
	command.Flags().IntP("parallelism", "n", 2, "Number of volumes to merge in parallel")

	AddCommand(command)
}

func MergeCommand(cmd *cobra.Command, args []string) error {
	options, err := buildOptions(cmd, args[0], true)
	if err != nil {
		return err
	}

	parallelism := viper.GetInt("parallelism")
	if parallelism < 1 {
		return fmt.Errorf("invalid parallelism value")
	}

	results, err := mergeVolumes(commandContext(cmd), options, parallelism)
	if len(results) > 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderMergeResults(results))
	}
	return err
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// mergeVolumes plans the folder then merges its volumes with a pool of workers.
// Runs on the same output folder are serialized through a lock file.
func mergeVolumes(ctx context.Context, options *binder.Options, parallelism int) ([]*binder.MergeResult, error) {
	plan, err := binder.NewPlan(options)
	if err != nil {
		return nil, err
	}
	if len(plan.Assignments) == 0 {
		log.Info().Str("path", options.Directory).Int("scanned", plan.Scanned).Msg("No chapter falls in any volume, nothing to merge")
		return nil, nil
	}

	outputDirectory := options.OutputDirectory
	if outputDirectory == "" {
		outputDirectory = options.Directory
	}
	lock := flock.New(filepath.Join(outputDirectory, lockFileName))
	locked, err := lock.TryLockContext(ctx, 250*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("failed to lock output folder: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("output folder %s is locked by another run", outputDirectory)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			log.Warn().Err(err).Msg("Cannot release output folder lock")
		}
	}()

	log.Info().
		Str("path", options.Directory).
		Int("volumes", len(plan.Assignments)).
		Int("chapters", plan.Chapters()).
		Int("parallelism", parallelism).
		Msg("Merging volumes")

	// Channel to hand out the volumes to merge
	assignmentChan := make(chan manga.VolumeAssignment)
	// Channel to collect errors
	errorChan := make(chan error, len(plan.Assignments))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var results []*binder.MergeResult

	for i := 0; i < parallelism; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for assignment := range assignmentChan {
				result, err := binder.Merge(assignment, options)
				if err != nil {
					errorChan <- fmt.Errorf("error merging volume %02d: %w", assignment.Volume, err)
				}
				if result == nil {
					continue
				}
				mu.Lock()
				results = append(results, result)
				mu.Unlock()
			}
		}()
	}

	for _, assignment := range plan.Assignments {
		assignmentChan <- assignment
	}

	close(assignmentChan) // Close the channel to signal workers to stop
	wg.Wait()             // Wait for all workers to finish
	close(errorChan)      // Close the error channel

	slices.SortFunc(results, func(a, b *binder.MergeResult) int {
		return a.Volume - b.Volume
	})

	var errs []error
	for err := range errorChan {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return results, fmt.Errorf("encountered errors: %v", errs)
	}
	return results, nil
}

func renderMergeResults(results []*binder.MergeResult) string {
	rows := lo.Map(results, func(result *binder.MergeResult, _ int) table.Row {
		failed := len(result.Failed())
		status := "ok"
		switch {
		case result.Err != nil:
			status = "failed"
		case !result.Written:
			status = "empty"
		case failed > 0:
			status = fmt.Sprintf("%d chapter(s) skipped", failed)
		}
		return table.Row{
			fmt.Sprintf("%02d", result.Volume),
			filepath.Base(result.OutputPath),
			len(result.Chapters) - failed,
			result.Pages,
			humanize.Bytes(uint64(result.Bytes)),
			status,
		}
	})

	return renderTable([]column{
		{title: "Volume", align: text.AlignRight},
		{title: "Archive", align: text.AlignLeft},
		{title: "Chapters", align: text.AlignRight},
		{title: "Pages", align: text.AlignRight},
		{title: "Size", align: text.AlignRight},
		{title: "Status", align: text.AlignLeft},
	}, rows)
}
