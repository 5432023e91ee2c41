package commands

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/danielkitchener/CBZBinder/internal/cbz"
	"github.com/danielkitchener/CBZBinder/internal/utils"
	"github.com/pablodz/inotifywaitgo/inotifywaitgo"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	if runtime.GOOS != "linux" {
		return
	}
	command := &cobra.Command{
		Use:   "watch [folder]",
		Short: "Watch a folder and merge volumes when chapters arrive",
		Long:  "Watch a folder for new CBZ/ZIP chapter archives.\nEvery time a chapter archive is written or moved into the folder, the volumes are merged again.",
		RunE:  WatchCommand,
		Args:  cobra.ExactArgs(1),
	}
	addSelectionFlags(command)
	addOutputFlags(command)
	command.Flags().IntP("parallelism", "n", 2, "Number of volumes to merge in parallel")

	AddCommand(command)
}

func WatchCommand(cmd *cobra.Command, args []string) error {
	path := args[0]
	options, err := buildOptions(cmd, path, true)
	if err != nil {
		return err
	}

	parallelism := viper.GetInt("parallelism")
	if parallelism < 1 {
		return fmt.Errorf("invalid parallelism value")
	}

	log.Info().
		Str("path", path).
		Str("prefix", options.Prefix).
		Int("volumes", len(options.Volumes)).
		Str("format", options.Format.String()).
		Msg("Watching directory")

	events := make(chan inotifywaitgo.FileEvent)
	errors := make(chan error)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		inotifywaitgo.WatchPath(&inotifywaitgo.Settings{
			Dir:        path,
			FileEvents: events,
			ErrorChan:  errors,
			Options: &inotifywaitgo.Options{
				Recursive: false,
				Events: []inotifywaitgo.EVENT{
					inotifywaitgo.MOVE,
					inotifywaitgo.CLOSE_WRITE,
				},
				Monitor: true,
			},
			Verbose: true,
		})
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for event := range events {
			log.Debug().Str("file", event.Filename).Interface("events", event.Events).Msg("File event")

			if !triggersMerge(event.Filename, options.Prefix) {
				continue
			}

			for _, e := range event.Events {
				switch e {
				case inotifywaitgo.CLOSE_WRITE, inotifywaitgo.MOVE:
					results, err := mergeVolumes(commandContext(cmd), options, parallelism)
					if len(results) > 0 {
						_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderMergeResults(results))
					}
					if err != nil {
						errors <- fmt.Errorf("error merging after %s: %w", event.Filename, err)
					}
				default:
					// ignored
				}
			}
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for err := range errors {
			log.Error().Err(err).Msg("Watch error")
		}
	}()

	wg.Wait()
	return nil
}

// triggersMerge reports whether a written file is a new chapter. Volume archives written by
// the merge itself are recognised by their prefix or their stamp.
func triggersMerge(filePath, prefix string) bool {
	name := filepath.Base(filePath)
	if !utils.HasExtension(name, cbz.ChapterExtensions...) {
		return false
	}
	if prefix != "" && strings.HasPrefix(name, prefix) {
		return false
	}
	if _, stamped := cbz.ReadStamp(filePath); stamped {
		return false
	}
	return true
}
