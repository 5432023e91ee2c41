package commands

import (
	"errors"
	"fmt"

	"github.com/danielkitchener/CBZBinder/internal/manga"
	"github.com/danielkitchener/CBZBinder/internal/utils"
	"github.com/danielkitchener/CBZBinder/internal/volume"
	"github.com/danielkitchener/CBZBinder/pkg/binder"
	"github.com/danielkitchener/CBZBinder/pkg/binder/constant"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/thediveo/enumflag/v2"
)

var archiveFormat = constant.DefaultFormat

// addSelectionFlags registers the flags deciding which chapters go into which volume.
func addSelectionFlags(command *cobra.Command) {
	command.Flags().StringP("prefix", "p", "", "Prefix of the volume archives; files starting with it are never read as chapters")
	command.Flags().StringArrayP("volume", "V", nil, "Volume definition VOLUME:START_CHAPTER, repeatable (e.g. -V 1:0 -V 2:8)")
	command.Flags().StringP("generate", "g", "", "Generate volume definitions START_VOL:END_VOL:START_CH[:STEP] (step defaults to 4)")
	command.Flags().Float64P("stop", "s", 0, "Global stop chapter; chapters numbered from it on are left out. 0 means no limit")
}

// addOutputFlags registers the flags shaping the written volume archives.
func addOutputFlags(command *cobra.Command) {
	formatFlag := enumflag.New(&archiveFormat, "format", constant.CommandValue, enumflag.EnumCaseInsensitive)
	_ = formatFlag.RegisterCompletion(command, "format", constant.HelpText)

	command.Flags().VarP(
		formatFlag,
		"format", "f",
		fmt.Sprintf("Format of the volume archives: %s", constant.ListAll()))
	command.Flags().StringP("output", "o", "", "Folder receiving the volume archives (defaults to the source folder)")
	command.Flags().Bool("verify", false, "Leave out pages whose image cannot be decoded")
}

// volumeDefinitions collects --generate then --volume rows; a later row for the same volume wins.
func volumeDefinitions(cmd *cobra.Command) ([]manga.VolumeDefinition, error) {
	var definitions []manga.VolumeDefinition

	generator, err := cmd.Flags().GetString("generate")
	if err != nil {
		return nil, fmt.Errorf("invalid generate value: %w", err)
	}
	if generator != "" {
		generated, err := volume.ParseGenerator(generator)
		if err != nil {
			return nil, err
		}
		definitions = append(definitions, generated...)
	}

	rows, err := cmd.Flags().GetStringArray("volume")
	if err != nil {
		return nil, fmt.Errorf("invalid volume value: %w", err)
	}
	parsed, err := volume.ParseDefinitions(rows)
	if err != nil {
		return nil, err
	}
	return append(definitions, parsed...), nil
}

// stopLimit reads --stop. An absent or non-positive value means no limit.
func stopLimit(cmd *cobra.Command) (volume.Limit, error) {
	if !cmd.Flags().Changed("stop") {
		return volume.NoLimit(), nil
	}
	stop, err := cmd.Flags().GetFloat64("stop")
	if err != nil {
		return volume.Limit{}, fmt.Errorf("invalid stop value: %w", err)
	}
	if stop <= 0 {
		return volume.NoLimit(), nil
	}
	return volume.StopAt(stop), nil
}

// buildOptions turns the folder argument, flags and configuration into binder options.
func buildOptions(cmd *cobra.Command, path string, requireVolumes bool) (*binder.Options, error) {
	if path == "" {
		return nil, errors.New("path is required")
	}
	if !utils.IsValidFolder(path) {
		return nil, fmt.Errorf("the path needs to be a folder")
	}

	definitions, err := volumeDefinitions(cmd)
	if err != nil {
		return nil, err
	}
	if requireVolumes && len(definitions) == 0 {
		return nil, errors.New("no volumes defined, use --volume or --generate")
	}

	stop, err := stopLimit(cmd)
	if err != nil {
		return nil, err
	}

	options := &binder.Options{
		Directory: path,
		Prefix:    viper.GetString("prefix"),
		Volumes:   definitions,
		Stop:      stop,
	}
	if cmd.Flags().Lookup("format") != nil {
		options.Format = constant.FindArchiveFormat(viper.GetString("format"))
		options.OutputDirectory = viper.GetString("output")
		options.VerifyPages = viper.GetBool("verify")
		if options.OutputDirectory != "" && !utils.IsValidFolder(options.OutputDirectory) {
			return nil, fmt.Errorf("the output path needs to be a folder")
		}
	}
	return options, nil
}
