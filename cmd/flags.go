package cmd

import (
	"github.com/gnames/bookshelf/pkg/config"
	"github.com/spf13/cobra"
)

// funcFlag turns an explicitly set command flag into config options.
type funcFlag func(cmd *cobra.Command) []config.Option

func flagOptions(cmd *cobra.Command, flags ...funcFlag) []config.Option {
	var res []config.Option
	for _, fn := range flags {
		res = append(res, fn(cmd)...)
	}
	return res
}

func progressFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("progress") {
		return nil
	}
	b, _ := cmd.Flags().GetBool("progress")
	return []config.Option{config.OptPopulateWithProgress(b)}
}

func portFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("port") {
		return nil
	}
	i, _ := cmd.Flags().GetInt("port")
	return []config.Option{config.OptServerPort(i)}
}

func pageSizeFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("page-size") {
		return nil
	}
	i, _ := cmd.Flags().GetInt("page-size")
	return []config.Option{config.OptServerPageSize(i)}
}
