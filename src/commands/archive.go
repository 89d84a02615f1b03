package commands

import (
	"fmt"

	"github.com/BielosX/wombat/poke-search/src/archive"
	"github.com/spf13/cobra"
)

func (a *app) archiveCmd() *cobra.Command {
	var request archive.Request
	cmd := &cobra.Command{
		Use:   "archive [NAMES...]",
		Short: "Store Pokemon in S3 as Parquet and CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			request.Names = args
			archiver, err := archive.NewFromConfig(cmd.Context(), a.cfg, a.client, a.sugar)
			if err != nil {
				return err
			}
			result, err := archiver.Run(cmd.Context(), request)
			if err != nil {
				return err
			}
			if result.Count == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing archived")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived %d Pokemon\n%s\n%s\n",
				result.Count, result.ParquetFileName, result.CsvFileName)
			return nil
		},
	}
	cmd.Flags().Int32Var(&request.Limit, "limit", 0, "page size when no names are given")
	cmd.Flags().Int32Var(&request.Offset, "offset", 0, "page offset when no names are given")
	cmd.Flags().StringVar(&a.cfg.BucketName, "bucket", a.cfg.BucketName, "S3 bucket")
	cmd.Flags().StringVar(&a.cfg.ArchivePrefix, "prefix", a.cfg.ArchivePrefix, "S3 key prefix")
	return cmd
}
