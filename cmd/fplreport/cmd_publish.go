package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aatrey56/fpl-season-report/internal/publish"
)

func newPublishCmd(a *app) *cobra.Command {
	var (
		dir    string
		bucket string
		prefix string
	)
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload the output directory to S3",
		Long: `Uploads every file under the output directory to
s3://<bucket>/<prefix>/<season>/..., using the default AWS credential chain.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = a.cfg.Paths.OutputDir
			}
			if bucket == "" {
				bucket = a.cfg.Publish.Bucket
			}
			if bucket == "" {
				return errors.New("no bucket configured (set publish.bucket or FPL_S3_BUCKET)")
			}
			if prefix == "" {
				prefix = a.cfg.Publish.Prefix
			}
			prefix = strings.Trim(prefix+"/"+strings.ReplaceAll(a.seasonLabel(), "/", "-"), "/")

			u, err := publish.NewUploader(cmd.Context(), bucket, prefix, a.cfg.Publish.Region, a.log)
			if err != nil {
				return err
			}
			keys, err := u.UploadDir(cmd.Context(), dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "uploaded %d objects to s3://%s/%s\n", len(keys), bucket, prefix)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "directory to upload (default paths.output_dir)")
	cmd.Flags().StringVar(&bucket, "bucket", "", "S3 bucket (default publish.bucket)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "key prefix (default publish.prefix)")
	return cmd
}
