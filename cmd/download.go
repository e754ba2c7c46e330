package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download a feed file without ingesting it",
	RunE: func(cmd *cobra.Command, args []string) error {
		rawURL, _ := cmd.Flags().GetString("url")
		compressed, _ := cmd.Flags().GetBool("compressed")

		svc := newFetchService()
		path, err := svc.DownloadAndExtract(cmd.Context(), rawURL, compressed)
		if err != nil {
			return err
		}
		fmt.Printf("downloaded %s\n", path)
		return nil
	},
}

func init() {
	downloadCmd.Flags().String("url", "", "feed URL to download")
	downloadCmd.Flags().Bool("compressed", false, "the source is gzip or zip compressed")
	_ = downloadCmd.MarkFlagRequired("url")
	rootCmd.AddCommand(downloadCmd)
}
