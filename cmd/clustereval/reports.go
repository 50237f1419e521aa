package main

import (
	"fmt"

	"github.com/hupe1980/clustereval/archive"
	"github.com/hupe1980/clustereval/codec"
	"github.com/spf13/cobra"
)

func newReportsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Inspect archived evaluation reports",
	}
	cmd.AddCommand(newReportsListCmd(a))
	cmd.AddCommand(newReportsShowCmd(a))
	return cmd
}

func newReportsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived report IDs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			arc, err := a.archiveFromFlags(cmd.Context())
			if err != nil {
				return err
			}
			ids, err := arc.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func newReportsShowCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <id|" + archive.LatestID + ">",
		Short: "Print one archived report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arc, err := a.archiveFromFlags(cmd.Context())
			if err != nil {
				return err
			}
			r, err := arc.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if format == "table" {
				return printReport(cmd.OutOrStdout(), r)
			}
			c, ok := codec.ByName(format)
			if !ok {
				return fmt.Errorf("unknown format %q", format)
			}
			data, err := c.Marshal(r)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json, yaml")
	return cmd
}
