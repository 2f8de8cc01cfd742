// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Tidyframe is a command line front end for running table pipelines:
// it reads delimited data, applies a YAML pipeline description, and
// writes the result as CSV or JSON.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tidyframe/tidyframe/base/logx"
	"github.com/tidyframe/tidyframe/pipeline"
	"github.com/tidyframe/tidyframe/table"
	"github.com/tidyframe/tidyframe/tableio"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tidyframe:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "tidyframe",
		Short:         "run table cleaning and reshaping pipelines",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logx.SetVerbose(verbose)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(runCmd(), schemaCmd(), headCmd())
	return root
}

func runCmd() *cobra.Command {
	var (
		input    string
		output   string
		noHeader bool
		encoding string
	)
	cmd := &cobra.Command{
		Use:   "run pipeline.yaml",
		Short: "apply a YAML pipeline to a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pipeline.LoadFile(args[0])
			if err != nil {
				return err
			}
			dt, err := tableio.OpenCSV(input, tableio.ReadOptions{
				NoHeader: noHeader,
				Encoding: encoding,
			})
			if err != nil {
				return err
			}
			out, err := p.Run(dt)
			if err != nil {
				return err
			}
			return writeOutput(out, output)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "input CSV/TSV file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.csv or .json; empty writes CSV to stdout)")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "input has no header record")
	cmd.Flags().StringVar(&encoding, "encoding", "", "input character encoding (IANA name)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func writeOutput(dt *table.Table, output string) error {
	switch {
	case output == "":
		return tableio.WriteCSV(dt, os.Stdout, tableio.WriteOptions{})
	case strings.HasSuffix(output, ".json"):
		return tableio.SaveJSON(dt, output)
	}
	return tableio.SaveCSV(dt, output, tableio.WriteOptions{})
}

func schemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema file.csv",
		Short: "print the column names, types, and missing counts of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dt, err := tableio.OpenCSV(args[0], tableio.ReadOptions{})
			if err != nil {
				return err
			}
			for _, ci := range dt.Schema() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d missing\n", ci.Name, ci.Type, ci.Missing)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d rows, %d columns\n", dt.NumRows(), dt.NumColumns())
			return nil
		},
	}
	return cmd
}

func headCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "head file.csv",
		Short: "print the first rows of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dt, err := tableio.OpenCSV(args[0], tableio.ReadOptions{})
			if err != nil {
				return err
			}
			return tableio.WriteCSV(dt.Head(n), cmd.OutOrStdout(), tableio.WriteOptions{})
		},
	}
	cmd.Flags().IntVarP(&n, "rows", "n", 10, "number of rows to print")
	return cmd
}
