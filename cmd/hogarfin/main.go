// Package main provides the entry point for the hogarfin CLI.
package main

import (
	"fmt"
	"os"

	"pvillar/hogarfin/cmd/batch"
	"pvillar/hogarfin/cmd/budget"
	"pvillar/hogarfin/cmd/categorize"
	"pvillar/hogarfin/cmd/export"
	"pvillar/hogarfin/cmd/ingest"
	"pvillar/hogarfin/cmd/report"
	"pvillar/hogarfin/cmd/review"
	"pvillar/hogarfin/cmd/root"
	"pvillar/hogarfin/cmd/users"
)

func init() {
	root.Init()
	root.Cmd.AddCommand(ingest.Cmd, batch.Cmd, categorize.Cmd, review.Cmd,
		report.Cmd, budget.Cmd, users.Cmd, export.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
