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

	root.Cmd.AddCommand(ingest.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(review.Cmd)
	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(budget.Cmd)
	root.Cmd.AddCommand(users.Cmd)
	root.Cmd.AddCommand(export.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
