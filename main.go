package main

import (
	"fmt"
	"os"

	"fjacquet/camt-export/cmd/batch"
	"fjacquet/camt-export/cmd/convert"
	"fjacquet/camt-export/cmd/inspect"
	"fjacquet/camt-export/cmd/root"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(convert.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(inspect.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
