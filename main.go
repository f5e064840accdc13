package main

import (
	"fmt"
	"os"

	"taxmaster/statement-extractor/cmd/extract"
	"taxmaster/statement-extractor/cmd/root"
	"taxmaster/statement-extractor/cmd/serve"

	"taxmaster/statement-extractor/internal/config"
)

func init() {
	// Load .env before anything reads the environment.
	config.LoadEnv()

	root.Init()

	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(extract.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
