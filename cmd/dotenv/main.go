package main

import (
	"github.com/AD7six/dotenv/internal/commands"
	"github.com/spf13/cobra"
)

func main() {
	cobra.CheckErr(commands.NewRootCmd().Execute())
}
