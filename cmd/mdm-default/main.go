package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/vburojevic/mdmdefaults/internal/cli"
)

func main() {
	var c cli.LookupCLI

	parser, err := kong.New(&c,
		kong.Name("mdm-default"),
		kong.Description("Print the documented default of an MDM preference key.\n\nExample: mdm-default com.apple.MCX DisableGuestAccount"),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		cli.LookupVars(),
	)
	if err != nil {
		panic(err)
	}

	// Unusable arguments still answer with a single line and exit 0.
	if _, err := parser.Parse(os.Args[1:]); err != nil {
		c = cli.LookupCLI{}
	}
	_ = c.Run(os.Stdout)
}
