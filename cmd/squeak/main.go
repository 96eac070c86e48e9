// Squeak is an interactive shell around a structured console channel. Its
// commands control which messages the channel lets through, and every
// message is reported through the channel itself.
package main

import (
	"os"

	"src.squeak.sh/pkg/buildinfo"
	"src.squeak.sh/pkg/prog"
	"src.squeak.sh/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(buildinfo.Program, shell.Program{})))
}
