// Command adminctl manages store admin records from the command line.
package main

import (
	"os"

	"github.com/simp-lee/storeadmin/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
