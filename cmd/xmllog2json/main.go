// xmllog2json converts XML log files into per-severity JSON files.
package main

import (
	"os"

	"github.com/ccollicutt/xmllog2json/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
