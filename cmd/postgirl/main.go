// postgirl - convert API collections between Postman, Insomnia, OpenAPI and curl.
package main

import (
	"fmt"
	"os"

	"github.com/xbklairith/postgirl-sub001/pkg/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
