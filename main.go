// click install <package>
// click install <package>@latest
// click install <package>@<version>
// click install <package>@<constraint>   (e.g. ^1.2.3, ~1.2, >=1.0.0, <2.0.0)

package main

import (
	"fmt"
	"os"

	"github.com/StarNumber12046/click/commands"
)

func main() {
	if err := commands.Dispatch(os.Args); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
