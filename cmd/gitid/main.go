// Command gitid chooses which Git identity each repository commits as.
package main

import (
	"os"

	"github.com/ksteinfeldt/gitid/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
