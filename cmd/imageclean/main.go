// imageclean deletes untagged images and all but the newest images of each
// repository from the local container runtime.
package main

import (
	"os"

	"github.com/schmitthub/imageclean/internal/imageclean"
)

func main() {
	os.Exit(imageclean.Main())
}
