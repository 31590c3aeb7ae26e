// Command report runs the dataset pipeline once and prints a view as JSON.
package main

import "os"

func main() {
	os.Exit(Execute())
}
