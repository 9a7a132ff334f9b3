// genhash prints the bcrypt hash stored for a staff PIN.
// Usage: go run ./cmd/genhash 1234
package main

import (
	"fmt"
	"os"

	"nailpos/internal/service"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: genhash <pin>")
		os.Exit(2)
	}
	h, err := service.HashPIN(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(h)
}
