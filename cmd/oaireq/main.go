package main

import (
	"fmt"
	"os"

	"github.com/HexmosTech/oairequest"
)

func main() {
	if err := oairequest.Main(&oairequest.Options{}); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
