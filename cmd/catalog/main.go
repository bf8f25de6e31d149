// Command catalog administra el catálogo de piezas desde la terminal: migraciones, usuarios,
// consulta de estantes, exportación de listas PDF y clasificación de texto OCR.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
