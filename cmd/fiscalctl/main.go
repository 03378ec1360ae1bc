// fiscalctl calcula declarações y ledgers a partir de un fichero JSON, sin
// base de datos. Útil para revisar cifras antes de cerrar un período.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// .env opcional; las variables del entorno tienen prioridad
	_ = godotenv.Load()

	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
