package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/leofalp/schemafix/cmd/schemafix/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
