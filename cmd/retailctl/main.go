package main

import (
	_ "github.com/joho/godotenv/autoload"

	"retailadmin/internal/cli"
)

func main() {
	cli.Execute()
}
