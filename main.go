package main

import (
	"log"

	"github.com/techstacks/newsroom/cli"
)

func main() {
	newsroomCmd := cli.NewCommand()
	if err := newsroomCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
