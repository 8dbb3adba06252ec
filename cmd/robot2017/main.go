// Package main is the robot2017 command.
package main

import (
	"log"
	"os"

	"github.com/TechnoJays/robot2017/cli"
)

func main() {
	if err := cli.NewApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
