/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/tmarsden/binq/cmd/binq/cmd"
)

func main() {
	cmd.Execute()
}
