// Package main provides the dust CLI.
package main

import (
	"fmt"
	"log"
	"os"
)

const version = "v0.1.0-dev"

func main() {
	log.SetFlags(0)
	log.SetPrefix("dust: ")

	if len(os.Args) < 2 {
		usage()
		return
	}

	var err error
	switch os.Args[1] {
	case "version":
		fmt.Printf("dust %s\n", version)
	case "train":
		err = runTrain(os.Args[2:])
	case "gradcheck":
		err = runGradCheck(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Println("dust - scalar autodiff and tiny neural networks")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  train      Fit an MLP to a toy dataset")
	fmt.Println("  gradcheck  Compare every primitive with finite differences")
}
