package main

import "github.com/sharpskill/skillmatch/cmd"

func main() {
	cmd.Execute()
}
