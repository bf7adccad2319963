package main

import "github.com/KaramelBytes/csv-inspector/cmd"

func main() {
	cmd.Execute()
}
