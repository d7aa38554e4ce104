package main

import "github.com/annwoerpel/visual-analytics-books/cmd"

func main() {
	cmd.Execute()
}
