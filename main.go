package main

import "github.com/02priyeshraj/Tomato_Restaurant_Website/cmd"

func main() {
	cmd.Execute()
}
