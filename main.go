package main

import "github.com/facewatch/facewatch/cmd"

func main() {
	cmd.Execute()
}
