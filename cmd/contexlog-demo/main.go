package main

import "github.com/oshokin/contexlog/cmd/contexlog-demo/cmd"

func main() {
	cmd.Execute()
}
