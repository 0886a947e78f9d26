package main

import "github.com/riskfuse/riskfuse/cmd"

// execCmd is indirected so main is testable.
var execCmd = cmd.Execute

func main() {
	execCmd()
}
