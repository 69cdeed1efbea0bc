package main

import "github.com/masmgr/githistory-go/cmd"

func main() {
	cmd.Run()
}
