/*
Copyright © 2026 M3t0r
*/
package main

import "github.com/M3t0r/slack-emoji/cmd"

func main() {
	cmd.Execute()
}
