package main

import "LoveAI/client/loveai-cli/cmd"

func main() {
	cmd.Execute()
}
