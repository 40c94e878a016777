package main

import "github.com/quocvuong92/devconsole/cmd"

func main() {
	cmd.Execute()
}
