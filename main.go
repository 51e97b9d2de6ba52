package main

import "github.com/mk-Guvi/kriyadocs-attendance-vision/cmd"

func main() {
	cmd.Execute()
}
