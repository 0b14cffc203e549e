package main

import "smarttodo/cmd/smarttodo/root"

func main() {
	root.Execute()
}
