package main

import "todo-digest.com/todo-digest/cmd"

func main() {
	cmd.Execute()
}
