// Command taskdeck runs the task tracker server and its maintenance tasks.
package main

func main() {
	Execute()
}
