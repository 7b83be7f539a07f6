// Command viomictl talks to a single Viomi vacuum without the server.
package main

func main() {
	execute()
}
