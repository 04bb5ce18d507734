// cassowary is a command line front end for the constraint solver. It
// writes sample serialized systems, loads and solves them, and prints the
// library version.
package main

func main() {
	Execute()
}
