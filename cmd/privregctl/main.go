// Command privregctl is a debug/inspection tool for the privatized-object
// registry. It drives an in-process registry instance so the API surface
// (Publish, Get, Clear, Capacity) can be exercised and observed manually,
// without wiring a whole distributed runtime around it.
package main

func main() {
	execute()
}
