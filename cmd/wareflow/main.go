// Command wareflow runs economy scenarios and inspects their artifacts.
package main

func main() {
	Execute()
}
