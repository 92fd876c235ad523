// Command customizer extracts parameter schemas from annotated parametric
// model files and renders customizer forms from them.
package main

func main() {
	Execute()
}
