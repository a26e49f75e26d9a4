// Command dblibsync rebuilds the component library database and its Altium
// DbLib file from a Google Sheets spreadsheet.
package main

func main() {
	Execute()
}
