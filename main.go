package main

import "github.com/ValentinKolb/dDHT/cmd"

func main() {
	cmd.Execute()
}
