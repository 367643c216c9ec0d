// Command seed loads reference data and the first administrator into the tables.
package main

import "github.com/alex-pricope/hackathon-judging-api/cmd/seed/cmd"

func main() {
	cmd.Execute()
}
