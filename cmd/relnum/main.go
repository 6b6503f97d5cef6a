// Command relnum advances the release number in a VERSION file: the next
// sequence within the current year, or the year's first release after a
// year change. This is run by the release script, not by users.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/neight-app/neight/internal/version"
)

func main() {
	path := "VERSION"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	current, err := version.Parse(strings.TrimSpace(string(data)))
	if err != nil {
		log.Fatal(err)
	}
	next, err := current.Next(time.Now())
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(next.String()+"\n"), 0644); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s -> %s\n", current, next)
}
