// Command zoocore runs the zoo rule-evaluation API and its maintenance
// commands.
package main

import "os"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
