// Command ganttcg solves the linear relaxation of a Gantt scheduling
// instance by column generation and prints the bound, the bunch selection
// and the final shadow prices.
//
//	ganttcg solve --instance plan.yaml [--config settings.yaml] [--max-iterations N]
//	              [--tolerance T] [--parallelism P] [--verbose]
//
// Settings are read from defaults, the optional config file, LVOPT_*
// environment variables and flags, later sources winning.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
