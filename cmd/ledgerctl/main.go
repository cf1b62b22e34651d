// Command ledgerctl manages a ledger database from the command line: backups,
// restores, reports and demo data.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
