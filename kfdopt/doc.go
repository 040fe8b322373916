// Package kfdopt consolidates the file dumps of a checkpoint corpus.
//
// Example:
//
//	result, err := kfdopt.Consolidate("/ckpts")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("shared copies:", result.Stats.SharedCopies)
package kfdopt
