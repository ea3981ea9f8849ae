// main is the entry point for the adsboost CLI.
package main

import (
	"github.com/adsabs/adsboost/cmd"
	"github.com/adsabs/adsboost/internal/contract"
	"github.com/adsabs/adsboost/internal/store"
)

func main() {
	cmd.SetStoreManager(store.Manager)
	defer store.CloseStore()

	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	if err != nil {
		store.CloseStore() // LogFatal exits without running defers
		contract.LogFatal("Command failed", err)
	}
}
