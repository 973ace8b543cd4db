// main is the entry point for the coco CLI.
package main

import (
	"github.com/LakGar/Coco-sub001/cmd"
	"github.com/LakGar/Coco-sub001/internal/contract"
	"github.com/LakGar/Coco-sub001/internal/iocache"
)

func main() {
	defer iocache.CloseStores()
	cmd.SetStoreManager(iocache.Manager)

	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	if err != nil {
		iocache.CloseStores()
		contract.LogFatal("Command failed", err)
	}
}
