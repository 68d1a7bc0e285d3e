// Package main is the entry point of anifetch.
package main

import (
	"github.com/anisan-cli/anifetch/cmd"
	"github.com/anisan-cli/anifetch/config"
	"github.com/anisan-cli/anifetch/internal/cache"
	"github.com/anisan-cli/anifetch/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go cache.CollectGarbage()

	cmd.Execute()
}
