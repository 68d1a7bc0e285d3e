package version

import (
	"context"
	"fmt"
	"time"

	"github.com/anisan-cli/anifetch/constant"
	"github.com/anisan-cli/anifetch/icon"
	"github.com/anisan-cli/anifetch/key"
	"github.com/anisan-cli/anifetch/log"
	"github.com/anisan-cli/anifetch/style"
	"github.com/anisan-cli/anifetch/util"
	"github.com/spf13/viper"
)

// Notify prints a notice when a newer release than the running one exists.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	latest, err := Latest(ctx)
	erase()
	if err != nil {
		log.Debugf("version check failed: %v", err)
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Success("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/anisan-cli/anifetch/releases/tag/v"+latest),
	)
}
