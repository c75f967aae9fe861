package launchpad

import (
	"github.com/miaswap/launchpad/common"
)

var log = common.NewLog("launchpad")
