package main

import (
	"os"

	"go.uber.org/zap"

	"github.com/xgx-io/xgx-gerror/cmd/gerror/cmd"
)

func main() {
	if err := cmd.RootCmd().Execute(); err != nil {
		zap.L().Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}

func init() {
	zap.ReplaceGlobals(zap.Must(zap.NewDevelopment()))
}
