package cmd

import (
	"github.com/fatih/color"

	"github.com/riskfuse/riskfuse/internal/intel"
)

var (
	colorSuccess = color.New(color.FgGreen).SprintFunc()
	colorInfo    = color.New(color.FgCyan).SprintFunc()
	colorWarn    = color.New(color.FgYellow).SprintFunc()
	colorError   = color.New(color.FgRed).SprintFunc()
)

func formatLevelWithColor(level intel.Level) string {
	switch level {
	case intel.LevelLow:
		return colorSuccess(string(level))
	case intel.LevelMedium:
		return colorWarn(string(level))
	case intel.LevelHigh, intel.LevelCritical:
		return colorError(string(level))
	default:
		return string(level)
	}
}

func formatStatusWithColor(status intel.Status) string {
	switch status {
	case intel.StatusOK:
		return colorSuccess(string(status))
	case intel.StatusTimeout:
		return colorWarn(string(status))
	case intel.StatusError:
		return colorError(string(status))
	default:
		return string(status)
	}
}
