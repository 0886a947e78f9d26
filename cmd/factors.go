package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riskfuse/riskfuse/internal/intel"
)

var factorsCmd = &cobra.Command{
	Use:   "factors",
	Short: "List the configured risk factors and their weights",
	Run: func(cmd *cobra.Command, args []string) {
		for _, factor := range intel.DefaultFactors() {
			fmt.Printf("%-28s +%-3d %s\n", factor.ID, factor.Weight, factor.Message)
		}
	},
}
