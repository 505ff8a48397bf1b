package cmd

import (
	"github.com/commitment-parties/agent/src/agent"
	"github.com/commitment-parties/agent/src/utils/logger"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(agentCmd)
}

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Runs every loop: verification monitors, pool activation and settlement",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		controller, err := agent.NewController(conf)
		if err != nil {
			return
		}

		err = controller.Start()
		if err != nil {
			return
		}

		select {
		case <-controller.CtxRunning.Done():
		case <-applicationCtx.Done():
		}

		controller.StopWait()

		return
	},
	PostRunE: func(cmd *cobra.Command, args []string) (err error) {
		log := logger.NewSublogger("root-cmd")
		log.Debug("Finished agent command")
		applicationCtxCancel()
		return
	},
}
