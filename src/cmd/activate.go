package cmd

import (
	"github.com/commitment-parties/agent/src/agent"
	"github.com/commitment-parties/agent/src/utils/logger"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(activateCmd)
}

var activateCmd = &cobra.Command{
	Use:   "activate",
	Short: "Runs only the pool activation loop",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		controller, err := agent.NewActivatorController(conf)
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
		log.Debug("Finished activate command")
		applicationCtxCancel()
		return
	},
}
