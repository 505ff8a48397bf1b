package cmd

import (
	"github.com/commitment-parties/agent/src/agent"
	"github.com/commitment-parties/agent/src/utils/logger"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(monitorCmd)
}

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Runs only the goal verification pipelines",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		controller, err := agent.NewMonitorController(conf)
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
		log.Debug("Finished monitor command")
		applicationCtxCancel()
		return
	},
}
