package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	agentcore "github.com/EfeDurmaz16/assos/src/agents/core"
)

func newRunCmd() *cobra.Command {
	var (
		agentKey string
		taskType string
		taskID   string
		rawInput string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process a single task and print the JSON response",
		Example: `  assos-ai run --agent content_strategist --type script_generation \
    --input '{"topic":"home espresso","niche":"coffee","target_duration":8}'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := map[string]any{}
			if rawInput != "" {
				if err := json.Unmarshal([]byte(rawInput), &input); err != nil {
					return fmt.Errorf("--input must be a JSON object: %w", err)
				}
			}

			ctx := cmd.Context()
			rt, err := buildRuntime(ctx, prometheus.NewRegistry())
			if err != nil {
				return err
			}
			defer rt.Close()

			resp, err := rt.manager.Process(ctx, agentKey, agentcore.Task{
				ID:    taskID,
				Type:  agentcore.TaskType(taskType),
				Input: input,
			})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	}
	cmd.Flags().StringVar(&agentKey, "agent", "manus", "Agent key")
	cmd.Flags().StringVar(&taskType, "type", "", "Task type")
	cmd.Flags().StringVar(&taskID, "task-id", "", "Task id (generated when empty)")
	cmd.Flags().StringVar(&rawInput, "input", "", "Task input as a JSON object")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}
