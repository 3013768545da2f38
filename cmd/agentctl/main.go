package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag      string
	tenantFlag   string
	customerFlag string
	convFlag     string
	rootCmd      = &cobra.Command{
		Use:   "agentctl",
		Short: "CLI client for the voice-agent REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Agent service base URL")
	rootCmd.PersistentFlags().StringVarP(&tenantFlag, "tenant", "t", "demo_tenant", "Tenant ID")

	sendCmd := &cobra.Command{
		Use:   "send <message>",
		Short: "Send a customer message through the agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if customerFlag == "" {
				return fmt.Errorf("--customer required")
			}
			return runSend(apiFlag, tenantFlag, customerFlag, convFlag, args[0], os.Stdout)
		},
	}
	sendCmd.Flags().StringVarP(&customerFlag, "customer", "c", "", "Customer ID (required)")
	sendCmd.Flags().StringVar(&convFlag, "conversation", "", "Existing conversation ID")
	rootCmd.AddCommand(sendCmd)

	showCmd := &cobra.Command{
		Use:   "conversation <conversation-id>",
		Short: "Show a stored conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShowConversation(apiFlag, tenantFlag, args[0], os.Stdout)
		},
	}
	rootCmd.AddCommand(showCmd)

	endCmd := &cobra.Command{
		Use:   "end <conversation-id>",
		Short: "End a conversation and delete its stored context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEndConversation(apiFlag, tenantFlag, args[0], os.Stdout)
		},
	}
	rootCmd.AddCommand(endCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
