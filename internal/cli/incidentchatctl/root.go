// Package incidentchatctl implements the operator CLI for the incident chat
// service. Commands talk to the HTTP API; nothing here touches the database
// or the model directly.
package incidentchatctl

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the incidentchatctl command tree. Flags default from
// the supplied options so the binary can seed them from the environment.
func NewRootCommand(defaults Options) *cobra.Command {
	opts := defaults.normalized()

	root := &cobra.Command{
		Use:           "incidentchatctl",
		Short:         "Operator CLI for the incident chat service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(opts.Stdout)
	root.SetErr(opts.Stderr)

	root.PersistentFlags().StringVar(&opts.BaseURL, "base-url", opts.BaseURL, "incident chat API base URL")
	root.PersistentFlags().StringVar(&opts.APIKey, "api-key", opts.APIKey, "API key for authenticated requests")
	root.PersistentFlags().StringVar(&opts.ClientID, "client-id", opts.ClientID, "client identifier recorded in chat history")

	root.AddCommand(
		newAskCommand(&opts),
		newGenerateCommand(&opts),
		newHistoryCommand(&opts),
		newDashboardCommand(&opts),
		newHealthCommand(&opts),
	)
	return root
}

func newAskCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question and print the assistant's answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient(*opts)
			var resp struct {
				Answer     string `json:"answer"`
				SQL        string `json:"sql"`
				Status     string `json:"status"`
				ResponseMS int64  `json:"response_ms"`
			}
			payload := map[string]string{"question": strings.Join(args, " ")}
			if err := client.post(cmd.Context(), "/v1/chat", payload, &resp); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), resp.Answer)
			if resp.SQL != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "\n%s %s\n", color.CyanString("sql:"), resp.SQL)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%dms)\n", color.CyanString("status:"), statusColored(resp.Status), resp.ResponseMS)
			return nil
		},
	}
}

func newGenerateCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <question>",
		Short: "Print the SQL a question would run, without executing it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient(*opts)
			var resp struct {
				SQL string `json:"sql"`
			}
			payload := map[string]string{"question": strings.Join(args, " ")}
			if err := client.post(cmd.Context(), "/v1/sql/generate", payload, &resp); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.SQL)
			return nil
		},
	}
}

func newHistoryCommand(opts *Options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent chat history for this client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient(*opts)
			var resp struct {
				Entries []struct {
					Question   string `json:"question"`
					Status     string `json:"status"`
					ResponseMS int64  `json:"response_ms"`
					CreatedAt  string `json:"created_at"`
				} `json:"entries"`
			}
			if err := client.get(cmd.Context(), fmt.Sprintf("/v1/history?limit=%d", limit), &resp); err != nil {
				return err
			}
			if len(resp.Entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No history yet.")
				return nil
			}

			table := newTable(cmd)
			table.SetHeader([]string{"When", "Status", "MS", "Question"})
			for _, entry := range resp.Entries {
				table.Append([]string{
					entry.CreatedAt,
					statusColored(entry.Status),
					fmt.Sprintf("%d", entry.ResponseMS),
					entry.Question,
				})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 25, "maximum number of entries")
	return cmd
}

func newDashboardCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show ticket status distribution and overdue count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient(*opts)

			var summary struct {
				Statuses []struct {
					Status string `json:"status"`
					Total  int    `json:"total"`
				} `json:"statuses"`
			}
			if err := client.get(cmd.Context(), "/v1/dashboard/status-summary", &summary); err != nil {
				return err
			}

			table := newTable(cmd)
			table.SetHeader([]string{"Status", "Total"})
			for _, row := range summary.Statuses {
				table.Append([]string{row.Status, fmt.Sprintf("%d", row.Total)})
			}
			table.Render()

			var overdue struct {
				Overdue int `json:"overdue"`
			}
			if err := client.get(cmd.Context(), "/v1/dashboard/overdue", &overdue); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nOverdue pending cases (>7 days): %d\n", overdue.Overdue)
			return nil
		},
	}
}

func newHealthCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check service liveness and readiness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient(*opts)
			if err := client.get(cmd.Context(), "/v1/health", nil); err != nil {
				return fmt.Errorf("health: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "health: %s\n", color.GreenString("ok"))
			if err := client.get(cmd.Context(), "/v1/ready", nil); err != nil {
				return fmt.Errorf("ready: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ready:  %s\n", color.GreenString("ok"))
			return nil
		},
	}
}

func newTable(cmd *cobra.Command) *tablewriter.Table {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	return table
}

func statusColored(status string) string {
	switch status {
	case "success":
		return color.GreenString(status)
	case "error":
		return color.RedString(status)
	default:
		return status
	}
}
