package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/cashflow/internal/adapter/http/dto"
	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/infrastructure/config"
	"github.com/iho/cashflow/internal/infrastructure/logger"
	"github.com/iho/cashflow/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
)

// Swapped in tests.
var (
	migrateUp   = postgres.RunMigrations
	migrateDown = postgres.RunMigrationsDown
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cashflow-cli",
		Short:         "Cashflow CLI tool",
		Long:          `A command line interface for the cashflow consolidation service.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the consolidation API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	rootCmd.AddCommand(reconcileCmd(), consolidationCmd(), migrateCmd())
	return rootCmd
}

func reconcileCmd() *cobra.Command {
	var start, end, merchant string

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Fold unconsolidated ledger entries of a date window",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := newReconcileRequest(start, end, merchant)
			if err != nil {
				return err
			}

			var result dto.ReconciliationResponse
			if err := doJSON(http.MethodPost, "/api/v1/consolidations/reconcile", req, &result); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "First day of the window (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Last day of the window (YYYY-MM-DD), defaults to --start")
	cmd.Flags().StringVar(&merchant, "merchant", "", "Restrict to one merchant")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}

func newReconcileRequest(start, end, merchant string) (*dto.ReconcileRequest, error) {
	if end == "" {
		end = start
	}
	s, err := domain.ParseCalendarDate(start)
	if err != nil {
		return nil, err
	}
	e, err := domain.ParseCalendarDate(end)
	if err != nil {
		return nil, err
	}
	return &dto.ReconcileRequest{StartDate: s, EndDate: e, Merchant: merchant}, nil
}

func consolidationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consolidation",
		Short: "Consolidation queries",
	}

	getCmd := &cobra.Command{
		Use:   "get <merchant> <date>",
		Short: "Show one daily consolidation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/consolidations/" + url.PathEscape(args[0]) + "/" + url.PathEscape(args[1])
			var result dto.ConsolidationResponse
			if err := doJSON(http.MethodGet, path, nil, &result); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	var start, end, merchant string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List consolidations of a date window",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []dto.ConsolidationResponse
			if err := doJSON(http.MethodGet, "/api/v1/consolidations?"+periodQuery(start, end, merchant), nil, &result); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	listCmd.Flags().StringVar(&start, "start", "", "First day (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&end, "end", "", "Last day (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&merchant, "merchant", "", "Restrict to one merchant")
	_ = listCmd.MarkFlagRequired("start")
	_ = listCmd.MarkFlagRequired("end")

	statusCmd := &cobra.Command{
		Use:   "status <date>",
		Short: "Show totals across merchants for one day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result dto.DailyStatusResponse
			if err := doJSON(http.MethodGet, "/api/v1/consolidations/status/"+url.PathEscape(args[0]), nil, &result); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.AddCommand(getCmd, listCmd, statusCmd)
	return cmd
}

func periodQuery(start, end, merchant string) string {
	q := url.Values{}
	q.Set("startDate", start)
	q.Set("endDate", end)
	if merchant != "" {
		q.Set("merchant", merchant)
	}
	return q.Encode()
}

func migrateCmd() *cobra.Command {
	var databaseURL, migrationsPath string

	cmd := &cobra.Command{
		Use:       "migrate <up|down>",
		Short:     "Apply or roll back the consolidation schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if databaseURL == "" {
				databaseURL = cfg.DatabaseURL
			}
			if migrationsPath == "" {
				migrationsPath = cfg.MigrationsPath
			}

			log := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console", Service: "cli", Output: cmd.ErrOrStderr()})
			return runMigrate(args[0], databaseURL, migrationsPath, log)
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", "", "PostgreSQL URL, defaults to DATABASE_URL")
	cmd.Flags().StringVar(&migrationsPath, "migrations", "", "Migrations source, defaults to MIGRATIONS_PATH")
	return cmd
}

func runMigrate(direction, databaseURL, migrationsPath string, log zerolog.Logger) error {
	switch direction {
	case "up":
		return migrateUp(databaseURL, migrationsPath, log)
	case "down":
		return migrateDown(databaseURL, migrationsPath, log)
	default:
		return fmt.Errorf("unknown migrate direction %q", direction)
	}
}

func doJSON(method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr dto.ErrorResponse
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s (status %d)", apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(data), 200))
	}

	return json.Unmarshal(data, out)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
