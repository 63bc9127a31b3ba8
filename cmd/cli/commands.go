package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var leaderboardCategory string

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(tournamentsCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(metricsCmd)

	leaderboardCmd.Flags().StringVar(&leaderboardCategory, "category", "", "Category filter (e.g. ATP-500, Grand Slam)")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Trigger a sync cycle against the spreadsheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/sync")
	},
}

var tournamentsCmd = &cobra.Command{
	Use:   "tournaments",
	Short: "List the known tournaments",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/tournaments")
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the global leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/leaderboard"
		if leaderboardCategory != "" {
			endpoint += "?category=" + url.QueryEscape(leaderboardCategory)
		}
		return performGetRequest(endpoint)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, "application/json", nil)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
