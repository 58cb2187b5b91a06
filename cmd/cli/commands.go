package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var searchPosition string

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(metricsCmd)

	searchCmd.Flags().StringVar(&searchPosition, "position", "", "Restrict the search to one position group")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/health")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players <position>",
	Short: "List players at a position (QB, RB, WR, TE, K, LB, DL, DB or DEF)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/players/" + url.PathEscape(args[0]))
	},
}

var teamCmd = &cobra.Command{
	Use:   "team <teamCode>",
	Short: "List every player on a team",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/teams/" + url.PathEscape(args[0]) + "/players")
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Search players by name substring",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		params.Set("name", args[0])
		if searchPosition != "" {
			params.Set("position", searchPosition)
		}
		return performGetRequest("/api/search?" + params.Encode())
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

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
