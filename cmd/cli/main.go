package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

// bcryptGenerate is a var so tests can stub the hashing step.
var bcryptGenerate = bcrypt.GenerateFromPassword

func main() {
	rootCmd := &cobra.Command{
		Use:   "xiri-cli",
		Short: "XIRI CLI tool",
		Long:  `A command line interface for interacting with the XIRI API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the XIRI API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for authenticated calls")

	rootCmd.AddCommand(healthCmd())
	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(usersCmd())
	rootCmd.AddCommand(vendorsCmd())
	rootCmd.AddCommand(hashPasswordCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check API health",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, status, err := apiGet("/ready")
			if err != nil {
				return err
			}
			if status != http.StatusOK {
				return fmt.Errorf("API not ready (status %d): %s", status, body)
			}
			fmt.Println("API is ready")
			return nil
		},
	}
}

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and print a bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, status, err := apiPost("/api/v1/session", map[string]string{
				"email":    email,
				"password": password,
			})
			if err != nil {
				return err
			}
			if status != http.StatusOK {
				return fmt.Errorf("login failed (status %d): %s", status, body)
			}

			var result struct {
				Token string `json:"token"`
			}
			if err := json.Unmarshal(body, &result); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}
			fmt.Println(result.Token)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "User email")
	cmd.Flags().StringVar(&password, "password", "", "User password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func usersCmd() *cobra.Command {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "User operations",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, status, err := apiGet("/api/v1/users")
			if err != nil {
				return err
			}
			if status != http.StatusOK {
				return fmt.Errorf("list failed (status %d): %s", status, body)
			}

			var result struct {
				Users []struct {
					ID          string `json:"id"`
					Email       string `json:"email"`
					Role        string `json:"role"`
					TerritoryID string `json:"territory_id,omitempty"`
				} `json:"users"`
			}
			if err := json.Unmarshal(body, &result); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			for _, u := range result.Users {
				fmt.Printf("%s  %-18s %-32s %s\n", u.ID, u.Role, truncate(u.Email, 32), u.TerritoryID)
			}
			return nil
		},
	}

	var email, password, role, territoryID string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, status, err := apiPost("/api/v1/users", map[string]string{
				"email":        email,
				"password":     password,
				"role":         role,
				"territory_id": territoryID,
			})
			if err != nil {
				return err
			}
			if status != http.StatusCreated {
				return fmt.Errorf("create failed (status %d): %s", status, body)
			}

			var user map[string]any
			if err := json.Unmarshal(body, &user); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}
			printJSON(user)
			return nil
		},
	}
	createCmd.Flags().StringVar(&email, "email", "", "User email")
	createCmd.Flags().StringVar(&password, "password", "", "User password")
	createCmd.Flags().StringVar(&role, "role", "", "Role (super_admin, facility_manager, sales, recruiter, auditor)")
	createCmd.Flags().StringVar(&territoryID, "territory", "", "Territory ID")
	_ = createCmd.MarkFlagRequired("email")
	_ = createCmd.MarkFlagRequired("password")
	_ = createCmd.MarkFlagRequired("role")

	usersCmd.AddCommand(listCmd, createCmd)
	return usersCmd
}

func vendorsCmd() *cobra.Command {
	vendorsCmd := &cobra.Command{
		Use:   "vendors",
		Short: "Vendor operations",
	}

	var territoryID, trade string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List vendors",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/vendors?territory_id=" + territoryID
			if trade != "" {
				path += "&trade=" + trade
			}
			body, status, err := apiGet(path)
			if err != nil {
				return err
			}
			if status != http.StatusOK {
				return fmt.Errorf("list failed (status %d): %s", status, body)
			}

			var result struct {
				Vendors []struct {
					ID      string `json:"id"`
					Name    string `json:"name"`
					Trade   string `json:"trade"`
					ZipCode string `json:"zip_code"`
					Vetted  bool   `json:"vetted"`
				} `json:"vendors"`
			}
			if err := json.Unmarshal(body, &result); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			for _, v := range result.Vendors {
				vetted := " "
				if v.Vetted {
					vetted = "*"
				}
				fmt.Printf("%s %s %-14s %-5s %s\n", vetted, v.ID, v.Trade, v.ZipCode, truncate(v.Name, 40))
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&territoryID, "territory", "", "Territory ID")
	listCmd.Flags().StringVar(&trade, "trade", "", "Trade filter")

	vendorsCmd.AddCommand(listCmd)
	return vendorsCmd
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Hash a password for manual seeding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Println(string(hash))
			return nil
		},
	}
}

func apiGet(path string) ([]byte, int, error) {
	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		return nil, 0, err
	}
	return doRequest(req)
}

func apiPost(path string, payload any) ([]byte, int, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	return doRequest(req)
}

func doRequest(req *http.Request) ([]byte, int, error) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
