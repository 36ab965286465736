package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var (
	userServer    string
	advisorServer string
)

var rootCmd = &cobra.Command{
	Use:   "loveai-cli",
	Short: "A CLI client to interact with the LoveAI services",
	Long:  `A command-line interface for logging in to LoveAI and chatting with the dating advisor.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI: %s", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&userServer, "user-server", "http://localhost:8081", "base URL of the user service")
	rootCmd.PersistentFlags().StringVar(&advisorServer, "advisor-server", "http://localhost:8083", "base URL of the advisor service")
}

// tokenPath is where the login token is cached between invocations.
func tokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".loveai-token"
	}
	return filepath.Join(home, ".loveai-token")
}

func saveToken(token string) error {
	return os.WriteFile(tokenPath(), []byte(token), 0600)
}

func loadToken() (string, error) {
	data, err := os.ReadFile(tokenPath())
	if err != nil {
		return "", fmt.Errorf("not logged in, run: loveai-cli login (%w)", err)
	}
	return strings.TrimSpace(string(data)), nil
}
