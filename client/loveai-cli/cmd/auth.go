package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register [email] [password]",
	Short: "Create a new LoveAI account",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		register(args[0], args[1])
	},
}

var loginCmd = &cobra.Command{
	Use:   "login [email] [password]",
	Short: "Log in and cache an access token",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		login(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
}

func register(email, password string) {
	payload := map[string]string{"email": email, "password": password}
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		log.Fatalf("Error creating JSON payload: %v", err)
	}

	resp, err := http.Post(userServer+"/api/v1/auth/register", "application/json", bytes.NewBuffer(jsonPayload))
	if err != nil {
		log.Fatalf("Error registering: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("Failed to register, status code: %d", resp.StatusCode)
	}

	fmt.Println("Account created. Log in with: loveai-cli login", email, "<password>")
}

func login(email, password string) {
	payload := map[string]string{"email": email, "password": password}
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		log.Fatalf("Error creating JSON payload: %v", err)
	}

	resp, err := http.Post(userServer+"/api/v1/auth/login", "application/json", bytes.NewBuffer(jsonPayload))
	if err != nil {
		log.Fatalf("Error logging in: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("Failed to log in, status code: %d", resp.StatusCode)
	}

	var result map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Fatalf("Error decoding response: %v", err)
	}

	if err := saveToken(result["token"]); err != nil {
		log.Fatalf("Error saving token: %v", err)
	}
	fmt.Println("Logged in successfully.")
}
