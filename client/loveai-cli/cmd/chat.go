package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
)

var streamReply bool

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Ask the dating advisor a question",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if streamReply {
			chatStream(args[0])
		} else {
			chat(args[0])
		}
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the advisor conversation history",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		showHistory()
	},
}

var clearHistoryCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the advisor conversation history",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		clearHistory()
	},
}

func init() {
	chatCmd.Flags().BoolVar(&streamReply, "stream", false, "render the reply word by word as it arrives")
	rootCmd.AddCommand(chatCmd)
	historyCmd.AddCommand(clearHistoryCmd)
	rootCmd.AddCommand(historyCmd)
}

func authorizedRequest(method, url string, body []byte) (*http.Request, error) {
	token, err := loadToken()
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(method, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func chat(message string) {
	jsonPayload, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		log.Fatalf("Error creating JSON payload: %v", err)
	}

	req, err := authorizedRequest(http.MethodPost, advisorServer+"/api/v1/chat", jsonPayload)
	if err != nil {
		log.Fatalf("%v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("Error sending message: %v", err)
	}
	defer resp.Body.Close()

	var result map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Fatalf("Error decoding response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("Advisor error: %s", result["error"])
	}

	fmt.Println(result["reply"])
}

func chatStream(message string) {
	jsonPayload, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		log.Fatalf("Error creating JSON payload: %v", err)
	}

	req, err := authorizedRequest(http.MethodPost, advisorServer+"/api/v1/chat/stream", jsonPayload)
	if err != nil {
		log.Fatalf("%v", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("Error sending message: %v", err)
	}
	defer resp.Body.Close()

	// Read the SSE stream: each event is an "event:" line followed by a
	// "data:" line. Chunks are printed as they arrive.
	scanner := bufio.NewScanner(resp.Body)
	event := ""
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data := strings.TrimPrefix(line, "data:")
			switch event {
			case "chunk":
				fmt.Print(data)
			case "error":
				fmt.Println()
				log.Fatalf("Advisor error: %s", data)
			case "done":
				fmt.Println()
				return
			}
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("Stream read error: %v", err)
	}
	fmt.Println()
}

func showHistory() {
	req, err := authorizedRequest(http.MethodGet, advisorServer+"/api/v1/chat/history", nil)
	if err != nil {
		log.Fatalf("%v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("Error fetching history: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("Failed to fetch history, status code: %d", resp.StatusCode)
	}

	var history []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&history); err != nil {
		log.Fatalf("Error decoding response: %v", err)
	}

	for _, msg := range history {
		fmt.Printf("[%s] %s\n", msg.Role, msg.Content)
	}
}

func clearHistory() {
	req, err := authorizedRequest(http.MethodDelete, advisorServer+"/api/v1/chat/history", nil)
	if err != nil {
		log.Fatalf("%v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("Error clearing history: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		log.Fatalf("Failed to clear history, status code: %d", resp.StatusCode)
	}
	fmt.Println("History cleared.")
}
