package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/megasoby/shop-agent/pkg/agent"
)

var (
	serverURL = flag.String("server", "http://localhost:8080", "Agent service base URL")
	userID    = flag.String("user", "", "User ID for conversation history")
	topK      = flag.Int("top-k", agent.DefaultTopK, "Number of products to retrieve per question")
	timeout   = flag.Duration("timeout", 90*time.Second, "Per-request timeout")
)

type chatRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"topK"`
	UserID   string `json:"userId,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func main() {
	flag.Parse()

	httpClient := &http.Client{Timeout: *timeout}
	endpoint := strings.TrimRight(*serverURL, "/") + "/api/agent/chat"

	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	fmt.Println(boldGreen("🛒 Shop Agent Chat"))
	fmt.Printf("Server: %s\n", boldCyan(*serverURL))
	fmt.Println("Type your question and press Enter. Type 'exit' or press Ctrl+C to quit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(boldGreen("You: "))
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if strings.EqualFold(question, "exit") {
			break
		}

		answer, err := ask(httpClient, endpoint, question)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Println("\nMake sure the agent service is running: agent-service -config config.yaml")
			continue
		}

		fmt.Print(boldCyan("Agent: "))
		fmt.Println(answer.Answer)
		fmt.Println(dim(fmt.Sprintf("(%d products, %dms)", len(answer.Products), answer.ElapsedMillis)))
		fmt.Println()
	}
}

func ask(client *http.Client, endpoint, question string) (*agent.ProductAnswer, error) {
	body, err := json.Marshal(chatRequest{Question: question, TopK: *topK, UserID: *userID})
	if err != nil {
		return nil, err
	}

	resp, err := client.Post(endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if json.Unmarshal(data, &errResp) == nil && errResp.Error != "" {
			return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, errResp.Error)
		}
		return nil, fmt.Errorf("server returned %d", resp.StatusCode)
	}

	var answer agent.ProductAnswer
	if err := json.Unmarshal(data, &answer); err != nil {
		return nil, fmt.Errorf("malformed response: %w", err)
	}
	return &answer, nil
}
