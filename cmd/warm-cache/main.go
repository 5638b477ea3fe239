// warm-cache pre-translates chapter files through a running translation
// server so readers hit a warm cache.
//
// Usage: go run main.go -server=http://localhost:8080 -language=urdu <chapter files...>
//
// Each file's name (without extension) is used as the chapter ID. The tool
// reports per-chapter cache status and latency as it goes.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const requestTimeout = 5 * time.Minute

type translateRequest struct {
	Content        string `json:"content"`
	TargetLanguage string `json:"target_language"`
}

type translateResponse struct {
	ChapterID string `json:"chapter_id"`
	Language  string `json:"language"`
	Cached    bool   `json:"cached"`
	LatencyMs int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

func main() {
	server := flag.String("server", "http://localhost:8080", "Translation server base URL")
	language := flag.String("language", "urdu", "Target language to warm")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: warm-cache [-server=URL] [-language=LANG] <chapter files...>")
		os.Exit(1)
	}

	client := &http.Client{Timeout: requestTimeout}

	warmed, failed := 0, 0
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			log.Printf("Skipping %s: %v", file, err)
			failed++
			continue
		}

		chapterID := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		resp, err := translateChapter(client, *server, chapterID, string(content), *language)
		if err != nil {
			log.Printf("Failed %s: %v", chapterID, err)
			failed++
			continue
		}

		status := "translated"
		if resp.Cached {
			status = "already cached"
		}
		log.Printf("Chapter %s: %s in %dms", chapterID, status, resp.LatencyMs)
		warmed++
	}

	log.Printf("Done: %d warmed, %d failed", warmed, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func translateChapter(client *http.Client, server, chapterID, content, language string) (*translateResponse, error) {
	reqJSON, err := json.Marshal(translateRequest{
		Content:        content,
		TargetLanguage: language,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/chapters/%s/translate", strings.TrimSuffix(server, "/"), chapterID)
	resp, err := client.Post(url, "application/json", bytes.NewReader(reqJSON))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var result translateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if result.Error != "" {
			return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, result.Error)
		}
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	return &result, nil
}
