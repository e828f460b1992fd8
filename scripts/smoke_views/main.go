// Command smoke_views loads a schedule result file into a running API
// instance and exercises every derived view, reporting status and latency.
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
	"time"
)

type loadData struct {
	ScheduleID    string `json:"scheduleId"`
	DetailMissing bool   `json:"detailMissing"`
}

type loadEnvelope struct {
	Data  loadData        `json:"data"`
	Error json.RawMessage `json:"error"`
}

type probe struct {
	Name     string
	Path     string
	Status   int
	Duration time.Duration
	Error    error
}

func main() {
	var (
		base       string
		resultPath string
		timeout    time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080/api/v1", "API base URL")
	flag.StringVar(&resultPath, "result", "result.json", "Path to a schedule result JSON file")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "HTTP client timeout")
	flag.Parse()

	payload, err := os.ReadFile(resultPath)
	if err != nil {
		log.Fatalf("failed to read result file: %v", err)
	}

	client := &http.Client{Timeout: timeout}

	id, err := loadResult(client, base, payload)
	if err != nil {
		log.Fatalf("failed to load schedule result: %v", err)
	}
	fmt.Printf("loaded schedule %s\n", id)

	views := []string{"grid", "density", "stats", "conflicts", "exams"}
	failures := 0
	for _, view := range views {
		p := probeView(client, fmt.Sprintf("%s/schedules/%s/%s", base, id, view), view)
		if p.Error != nil || p.Status != http.StatusOK {
			failures++
		}
		printProbe(p)
	}

	fmt.Printf("views checked: %d, failures: %d\n", len(views), failures)
	if failures > 0 {
		os.Exit(1)
	}
}

func loadResult(client *http.Client, base string, payload []byte) (string, error) {
	resp, err := client.Post(base+"/schedules", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}

	var envelope loadEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", err
	}
	if envelope.Data.ScheduleID == "" {
		return "", fmt.Errorf("response carried no schedule id: %s", body)
	}
	if envelope.Data.DetailMissing {
		fmt.Println("note: conflict detail missing, report totals only")
	}
	return envelope.Data.ScheduleID, nil
}

func probeView(client *http.Client, url, name string) probe {
	p := probe{Name: name, Path: url}
	start := time.Now()
	resp, err := client.Get(url)
	p.Duration = time.Since(start)
	if err != nil {
		p.Error = err
		return p
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	p.Status = resp.StatusCode
	return p
}

func printProbe(p probe) {
	if p.Error != nil {
		fmt.Printf("  %-10s FAIL %v\n", p.Name, p.Error)
		return
	}
	fmt.Printf("  %-10s %d %s\n", p.Name, p.Status, p.Duration.Round(time.Millisecond))
}
