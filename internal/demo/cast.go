package demo

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
	"time"
)

// clearScreen homes the cursor and wipes the terminal before each frame.
const clearScreen = "\x1b[H\x1b[2J"

type castHeader struct {
	Version   int               `json:"version"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Timestamp int64             `json:"timestamp,omitempty"`
	Title     string            `json:"title,omitempty"`
	Env       map[string]string `json:"env,omitempty"`
}

// GenerateASCIICast writes frames as an asciinema v2 recording. Each frame
// is drawn from a cleared screen once its delay has passed. Annotations
// become markers.
func GenerateASCIICast(w io.Writer, frames []Frame, width, height int) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)

	header := castHeader{
		Version:   2,
		Width:     width,
		Height:    height,
		Timestamp: time.Now().Unix(),
		Env:       map[string]string{"TERM": "xterm-256color"},
	}
	if err := enc.Encode(header); err != nil {
		return err
	}

	var elapsed time.Duration
	for _, f := range frames {
		elapsed += f.Delay
		at := elapsed.Seconds()
		if f.Annotation != "" {
			if err := enc.Encode([]any{at, "m", f.Annotation}); err != nil {
				return err
			}
		}
		// Terminals need CRLF; rendered frames only carry LF
		content := strings.ReplaceAll(f.Content, "\n", "\r\n")
		if err := enc.Encode([]any{at, "o", clearScreen + content}); err != nil {
			return err
		}
	}
	return bw.Flush()
}
