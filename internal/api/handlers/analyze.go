package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/KBRglobal/travi-final-website-sub003/internal/readtime"
)

// AnalyzeRequest is the body of POST /api/analyze. When both fields are set,
// HTML wins; when neither is set, the analysis is the zero-content result.
type AnalyzeRequest struct {
	HTML      string `json:"html,omitempty"`
	WordCount *int   `json:"word_count,omitempty"`
}

// AnalyzeResponse carries the structural counts, classifications, and
// reading times (raw minutes and display strings) for the submitted content.
type AnalyzeResponse struct {
	Words      int                 `json:"words"`
	Images     int                 `json:"images"`
	Headings   int                 `json:"headings"`
	Complexity readtime.Complexity `json:"complexity"`
	Level      readtime.Level      `json:"level"`
	Times      readtime.Times      `json:"times"`
	Formatted  map[string]string   `json:"formatted"`
}

// Analyze handles POST /api/analyze. It runs the content analyzer on the
// submitted HTML (or bare word count) without storing anything.
func Analyze() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AnalyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		var in readtime.Input
		switch {
		case req.HTML != "":
			in = readtime.HTML(req.HTML)
		case req.WordCount != nil:
			if *req.WordCount < 0 {
				writeError(w, http.StatusBadRequest, "word_count must not be negative")
				return
			}
			in = readtime.WordCount(*req.WordCount)
		default:
			// Neither field set means no content: an empty result, not
			// an error, same as the analyzer itself.
			in = readtime.WordCount(0)
		}

		analysis := readtime.Analyze(in)
		writeJSON(w, http.StatusOK, AnalyzeResponse{
			Words:      analysis.Words,
			Images:     analysis.Images,
			Headings:   analysis.Headings,
			Complexity: analysis.Complexity,
			Level:      analysis.Level,
			Times:      analysis.Times,
			Formatted:  readtime.FormatTimes(analysis.Times),
		})
	}
}
