package analysis

import (
	"encoding/json"
	"strings"
)

const (
	dataPrefix   = "data:"
	doneSentinel = "[DONE]"
)

// ChunkKind tags how a streamed line was classified.
type ChunkKind int

const (
	PlainText ChunkKind = iota
	StructuredCandidate
	UnknownJSON
	ErrorNotice
)

func (k ChunkKind) String() string {
	switch k {
	case PlainText:
		return "plain_text"
	case StructuredCandidate:
		return "structured_candidate"
	case UnknownJSON:
		return "unknown_json"
	case ErrorNotice:
		return "error"
	default:
		return "unknown"
	}
}

// Chunk is one decoded increment of an analysis stream.
type Chunk struct {
	Kind ChunkKind `json:"kind"`
	Text string    `json:"text"`
}

// Decode classifies a single line of the analysis stream. done is true for the
// termination sentinel; ok is false for lines that carry nothing to deliver.
func Decode(line string) (chunk Chunk, done bool, ok bool) {
	payload := strings.TrimSpace(line)
	if payload == "" {
		return Chunk{}, false, false
	}
	if strings.HasPrefix(payload, dataPrefix) {
		payload = strings.TrimSpace(strings.TrimPrefix(payload, dataPrefix))
		if payload == "" {
			return Chunk{}, false, false
		}
	}
	if payload == doneSentinel {
		return Chunk{}, true, false
	}

	if strings.HasPrefix(payload, "{") {
		var doc map[string]any
		if err := json.Unmarshal([]byte(payload), &doc); err == nil {
			if text, found := candidateText(doc); found {
				return Chunk{Kind: StructuredCandidate, Text: text}, false, true
			}
			if encoded, err := json.Marshal(doc); err == nil {
				return Chunk{Kind: UnknownJSON, Text: string(encoded)}, false, true
			}
		}
	}
	return Chunk{Kind: PlainText, Text: payload + "\n"}, false, true
}

// candidateText walks candidates[0].content.parts[0].text. An empty text
// counts as missing.
func candidateText(doc map[string]any) (string, bool) {
	candidates, ok := doc["candidates"].([]any)
	if !ok || len(candidates) == 0 {
		return "", false
	}
	first, ok := candidates[0].(map[string]any)
	if !ok {
		return "", false
	}
	content, ok := first["content"].(map[string]any)
	if !ok {
		return "", false
	}
	parts, ok := content["parts"].([]any)
	if !ok || len(parts) == 0 {
		return "", false
	}
	part, ok := parts[0].(map[string]any)
	if !ok {
		return "", false
	}
	text, ok := part["text"].(string)
	return text, ok && text != ""
}
