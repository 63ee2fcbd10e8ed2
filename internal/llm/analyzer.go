package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Analysis is the structured metadata extracted from one poem.
type Analysis struct {
	Themes        []string       `json:"themes"`
	Imagery       []string       `json:"imagery"`
	Emotions      []string       `json:"emotions"`
	SoundDevices  []string       `json:"sound_devices"`
	SoundMetadata map[string]any `json:"sound_metadata"`
	Structure     LineMetrics    `json:"-"`
}

// LineMetrics are structural counts derived directly from the text, no
// model involved.
type LineMetrics struct {
	LineCount    int
	LineLengths  []int
	StanzaBreaks []int
	TotalWords   int
}

// Analyzer extracts poem metadata.
type Analyzer interface {
	AnalyzePoem(ctx context.Context, title, text string) (Analysis, error)
}

const analyzerPersona = "You are an expert poetry analyst. Extract structured metadata from poems."

// AnalyzePoem asks the model for themes, imagery, emotions, and sound
// devices, then overlays exact line metrics computed locally.
func (c *Client) AnalyzePoem(ctx context.Context, title, text string) (Analysis, error) {
	content, err := c.Chat(ctx, ChatRequest{
		Messages: []Message{
			{Role: "system", Content: analyzerPersona},
			{Role: "user", Content: analysisPrompt(title, text)},
		},
		Temperature:    0.3,
		MaxTokens:      2000,
		ResponseFormat: "json_object",
	})
	if err != nil {
		return Analysis{}, fmt.Errorf("analyzing poem: %w", err)
	}

	analysis, err := ParseAnalysis(content)
	if err != nil {
		return Analysis{}, fmt.Errorf("analyzing poem: %w", err)
	}
	analysis.Structure = MeasureLines(text)
	return analysis, nil
}

func analysisPrompt(title, text string) string {
	titled := ""
	if title != "" {
		titled = fmt.Sprintf(" titled %q", title)
	}
	return fmt.Sprintf(`Analyze this poem and extract the following elements. Return your response as a JSON object.

Poem%s:
%s

Extract the following:

1. themes: 3-5 main themes (e.g., "urban_life", "transition", "isolation", "hope")
2. imagery: 5-10 key images and symbols (e.g., "dawn", "concrete", "water", "birds")
3. emotions: 2-4 primary emotions conveyed (e.g., "contemplative", "peaceful", "tense")
4. sound_devices: all sound devices used (alliteration, end_rhyme, internal_rhyme, slant_rhyme, repetition, anaphora, assonance, consonance, onomatopoeia)
5. sound_metadata: alliteration_density, rhyme_type, repetition_phrases, dominant_sounds

Return ONLY a valid JSON object with these keys. No markdown, no explanation, just JSON.`, titled, text)
}

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*\\})\\s*```")

// ParseAnalysis decodes the model's JSON, tolerating a fenced code block.
func ParseAnalysis(content string) (Analysis, error) {
	raw := strings.TrimSpace(content)
	if m := fencedJSON.FindStringSubmatch(raw); m != nil {
		raw = m[1]
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return Analysis{}, fmt.Errorf("parsing analysis response: %w", err)
	}
	return analysis, nil
}

// MeasureLines computes exact structural metrics: non-empty line count,
// per-line syllable estimates, and lines per stanza.
func MeasureLines(text string) LineMetrics {
	var metrics LineMetrics
	stanzaLength := 0
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if strings.TrimSpace(line) == "" {
			if stanzaLength > 0 {
				metrics.StanzaBreaks = append(metrics.StanzaBreaks, stanzaLength)
				stanzaLength = 0
			}
			continue
		}
		metrics.LineCount++
		stanzaLength++
		metrics.LineLengths = append(metrics.LineLengths, estimateSyllables(line))
		metrics.TotalWords += len(strings.Fields(line))
	}
	if stanzaLength > 0 {
		metrics.StanzaBreaks = append(metrics.StanzaBreaks, stanzaLength)
	}
	// A single stanza carries no break information.
	if len(metrics.StanzaBreaks) < 2 {
		metrics.StanzaBreaks = nil
	}
	return metrics
}

// estimateSyllables counts vowel groups as a rough syllable proxy.
func estimateSyllables(line string) int {
	count := 0
	previousVowel := false
	for _, r := range strings.ToLower(line) {
		isVowel := strings.ContainsRune("aeiouy", r)
		if isVowel && !previousVowel {
			count++
		}
		previousVowel = isVowel
	}
	return count
}
