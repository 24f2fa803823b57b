package analysis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/audiobooksmith/chapterize/internal/providers"
)

const (
	// voiceExcerptChars bounds the book excerpt in the profile prompt.
	voiceExcerptChars = 1000

	// maxCatalogVoices caps the catalog sent to the matching prompt.
	maxCatalogVoices = 100

	// DefaultVoiceRecommendations is the default top-N for matching.
	DefaultVoiceRecommendations = 5
)

// VoiceProfile describes the ideal narrator voice for a book.
type VoiceProfile struct {
	Gender         string `json:"gender"`
	AgeRange       string `json:"age_range"`
	Accent         string `json:"accent"`
	Tone           string `json:"tone"`
	VoiceQuality   string `json:"voice_quality"`
	Pacing         string `json:"pacing"`
	EmotionalRange string `json:"emotional_range"`
	Reasoning      string `json:"reasoning"`
}

// VoiceRecommendation is one matched narrator voice.
type VoiceRecommendation struct {
	Voice       providers.Voice `json:"voice"`
	MatchScore  int             `json:"match_score"`
	MatchReason string          `json:"match_reason"`
}

var voiceProfileSchema = jsonschema.MustCompileString("voice_profile.json", `{
	"type": "object",
	"required": ["gender", "age_range", "tone"],
	"properties": {
		"gender": {"type": "string"},
		"age_range": {"type": "string"},
		"accent": {"type": "string"},
		"tone": {"type": "string"},
		"voice_quality": {"type": "string"},
		"pacing": {"type": "string"},
		"emotional_range": {"type": "string"},
		"reasoning": {"type": "string"}
	}
}`)

var voiceMatchSchema = jsonschema.MustCompileString("voice_match.json", `{
	"type": "object",
	"required": ["recommendations"],
	"properties": {
		"recommendations": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["voice_id"],
				"properties": {
					"voice_id": {"type": "string"},
					"match_score": {"type": "integer"},
					"match_reason": {"type": "string"}
				}
			}
		}
	}
}`)

const voiceProfileSystemPrompt = "You are an expert audiobook producer who recommends ideal narrator voices for books."

const voiceProfilePromptTemplate = `Analyze this book and recommend the ideal audiobook narrator voice characteristics.

Book Information:
- Title: %s
- Genre: %s
- Author: %s
- Narrative tone: %s

Book Excerpt (first paragraphs):
%s

Based on this information, recommend the ideal voice characteristics for the audiobook narrator:

1. Gender (male/female/neutral)
2. Age range (young adult, middle-aged, mature, elderly)
3. Accent (American, British, Australian, Irish, etc.)
4. Tone (warm, professional, energetic, calm, authoritative, empathetic)
5. Voice quality (deep, high, raspy, smooth, clear)
6. Pacing (slow, moderate, fast)
7. Emotional range (dramatic, subtle, expressive, neutral)

Return ONLY a JSON object with these exact keys:
{
    "gender": "male/female/neutral",
    "age_range": "young adult/middle-aged/mature/elderly",
    "accent": "American/British/etc",
    "tone": "warm, empathetic",
    "voice_quality": "deep, smooth",
    "pacing": "moderate",
    "emotional_range": "expressive",
    "reasoning": "Brief explanation of why these characteristics fit this book"
}`

const voiceMatchSystemPrompt = "You are an expert at matching narrator voices to books based on voice characteristics."

const voiceMatchPromptTemplate = `You are matching audiobook narrator voices to a book's requirements.

Required Voice Characteristics:
%s

Available Voices:
%s

Analyze each voice and select the TOP %d voices that best match the required characteristics.
Consider: gender, accent, age, tone, and description.

Return ONLY a JSON object with the top %d voice IDs in order of best match:
{
    "recommendations": [
        {
            "voice_id": "voice_id_here",
            "match_score": 95,
            "match_reason": "Why this voice fits"
        }
    ]
}`

// defaultVoiceProfile is used when profile analysis fails.
func defaultVoiceProfile() *VoiceProfile {
	return &VoiceProfile{
		Gender:         "neutral",
		AgeRange:       "middle-aged",
		Accent:         "American",
		Tone:           "professional",
		VoiceQuality:   "clear",
		Pacing:         "moderate",
		EmotionalRange: "balanced",
		Reasoning:      "Default recommendation due to analysis error",
	}
}

// IdealVoiceProfile determines the ideal narrator characteristics for a
// book from its metadata and opening excerpt.
func (a *Analyzer) IdealVoiceProfile(ctx context.Context, meta *BookMetadata, excerpt string) (*VoiceProfile, error) {
	if meta == nil {
		meta = defaultMetadata()
	}
	prompt := fmt.Sprintf(voiceProfilePromptTemplate,
		meta.Title, meta.Genre, meta.Author, meta.NarrativeTone,
		truncate(excerpt, voiceExcerptChars))

	result, err := a.llm.Chat(ctx, &providers.ChatRequest{
		Messages: []providers.Message{
			{Role: "system", Content: voiceProfileSystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature:  0.3,
		JSONResponse: true,
	})
	if err != nil {
		a.log.Warn("voice profile call failed", "error", err)
		return defaultVoiceProfile(), nil
	}

	var profile VoiceProfile
	if err := decodeValidated(result.Content, voiceProfileSchema, &profile); err != nil {
		a.log.Warn("voice profile response unparseable", "error", err)
		return defaultVoiceProfile(), nil
	}
	return &profile, nil
}

// MatchVoices selects the top-N catalog voices for the profile. The model
// picks IDs; the catalog entries themselves come from the provider, so a
// hallucinated ID simply drops out during enrichment. On failure the first
// N catalog voices are returned unranked.
func (a *Analyzer) MatchVoices(ctx context.Context, profile *VoiceProfile, catalog []providers.Voice, topN int) ([]VoiceRecommendation, error) {
	if topN <= 0 {
		topN = DefaultVoiceRecommendations
	}
	if len(catalog) == 0 {
		return nil, nil
	}

	limited := catalog
	if len(limited) > maxCatalogVoices {
		limited = limited[:maxCatalogVoices]
	}

	profileJSON, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode voice profile: %w", err)
	}
	catalogJSON, err := json.MarshalIndent(limited, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode voice catalog: %w", err)
	}

	result, err := a.llm.Chat(ctx, &providers.ChatRequest{
		Messages: []providers.Message{
			{Role: "system", Content: voiceMatchSystemPrompt},
			{Role: "user", Content: fmt.Sprintf(voiceMatchPromptTemplate,
				profileJSON, catalogJSON, topN, topN)},
		},
		Temperature:  0.2,
		JSONResponse: true,
	})
	if err != nil {
		a.log.Warn("voice matching call failed, using catalog order", "error", err)
		return fallbackRecommendations(catalog, topN), nil
	}

	var parsed struct {
		Recommendations []struct {
			VoiceID     string `json:"voice_id"`
			MatchScore  int    `json:"match_score"`
			MatchReason string `json:"match_reason"`
		} `json:"recommendations"`
	}
	if err := decodeValidated(result.Content, voiceMatchSchema, &parsed); err != nil {
		a.log.Warn("voice matching response unparseable, using catalog order", "error", err)
		return fallbackRecommendations(catalog, topN), nil
	}

	byID := make(map[string]providers.Voice, len(catalog))
	for _, v := range catalog {
		byID[v.VoiceID] = v
	}

	var recs []VoiceRecommendation
	for _, r := range parsed.Recommendations {
		if len(recs) == topN {
			break
		}
		voice, ok := byID[r.VoiceID]
		if !ok {
			a.log.Debug("model recommended unknown voice id", "voice_id", r.VoiceID)
			continue
		}
		recs = append(recs, VoiceRecommendation{
			Voice:       voice,
			MatchScore:  r.MatchScore,
			MatchReason: r.MatchReason,
		})
	}

	if len(recs) == 0 {
		return fallbackRecommendations(catalog, topN), nil
	}
	return recs, nil
}

func fallbackRecommendations(catalog []providers.Voice, topN int) []VoiceRecommendation {
	if topN > len(catalog) {
		topN = len(catalog)
	}
	recs := make([]VoiceRecommendation, 0, topN)
	for _, v := range catalog[:topN] {
		recs = append(recs, VoiceRecommendation{Voice: v})
	}
	return recs
}
