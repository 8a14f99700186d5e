package locate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/pkordes/ecodrive/internal/domain"
)

// DefaultGeminiModel is used when no model name is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

// generator is the slice of *genai.GenerativeModel this package uses.
// Tests substitute canned responses.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Gemini resolves places and distances by asking a Gemini model.
type Gemini struct {
	client   *genai.Client
	places   generator
	distance generator
	log      *slog.Logger
}

// NewGemini creates a Gemini client for apiKey. Place searches run on a
// JSON-mode model; distance questions on a plain-text model at temperature 0
// so the same question keeps getting the same number.
func NewGemini(ctx context.Context, apiKey, model string, log *slog.Logger) (*Gemini, error) {
	if model == "" {
		model = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("locate.NewGemini: %w", err)
	}

	places := client.GenerativeModel(model)
	places.ResponseMIMEType = "application/json"
	places.SetTemperature(0.2)

	distance := client.GenerativeModel(model)
	distance.SetTemperature(0)

	return &Gemini{client: client, places: places, distance: distance, log: log}, nil
}

// Close releases the underlying client.
func (g *Gemini) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

// placesAnswer is the JSON shape the place prompt asks for.
type placesAnswer struct {
	Summary string `json:"summary"`
	Places  []struct {
		Name    string `json:"name"`
		Address string `json:"address"`
		URI     string `json:"uri"`
	} `json:"places"`
}

// SearchPlaces implements Locator.
func (g *Gemini) SearchPlaces(ctx context.Context, query string, coords *domain.Coords) domain.SearchResponse {
	resp, err := g.places.GenerateContent(ctx, genai.Text(placesPrompt(query, coords)))
	if err != nil {
		g.log.WarnContext(ctx, "gemini place search failed", "query", query, "error", err)
		return failedSearch(SummaryUnavailable)
	}

	text, ok := responseText(resp)
	if !ok {
		return failedSearch(SummaryEmpty)
	}

	var answer placesAnswer
	if err := json.Unmarshal([]byte(cleanJSONString(text)), &answer); err != nil {
		// Not JSON after all: the prose is still a useful summary.
		g.log.DebugContext(ctx, "gemini place answer was not JSON", "error", err)
		return failedSearch(strings.TrimSpace(text))
	}

	out := domain.SearchResponse{Summary: answer.Summary, Places: []domain.Place{}}
	if out.Summary == "" {
		out.Summary = SummaryEmpty
	}
	for _, p := range answer.Places {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			name = "Unnamed place"
		}
		out.Places = append(out.Places, domain.Place{Name: name, Address: p.Address, URI: p.URI})
	}
	return out
}

// CalculateDistance implements Locator.
func (g *Gemini) CalculateDistance(ctx context.Context, origin, destination string, coords *domain.Coords) (domain.DistanceResult, error) {
	resp, err := g.distance.GenerateContent(ctx, genai.Text(distancePrompt(origin, destination, coords)))
	if err != nil {
		return domain.DistanceResult{}, fmt.Errorf("locate.Gemini.CalculateDistance: %w: %w", domain.ErrLookupUnavailable, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return domain.DistanceResult{}, fmt.Errorf("locate.Gemini.CalculateDistance: %w: %w",
			domain.ErrLookupUnavailable, errors.New("no response candidates"))
	}

	// An empty answer says nothing about the route, so it is not a "no route".
	text, ok := responseText(resp)
	if !ok {
		return domain.DistanceResult{}, fmt.Errorf("locate.Gemini.CalculateDistance: %w: %w",
			domain.ErrLookupUnavailable, errors.New("empty response"))
	}
	return domain.DistanceResult{
		Km:        ParseKilometers(text),
		SourceURI: firstCitation(resp),
	}, nil
}

func placesPrompt(query string, coords *domain.Coords) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Find places matching %q and give a short summary of the address.\n", query)
	if coords != nil {
		fmt.Fprintf(&b, "The user is near latitude %.6f, longitude %.6f; prefer nearby matches.\n", coords.Lat, coords.Lng)
	}
	b.WriteString(`Answer with JSON only: {"summary": string, "places": [{"name": string, "address": string, "uri": string}]}`)
	return b.String()
}

func distancePrompt(origin, destination string, coords *domain.Coords) string {
	var b strings.Builder
	fmt.Fprintf(&b, "What is the exact driving distance in kilometers between %q and %q? ", origin, destination)
	if coords != nil {
		fmt.Fprintf(&b, "If a place name is ambiguous, assume the one closest to latitude %.6f, longitude %.6f. ", coords.Lat, coords.Lng)
	}
	b.WriteString("Answer with the decimal number only, using a dot for decimals. If you cannot find a route, answer 0.")
	return b.String()
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", false
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", false
	}
	return sb.String(), true
}

// firstCitation returns the first source URI the model cited, if any.
func firstCitation(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	meta := resp.Candidates[0].CitationMetadata
	if meta == nil {
		return ""
	}
	for _, src := range meta.CitationSources {
		if src != nil && src.URI != nil && *src.URI != "" {
			return *src.URI
		}
	}
	return ""
}

// cleanJSONString removes markdown code fences if present (e.g. ```json ... ```).
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
