package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/KevinNourian/HealthAssistant/internal/core/domain"
	"github.com/KevinNourian/HealthAssistant/internal/core/ports/driven"
	"github.com/KevinNourian/HealthAssistant/internal/core/ports/driving"
	"github.com/KevinNourian/HealthAssistant/internal/logger"
)

// Ensure Answerer implements the interface.
var _ driving.AnswerService = (*Answerer)(nil)

// answerPrompt instructs the model to refuse rather than invent when
// the retrieved context does not contain the answer. The refusal
// phrase is what triggers the web search fallback.
const answerPrompt = `Answer using ONLY the context below. If the answer is not in the context, say "I don't know."

Context:
%s

Question: %s`

// structuredAnswerPrompt is used when the model supports JSON output.
// The explicit answer_found flag replaces phrase matching.
const structuredAnswerPrompt = `Answer using ONLY the context below. Respond with a JSON object of the form {"answer": "<your answer>", "answer_found": <true or false>}. Set answer_found to false if the answer is not in the context.

Context:
%s

Question: %s`

// noResultsMessage is returned when neither the knowledge base nor the
// web search produced anything usable.
const noResultsMessage = "No results found."

// fallbackSentinels are the model refusals that route a question to
// the web search fallback. Matched exactly against the trimmed,
// lowercased completion; a hedged answer that merely contains one of
// these phrases does not trigger the fallback.
var fallbackSentinels = map[string]bool{
	"i don't know.": true,
	"i don't know":  true,
	"unknown":       true,
}

// summaryChunkLimit and summaryContentLimit bound how much indexed
// text is folded into a document summary prompt.
const (
	summaryChunkLimit   = 10
	summaryContentLimit = 3000
)

// Answerer routes questions between the knowledge base and the web
// search fallback.
type Answerer struct {
	retriever driving.Retriever
	llm       driven.LLMService
	searcher  driven.WebSearcher
	index     driven.VectorIndex

	maxWebResults int
	temperature   float64

	// treatSearchErrorAsEmpty degrades a failed web search to the
	// no-results answer instead of an error answer.
	treatSearchErrorAsEmpty bool
}

// AnswererConfig configures answer routing.
type AnswererConfig struct {
	// MaxWebResults caps web search results folded into a fallback
	// answer. Zero means 3.
	MaxWebResults int

	// Temperature is passed through to the language model.
	Temperature float64

	// TreatSearchErrorAsEmpty controls whether a web search failure
	// produces the no-results answer (true) or an error answer
	// (false).
	TreatSearchErrorAsEmpty bool
}

// NewAnswerer wires the answer router. searcher may be nil, in which
// case the fallback always reports no results.
func NewAnswerer(
	retriever driving.Retriever,
	llm driven.LLMService,
	searcher driven.WebSearcher,
	index driven.VectorIndex,
	cfg AnswererConfig,
) *Answerer {
	if cfg.MaxWebResults <= 0 {
		cfg.MaxWebResults = 3
	}
	return &Answerer{
		retriever:               retriever,
		llm:                     llm,
		searcher:                searcher,
		index:                   index,
		maxWebResults:           cfg.MaxWebResults,
		temperature:             cfg.Temperature,
		treatSearchErrorAsEmpty: cfg.TreatSearchErrorAsEmpty,
	}
}

// Answer routes a question through retrieval and, when the model
// cannot answer from the retrieved context, web search. It never
// fails: every error is recovered into an error-labelled Answer.
func (a *Answerer) Answer(ctx context.Context, question string) domain.Answer {
	question = strings.TrimSpace(question)
	if question == "" {
		return errorAnswer(domain.ErrInvalidInput)
	}

	text, found, err := a.answerFromKnowledgeBase(ctx, question)
	if err != nil {
		return errorAnswer(err)
	}
	if found {
		return domain.Answer{Text: text, Origin: domain.OriginKnowledgeBase}
	}

	logger.Debug("Knowledge base had no answer, falling back to web search")
	return a.answerFromWeb(ctx, question)
}

// answerFromKnowledgeBase retrieves context and asks the model.
// found is false when the model signals the context was insufficient.
func (a *Answerer) answerFromKnowledgeBase(ctx context.Context, question string) (text string, found bool, err error) {
	if a.llm == nil {
		return "", false, domain.ErrLLMUnavailable
	}

	chunks, err := a.retriever.Retrieve(ctx, question)
	if err != nil {
		return "", false, fmt.Errorf("retrieve context: %w", err)
	}

	contextText := joinChunks(chunks)
	opts := driven.CompleteOptions{Temperature: a.temperature}

	if jc, ok := a.llm.(driven.JSONCompleter); ok {
		raw, err := jc.CompleteJSON(ctx, fmt.Sprintf(structuredAnswerPrompt, contextText, question), opts)
		if err != nil {
			return "", false, fmt.Errorf("complete: %w", err)
		}
		var parsed struct {
			Answer      string `json:"answer"`
			AnswerFound bool   `json:"answer_found"`
		}
		if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
			return parsed.Answer, parsed.AnswerFound, nil
		}
		logger.Warn("Model returned malformed JSON, falling back to phrase matching")
		return raw, !isFallbackSentinel(raw), nil
	}

	completion, err := a.llm.Complete(ctx, fmt.Sprintf(answerPrompt, contextText, question), opts)
	if err != nil {
		return "", false, fmt.Errorf("complete: %w", err)
	}
	return completion, !isFallbackSentinel(completion), nil
}

// answerFromWeb assembles an answer from web search results.
func (a *Answerer) answerFromWeb(ctx context.Context, question string) domain.Answer {
	var results []domain.WebResult
	if a.searcher != nil {
		var err error
		results, err = a.searcher.Search(ctx, question, a.maxWebResults)
		if err != nil {
			if !a.treatSearchErrorAsEmpty {
				return errorAnswer(fmt.Errorf("web search: %w", err))
			}
			logger.Warn("Web search failed, treating as no results: %v", err)
			results = nil
		}
	}

	if len(results) == 0 {
		return domain.Answer{Text: noResultsMessage, Origin: domain.OriginNone}
	}

	parts := make([]string, 0, len(results))
	var sources []string
	for _, r := range results {
		parts = append(parts, fmt.Sprintf("**%s**\n%s", r.Title, r.Snippet))
		if r.URL != "" {
			sources = append(sources, r.URL)
		}
	}
	return domain.Answer{
		Text:    strings.Join(parts, "\n\n"),
		Origin:  domain.OriginWebSearch,
		Sources: sources,
	}
}

// SummarizeDocument summarizes a single source file from its indexed
// chunks.
func (a *Answerer) SummarizeDocument(ctx context.Context, source string) (string, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return "", domain.ErrInvalidInput
	}
	if a.llm == nil {
		return "", domain.ErrLLMUnavailable
	}

	chunks, err := a.index.SimilaritySearch(ctx, "summary of document",
		summaryChunkLimit, driven.SearchOptions{Source: source})
	if err != nil {
		return "", fmt.Errorf("retrieve document chunks: %w", err)
	}
	if len(chunks) == 0 {
		return fmt.Sprintf("No content found for %s", source), nil
	}

	content := joinChunks(chunks)
	if len(content) > summaryContentLimit {
		content = truncateToRune(content, summaryContentLimit)
	}

	prompt := fmt.Sprintf("Summarize the following excerpts from %s in a few short paragraphs:\n\n%s", source, content)
	summary, err := a.llm.Complete(ctx, prompt, driven.CompleteOptions{Temperature: a.temperature})
	if err != nil {
		return "", fmt.Errorf("complete: %w", err)
	}
	return summary, nil
}

// isFallbackSentinel reports whether a completion is one of the
// refusal phrases that trigger the web fallback.
func isFallbackSentinel(completion string) bool {
	return fallbackSentinels[strings.ToLower(strings.TrimSpace(completion))]
}

// joinChunks concatenates chunk contents into a single prompt context.
func joinChunks(chunks []domain.ScoredChunk) string {
	parts := make([]string, 0, len(chunks))
	for _, ch := range chunks {
		parts = append(parts, ch.Content)
	}
	return strings.Join(parts, "\n\n")
}

// truncateToRune cuts s to at most max bytes without splitting a rune.
func truncateToRune(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }

// errorAnswer converts a failure into an error-labelled answer.
func errorAnswer(err error) domain.Answer {
	return domain.Answer{
		Text:   fmt.Sprintf("Sorry, something went wrong: %v", err),
		Origin: domain.OriginError,
	}
}
