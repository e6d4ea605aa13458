package mcp

import (
	"context"
	"errors"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sharpskill/skillmatch/internal/match"
)

// SearchInput is the input schema for the search_skills tool.
type SearchInput struct {
	Query    string  `json:"query" jsonschema:"the user request to match skill documents against"`
	Limit    int     `json:"limit,omitempty" jsonschema:"maximum number of results (default: all qualifying)"`
	MinScore float64 `json:"min_score,omitempty" jsonschema:"minimum score for a result to qualify"`
}

// SearchOutput is the output schema for the search_skills tool.
type SearchOutput struct {
	Results    []ResultOutput `json:"results"`
	Count      int            `json:"count"`
	Generation uint64         `json:"generation"`
}

// ResultOutput is a single ranked hit.
type ResultOutput struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     string   `json:"category,omitempty"`
	Score        float64  `json:"score"`
	MatchedTerms []string `json:"matched_terms"`
}

// ListInput is the input schema for the list_skills tool.
type ListInput struct {
	Category string `json:"category,omitempty" jsonschema:"only list skills in this category"`
}

// ListOutput is the output schema for the list_skills tool.
type ListOutput struct {
	Skills []ResultOutput `json:"skills"`
	Count  int            `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_skills",
		Description: "Rank skill documents by lexical relevance to a user request",
	}, s.handleSearch)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_skills",
		Description: "List all available skill documents",
	}, s.handleList)
}

func (s *Server) handleSearch(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	snap := s.registry.Snapshot()
	results, err := snap.Search(input.Query, match.SearchOptions{
		TopK:     input.Limit,
		MinScore: input.MinScore,
	})
	if err != nil {
		if errors.Is(err, match.ErrEmptyQuery) {
			return nil, SearchOutput{}, errors.New("query must not be empty")
		}
		return nil, SearchOutput{}, err
	}

	out := SearchOutput{
		Results:    make([]ResultOutput, len(results)),
		Count:      len(results),
		Generation: snap.Generation,
	}
	for i, r := range results {
		ro := ResultOutput{
			ID:           r.DocID,
			Name:         r.Name,
			Score:        r.Score,
			MatchedTerms: r.MatchedTerms,
		}
		if d, ok := snap.Index.Document(r.DocID); ok {
			ro.Description = d.Description
			ro.Category = d.Category
		}
		out.Results[i] = ro
	}
	return nil, out, nil
}

func (s *Server) handleList(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	snap := s.registry.Snapshot()
	docs := snap.Index.Documents()
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })

	var out ListOutput
	for _, d := range docs {
		if input.Category != "" && d.Category != input.Category {
			continue
		}
		out.Skills = append(out.Skills, ResultOutput{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Category:    d.Category,
		})
	}
	out.Count = len(out.Skills)
	return nil, out, nil
}
