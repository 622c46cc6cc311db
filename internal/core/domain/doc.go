// Package domain defines the core business entities for isearch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SearchFilters / SearchResponse: A search request and its reconciled reply
//   - SearchResult: A single ranked hit from the backend
//   - Citation / AnswerSegment: Numbered references backing a generated answer
//   - SuggestionItem: A query completion for the input surface
//   - User: The authenticated account with its permission and group sets
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
