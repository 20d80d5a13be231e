// Package domain holds the types every other layer shares.
//
// The content snapshot (ContentStore) is loaded once and never mutated.
// Search hits (SearchResult) are computed per query and point back at
// the record they came from. Chats (ChatMessage, SavedChat) and article
// analyses (ArticleAnalysis) are the only things written to storage, and
// AppSettings is the one configuration object handed to services.
//
// The package imports the standard library only.
package domain
