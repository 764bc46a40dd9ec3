package lsp

import "sync"

// document is an open buffer and its analysis, computed on first use.
type document struct {
	content string
	result  *AnalysisResult
	// lastGood is the most recent analysis that parsed. While the user is
	// mid-edit, names and symbols are taken from it.
	lastGood *AnalysisResult
}

// DocumentStore holds open documents keyed by URI. Analysis results are
// cached until the next update.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]*document)}
}

func (s *DocumentStore) Open(uri, content string) {
	s.Update(uri, content)
}

func (s *DocumentStore) Update(uri, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := &document{content: content}
	if prev, ok := s.docs[uri]; ok {
		doc.lastGood = prev.lastGood
		if prev.result != nil && !prev.result.SyntaxError {
			doc.lastGood = prev.result
		}
	}
	s.docs[uri] = doc
}

func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

func (s *DocumentStore) Get(uri string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	if !ok {
		return "", false
	}
	return doc.content, true
}

// Result returns the analysis of an open document, or nil if uri is not open.
func (s *DocumentStore) Result(uri string) *AnalysisResult {
	s.mu.RLock()
	doc, ok := s.docs[uri]
	var cached *AnalysisResult
	if ok {
		cached = doc.result
	}
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	if cached != nil {
		return cached
	}

	result := Analyze(uri, doc.content)
	if result.SyntaxError && doc.lastGood != nil {
		result.Names = doc.lastGood.Names
		result.Symbols = doc.lastGood.Symbols
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Only cache against the buffer that was analysed.
	if cur, ok := s.docs[uri]; ok && cur == doc {
		cur.result = result
	}
	return result
}
