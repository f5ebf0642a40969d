package domain

// Envelope is the paginated response wrapper used by every list endpoint.
type Envelope[T any] struct {
	CurrentPage int     `json:"current_page"`
	Data        []T     `json:"data"`
	LastPage    int     `json:"last_page"`
	NextPageURL *string `json:"next_page_url"`
	PrevPageURL *string `json:"prev_page_url"`
}

// EmptyEnvelope is the state of a collection before its first fetch.
func EmptyEnvelope[T any]() Envelope[T] {
	return Envelope[T]{CurrentPage: 1, LastPage: 1, Data: []T{}}
}

// HasNext follows the server-reported next link, not CurrentPage/LastPage.
func (e Envelope[T]) HasNext() bool {
	return e.NextPageURL != nil && *e.NextPageURL != ""
}

// HasPrevious follows the server-reported previous link.
func (e Envelope[T]) HasPrevious() bool {
	return e.PrevPageURL != nil && *e.PrevPageURL != ""
}

// Clone copies the envelope so the caller can't alias the data slice.
func (e Envelope[T]) Clone() Envelope[T] {
	out := e
	out.Data = make([]T, len(e.Data))
	copy(out.Data, e.Data)
	return out
}
