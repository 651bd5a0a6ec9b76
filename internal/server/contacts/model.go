package contacts

// Contact is a single entry in a user's contact book. Username is the
// owning user's identity key; every lookup is scoped by it. FirstName is
// the only required descriptive field.
type Contact struct {
	ID        int64
	Username  string
	FirstName string
	LastName  *string
	Email     *string
	Phone     *string
}

// SearchFilter is the optional filter set for a contact search. Empty
// string fields impose no constraint. Page and Size are 1-based and must
// both be at least 1.
type SearchFilter struct {
	Name    string
	Email   string
	Phone   string
	Keyword string
	Page    int
	Size    int
}

// Paging describes the page window of a search result.
type Paging struct {
	CurrentPage int
	Size        int
	TotalPage   int
}
