package model

// Student is the only entity the API serves. It is built from request input
// for the lifetime of one request and never stored. IDs are 32-bit; larger
// values fail to bind.
type Student struct {
	ID        int32  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Roster returns the fixed list served by the list endpoint, in order.
// A new slice is returned on every call.
func Roster() []Student {
	return []Student{
		{ID: 1, FirstName: "John", LastName: "Doe"},
		{ID: 2, FirstName: "Jane", LastName: "Smith"},
		{ID: 3, FirstName: "Alice", LastName: "Johnson"},
		{ID: 4, FirstName: "Bob", LastName: "Brown"},
		{ID: 5, FirstName: "Sophia", LastName: "White"},
	}
}
