package addresses

// Address belongs to exactly one contact and is only reachable through it.
// Country and PostalCode are required; the rest is optional.
type Address struct {
	ID         int64
	ContactID  int64
	Street     *string
	City       *string
	Province   *string
	Country    string
	PostalCode string
}
