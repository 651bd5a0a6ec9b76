package contacts

import (
	"fmt"
	"strings"
)

// searchPredicate assembles the WHERE clause for a contact search. The
// clause is always scoped to the owner; each present filter adds one
// AND-ed group (OR inside the group where it spans several columns).
// The same clause and args feed both the COUNT and the page SELECT so the
// two reads cannot drift apart.
func searchPredicate(username string, f SearchFilter) (string, []any) {
	var sb strings.Builder
	args := []any{username}

	sb.WriteString("username = $1")

	group := func(format string) {
		n := len(args)
		sb.WriteString(" AND ")
		sb.WriteString(strings.ReplaceAll(format, "$n", fmt.Sprintf("$%d", n)))
	}

	if f.Name != "" {
		args = append(args, "%"+f.Name+"%")
		group("(first_name LIKE $n OR last_name LIKE $n)")
	}
	if f.Email != "" {
		args = append(args, "%"+f.Email+"%")
		group("email LIKE $n")
	}
	if f.Phone != "" {
		args = append(args, "%"+f.Phone+"%")
		group("phone LIKE $n")
	}
	if f.Keyword != "" {
		args = append(args, "%"+f.Keyword+"%")
		group("(first_name LIKE $n OR last_name LIKE $n OR email LIKE $n OR phone LIKE $n)")
	}

	return sb.String(), args
}
