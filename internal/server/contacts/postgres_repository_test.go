package contacts

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"contactbook/internal/common"
	"github.com/DATA-DOG/go-sqlmock"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func strPtr(s string) *string { return &s }

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+contacts\s*\(username,\s*first_name,\s*last_name,\s*email,\s*phone\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*RETURNING\s+id\s*$`

	rows := sqlmock.NewRows([]string{"id"}).AddRow(int64(7))
	mock.ExpectQuery(q).
		WithArgs("alice", "Budi", strPtr("Santoso"), strPtr("budi@x.com"), nil).
		WillReturnRows(rows)

	c := &Contact{Username: "alice", FirstName: "Budi", LastName: strPtr("Santoso"), Email: strPtr("budi@x.com")}
	got, err := repo.Create(context.Background(), c)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 7 {
		t.Fatalf("unexpected contact: %+v", got)
	}
}

func TestFindByIDAndOwner_SinglePredicate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	// id and owner must be checked in the same lookup
	q := `(?s)^SELECT\s+id,\s*username,\s*first_name,\s*last_name,\s*email,\s*phone\s+FROM\s+contacts\s+WHERE\s+id\s*=\s*\$1\s+AND\s+username\s*=\s*\$2\s*$`

	rows := sqlmock.NewRows([]string{"id", "username", "first_name", "last_name", "email", "phone"}).
		AddRow(int64(7), "alice", "Budi", nil, nil, nil)
	mock.ExpectQuery(q).WithArgs(int64(7), "alice").WillReturnRows(rows)

	got, err := repo.FindByIDAndOwner(context.Background(), "alice", 7)
	if err != nil {
		t.Fatalf("FindByIDAndOwner error: %v", err)
	}
	if got.ID != 7 || got.FirstName != "Budi" {
		t.Fatalf("unexpected contact: %+v", got)
	}
}

func TestFindByIDAndOwner_WrongOwnerIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+id`).
		WithArgs(int64(7), "mallory").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByIDAndOwner(context.Background(), "mallory", 7)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestUpdate_ZeroRowsIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+contacts\s+SET\s+first_name\s*=\s*\$3.*WHERE\s+id\s*=\s*\$1\s+AND\s+username\s*=\s*\$2\s*$`

	mock.ExpectExec(q).
		WithArgs(int64(7), "alice", "Budi", nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Update(context.Background(), &Contact{ID: 7, Username: "alice", FirstName: "Budi"})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+contacts\s+WHERE\s+id\s*=\s*\$1\s+AND\s+username\s*=\s*\$2\s*$`

	mock.ExpectExec(q).WithArgs(int64(7), "alice").WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "alice", 7); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestSearch_CountAndPageShareThePredicate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	filter := SearchFilter{Keyword: "bob", Page: 2, Size: 5}

	mock.ExpectBegin()
	countQ := `(?s)^SELECT\s+count\(\*\)\s+FROM\s+contacts\s+WHERE\s+username\s*=\s*\$1\s+AND\s+\(first_name\s+LIKE\s+\$2\s+OR\s+last_name\s+LIKE\s+\$2\s+OR\s+email\s+LIKE\s+\$2\s+OR\s+phone\s+LIKE\s+\$2\)\s*$`
	mock.ExpectQuery(countQ).
		WithArgs("alice", "%bob%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(6)))

	pageQ := `(?s)^SELECT\s+id,\s*username,.*FROM\s+contacts\s+WHERE\s+username\s*=\s*\$1\s+AND\s+\(first_name\s+LIKE\s+\$2.*\)\s+ORDER\s+BY\s+id\s+LIMIT\s+\$3\s+OFFSET\s+\$4\s*$`
	rows := sqlmock.NewRows([]string{"id", "username", "first_name", "last_name", "email", "phone"}).
		AddRow(int64(9), "alice", "Bob", nil, strPtr("bob@x.com"), nil)
	mock.ExpectQuery(pageQ).
		WithArgs("alice", "%bob%", 5, 5).
		WillReturnRows(rows)
	mock.ExpectCommit()

	result, total, err := repo.Search(context.Background(), "alice", filter)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if total != 6 {
		t.Fatalf("expected total 6, got %d", total)
	}
	if len(result) != 1 || result[0].FirstName != "Bob" {
		t.Fatalf("unexpected page: %+v", result)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSearch_EmptyPageIsEmptySliceNotNil(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)^SELECT\s+count\(\*\)`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(`(?s)^SELECT\s+id`).
		WithArgs("alice", 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "first_name", "last_name", "email", "phone"}))
	mock.ExpectCommit()

	result, total, err := repo.Search(context.Background(), "alice", SearchFilter{Page: 1, Size: 10})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected total 0, got %d", total)
	}
	if result == nil || len(result) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", result)
	}
}
