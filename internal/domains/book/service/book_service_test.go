package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/author"
	authorRepo "library-backend/internal/domains/author/repository"
	"library-backend/internal/domains/book"
	bookRepo "library-backend/internal/domains/book/repository"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/authz"
	"library-backend/internal/shared/types"
)

type fixture struct {
	svc     *BookService
	authors author.Repository
}

func newFixture() *fixture {
	authors := authorRepo.NewMemoryRepository()
	books := bookRepo.NewMemoryRepository()
	return &fixture{
		svc:     NewBookService(books, authors, 1000),
		authors: authors,
	}
}

func adminCtx() context.Context {
	return authz.WithRoles(context.Background(), []authz.Role{
		authz.RoleAuthorAdmin, authz.RoleBookAdmin, authz.RoleUserAdmin,
	})
}

func (f *fixture) addAuthor(t *testing.T, name string) *author.Author {
	t.Helper()
	a, err := f.authors.Insert(context.Background(), &author.Author{FullName: name})
	require.NoError(t, err)
	return a
}

func TestCreateAndGetBook(t *testing.T) {
	f := newFixture()
	ctx := adminCtx()
	a := f.addAuthor(t, "Test Author A")

	created, err := f.svc.Create(ctx, &book.CreateBookRequest{
		AuthorIDs: []string{a.ID},
		Title:     "Test Book A",
		Genres:    []string{"horror"},
		ISBN13:    "978-1-5011-8098-9",
	})
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Book A", got.Title)
	assert.Equal(t, []string{a.ID}, got.AuthorIDs)
}

func TestCreateBookRequiresRole(t *testing.T) {
	f := newFixture()
	a := f.addAuthor(t, "A")

	authorAdmin := authz.WithRoles(context.Background(), []authz.Role{authz.RoleAuthorAdmin})
	_, err := f.svc.Create(authorAdmin, &book.CreateBookRequest{
		AuthorIDs: []string{a.ID},
		Title:     "T",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsAuthorization(err))
}

func TestCreateBookUnknownAuthorRejected(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(adminCtx(), &book.CreateBookRequest{
		AuthorIDs: []string{"missing"},
		Title:     "Orphan",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestCreateBookDedupesAuthorIDs(t *testing.T) {
	f := newFixture()
	a := f.addAuthor(t, "A")

	created, err := f.svc.Create(adminCtx(), &book.CreateBookRequest{
		AuthorIDs: []string{a.ID, a.ID},
		Title:     "T",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, created.AuthorIDs)
}

func TestCreateBookMissingTitleRejected(t *testing.T) {
	f := newFixture()
	a := f.addAuthor(t, "A")

	_, err := f.svc.Create(adminCtx(), &book.CreateBookRequest{AuthorIDs: []string{a.ID}})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestEditBookMergePatch(t *testing.T) {
	f := newFixture()
	ctx := adminCtx()
	a := f.addAuthor(t, "A")

	pd := types.NewDate(1985, time.July, 17)
	created, err := f.svc.Create(ctx, &book.CreateBookRequest{
		AuthorIDs:   []string{a.ID},
		Title:       "Before",
		Publisher:   "Viking",
		Genres:      []string{"horror"},
		PublishDate: &pd,
	})
	require.NoError(t, err)

	newTitle := "After"
	updated, err := f.svc.Edit(ctx, created.ID, &book.EditBookRequest{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, "After", updated.Title)
	assert.Equal(t, "Viking", updated.Publisher)
	assert.Equal(t, []string{"horror"}, updated.Genres)
	require.NotNil(t, updated.PublishDate)
	assert.Equal(t, "1985-07-17", updated.PublishDate.String())
	assert.Equal(t, []string{a.ID}, updated.AuthorIDs)
}

func TestEditBookUnknownAuthorRejected(t *testing.T) {
	f := newFixture()
	ctx := adminCtx()
	a := f.addAuthor(t, "A")

	created, err := f.svc.Create(ctx, &book.CreateBookRequest{
		AuthorIDs: []string{a.ID},
		Title:     "T",
	})
	require.NoError(t, err)

	bad := []string{"missing"}
	_, err = f.svc.Edit(ctx, created.ID, &book.EditBookRequest{AuthorIDs: &bad})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	// the stored book is unchanged
	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, got.AuthorIDs)
}

func TestEditBookCannotBlankTitle(t *testing.T) {
	f := newFixture()
	ctx := adminCtx()
	a := f.addAuthor(t, "A")

	created, err := f.svc.Create(ctx, &book.CreateBookRequest{
		AuthorIDs: []string{a.ID},
		Title:     "Keep",
	})
	require.NoError(t, err)

	blank := ""
	_, err = f.svc.Edit(ctx, created.ID, &book.EditBookRequest{Title: &blank})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keep", got.Title)
}

func TestDeleteBookUnknownID(t *testing.T) {
	f := newFixture()

	err := f.svc.Delete(adminCtx(), "5f07c259ffb98843e36a2aa9")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, "Entity Book with id 5f07c259ffb98843e36a2aa9 not found", err.Error())
}

func TestSearchGenresAllSemantics(t *testing.T) {
	f := newFixture()
	ctx := adminCtx()
	a := f.addAuthor(t, "A")

	_, err := f.svc.Create(ctx, &book.CreateBookRequest{
		AuthorIDs: []string{a.ID},
		Title:     "One",
		Genres:    []string{"A", "B"},
	})
	require.NoError(t, err)

	cases := []struct {
		genres []string
		want   int
	}{
		{[]string{"A", "C"}, 0},
		{[]string{"A"}, 1},
		{[]string{"A", "B"}, 1},
	}
	for _, tc := range cases {
		got, err := f.svc.Search(ctx, &book.SearchBooksQuery{Genres: tc.genres})
		require.NoError(t, err)
		assert.Len(t, got, tc.want, "genres=%v", tc.genres)
	}
}

func TestSearchPublishDateWindowHalfOpen(t *testing.T) {
	f := newFixture()
	ctx := adminCtx()
	a := f.addAuthor(t, "A")

	pd := types.NewDate(1985, time.July, 17)
	_, err := f.svc.Create(ctx, &book.CreateBookRequest{
		AuthorIDs:   []string{a.ID},
		Title:       "Dated",
		PublishDate: &pd,
	})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, &book.CreateBookRequest{
		AuthorIDs: []string{a.ID},
		Title:     "Undated",
	})
	require.NoError(t, err)

	day := func(y int, m time.Month, d int) *types.Date {
		v := types.NewDate(y, m, d)
		return &v
	}

	// start is inclusive
	got, err := f.svc.Search(ctx, &book.SearchBooksQuery{
		PublishDateStart: day(1985, time.July, 17),
		PublishDateEnd:   day(1985, time.July, 18),
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Dated", got[0].Title)

	// end is exclusive
	got, err = f.svc.Search(ctx, &book.SearchBooksQuery{
		PublishDateStart: day(1985, time.July, 1),
		PublishDateEnd:   day(1985, time.July, 17),
	})
	require.NoError(t, err)
	assert.Empty(t, got)

	// undated books never match a dated window
	got, err = f.svc.Search(ctx, &book.SearchBooksQuery{
		PublishDateStart: day(1900, time.January, 1),
		PublishDateEnd:   day(2100, time.January, 1),
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Dated", got[0].Title)
}

func TestSearchByISBNAndPublisher(t *testing.T) {
	f := newFixture()
	ctx := adminCtx()
	a := f.addAuthor(t, "A")

	_, err := f.svc.Create(ctx, &book.CreateBookRequest{
		AuthorIDs: []string{a.ID},
		Title:     "Carrie",
		ISBN13:    "978-0-385-08695-0",
		Publisher: "Doubleday",
	})
	require.NoError(t, err)

	byISBN, err := f.svc.Search(ctx, &book.SearchBooksQuery{ISBN13: "978-0-385-08695-0"})
	require.NoError(t, err)
	assert.Len(t, byISBN, 1)

	// isbn is exact, not substring
	byPartial, err := f.svc.Search(ctx, &book.SearchBooksQuery{ISBN13: "978-0-385"})
	require.NoError(t, err)
	assert.Empty(t, byPartial)

	byPublisher, err := f.svc.Search(ctx, &book.SearchBooksQuery{Publisher: "double"})
	require.NoError(t, err)
	assert.Len(t, byPublisher, 1)
}

func TestSearchByAuthorFullName(t *testing.T) {
	f := newFixture()
	ctx := adminCtx()
	king := f.addAuthor(t, "Stephen King")
	other := f.addAuthor(t, "Joe Hill")

	_, err := f.svc.Create(ctx, &book.CreateBookRequest{
		AuthorIDs: []string{king.ID},
		Title:     "It",
	})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, &book.CreateBookRequest{
		AuthorIDs: []string{other.ID},
		Title:     "NOS4A2",
	})
	require.NoError(t, err)

	got, err := f.svc.Search(ctx, &book.SearchBooksQuery{AuthorFullName: "king"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "It", got[0].Title)

	// a name matching no author matches no books
	none, err := f.svc.Search(ctx, &book.SearchBooksQuery{AuthorFullName: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAuthorsPreservesOrderAndSkipsDangling(t *testing.T) {
	f := newFixture()
	ctx := adminCtx()
	first := f.addAuthor(t, "First")
	second := f.addAuthor(t, "Second")
	third := f.addAuthor(t, "Third")

	created, err := f.svc.Create(ctx, &book.CreateBookRequest{
		AuthorIDs: []string{first.ID, second.ID, third.ID},
		Title:     "Co-authored",
	})
	require.NoError(t, err)

	require.NoError(t, f.authors.Delete(ctx, second.ID))

	got, err := f.svc.Authors(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "First", got[0].FullName)
	assert.Equal(t, "Third", got[1].FullName)
}

func TestAuthorsUnknownBook(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Authors(adminCtx(), "missing")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestByAuthor(t *testing.T) {
	f := newFixture()
	ctx := adminCtx()
	a := f.addAuthor(t, "A")
	b := f.addAuthor(t, "B")

	_, err := f.svc.Create(ctx, &book.CreateBookRequest{
		AuthorIDs: []string{a.ID},
		Title:     "Solo",
	})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, &book.CreateBookRequest{
		AuthorIDs: []string{a.ID, b.ID},
		Title:     "Joint",
	})
	require.NoError(t, err)

	got, err := f.svc.ByAuthor(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	one, err := f.svc.ByAuthor(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "Joint", one[0].Title)

	_, err = f.svc.ByAuthor(ctx, "missing")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
