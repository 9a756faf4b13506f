package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/author"
	authorRepo "library-backend/internal/domains/author/repository"
	"library-backend/internal/domains/book"
	bookRepo "library-backend/internal/domains/book/repository"
	"library-backend/internal/domains/catalog"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/authz"
)

func newTestService() (*AuthorService, author.Repository, *catalog.Resolver) {
	authors := authorRepo.NewMemoryRepository()
	books := bookRepo.NewMemoryRepository()
	resolver := catalog.NewResolver(authors, books)
	return NewAuthorService(authors, resolver, 1000), authors, resolver
}

func adminCtx() context.Context {
	return authz.WithRoles(context.Background(), []authz.Role{
		authz.RoleAuthorAdmin, authz.RoleBookAdmin, authz.RoleUserAdmin,
	})
}

func TestCreateAndGet(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := adminCtx()

	created, err := svc.Create(ctx, &author.CreateAuthorRequest{
		FullName: "Test Author A",
		About:    "about",
		Genres:   []string{"horror", "fantasy"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Author A", got.FullName)
	assert.Equal(t, []string{"horror", "fantasy"}, got.Genres)
}

func TestCreateRequiresRole(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), &author.CreateAuthorRequest{FullName: "X"})
	require.Error(t, err)
	assert.True(t, apperror.IsAuthorization(err))

	bookAdmin := authz.WithRoles(context.Background(), []authz.Role{authz.RoleBookAdmin})
	_, err = svc.Create(bookAdmin, &author.CreateAuthorRequest{FullName: "X"})
	assert.True(t, apperror.IsAuthorization(err))
}

func TestCreateBlankNameRejected(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(adminCtx(), &author.CreateAuthorRequest{FullName: ""})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestEditMergePatch(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := adminCtx()

	created, err := svc.Create(ctx, &author.CreateAuthorRequest{
		FullName: "Before",
		About:    "bio",
		Genres:   []string{"horror"},
	})
	require.NoError(t, err)

	newName := "After"
	updated, err := svc.Edit(ctx, created.ID, &author.EditAuthorRequest{FullName: &newName})
	require.NoError(t, err)

	assert.Equal(t, "After", updated.FullName)
	// absent fields stay untouched
	assert.Equal(t, "bio", updated.About)
	assert.Equal(t, []string{"horror"}, updated.Genres)
}

func TestEditExplicitClear(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := adminCtx()

	created, err := svc.Create(ctx, &author.CreateAuthorRequest{
		FullName: "Name",
		About:    "bio",
		Genres:   []string{"horror"},
	})
	require.NoError(t, err)

	empty := ""
	cleared := []string{}
	updated, err := svc.Edit(ctx, created.ID, &author.EditAuthorRequest{
		About:  &empty,
		Genres: &cleared,
	})
	require.NoError(t, err)
	assert.Empty(t, updated.About)
	assert.Empty(t, updated.Genres)
	assert.Equal(t, "Name", updated.FullName)
}

func TestEditUnknownID(t *testing.T) {
	svc, _, _ := newTestService()

	name := "X"
	_, err := svc.Edit(adminCtx(), "missing", &author.EditAuthorRequest{FullName: &name})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteUnknownID(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.Delete(adminCtx(), "5f07c259ffb98843e36a2aa9")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, "Entity Author with id 5f07c259ffb98843e36a2aa9 not found", err.Error())
}

func TestSearchByFullNameAndGenres(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := adminCtx()

	_, err := svc.Create(ctx, &author.CreateAuthorRequest{
		FullName: "Stephen King",
		Genres:   []string{"horror", "thriller"},
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &author.CreateAuthorRequest{
		FullName: "Joe Hill",
		Genres:   []string{"horror"},
	})
	require.NoError(t, err)

	byName, err := svc.Search(ctx, &author.SearchAuthorsQuery{FullName: "stephen"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Stephen King", byName[0].FullName)

	// genre criterion uses ALL semantics
	both, err := svc.Search(ctx, &author.SearchAuthorsQuery{Genres: []string{"horror", "thriller"}})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "Stephen King", both[0].FullName)

	horror, err := svc.Search(ctx, &author.SearchAuthorsQuery{Genres: []string{"horror"}})
	require.NoError(t, err)
	assert.Len(t, horror, 2)
}

func TestSearchEmptyQueryReturnsAll(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := adminCtx()

	for _, name := range []string{"A", "B"} {
		_, err := svc.Create(ctx, &author.CreateAuthorRequest{FullName: name})
		require.NoError(t, err)
	}

	all, err := svc.Search(ctx, &author.SearchAuthorsQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSearchByBookIDReturnsCoAuthors(t *testing.T) {
	svc, _, resolver := newTestService()
	ctx := adminCtx()

	var ids []string
	for _, name := range []string{"Co-Author One", "Co-Author Two", "Co-Author Three", "Unrelated"} {
		a, err := svc.Create(ctx, &author.CreateAuthorRequest{FullName: name})
		require.NoError(t, err)
		ids = append(ids, a.ID)
	}

	b, err := resolver.Books.Insert(ctx, &book.Book{
		Title:     "Co-authored",
		AuthorIDs: ids[:3],
	})
	require.NoError(t, err)

	got, err := svc.Search(ctx, &author.SearchAuthorsQuery{BookID: b.ID})
	require.NoError(t, err)
	require.Len(t, got, 3)
	names := []string{got[0].FullName, got[1].FullName, got[2].FullName}
	assert.ElementsMatch(t, []string{"Co-Author One", "Co-Author Two", "Co-Author Three"}, names)
}

func TestSearchByBookTitle(t *testing.T) {
	svc, _, resolver := newTestService()
	ctx := adminCtx()

	a, err := svc.Create(ctx, &author.CreateAuthorRequest{FullName: "Writer"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &author.CreateAuthorRequest{FullName: "Bystander"})
	require.NoError(t, err)

	_, err = resolver.Books.Insert(ctx, &book.Book{
		Title:     "The Long Walk",
		AuthorIDs: []string{a.ID},
	})
	require.NoError(t, err)

	got, err := svc.Search(ctx, &author.SearchAuthorsQuery{BookTitle: "long walk"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Writer", got[0].FullName)
}

func TestSearchByUnknownBookIDMatchesNothing(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := adminCtx()

	_, err := svc.Create(ctx, &author.CreateAuthorRequest{FullName: "Someone"})
	require.NoError(t, err)

	got, err := svc.Search(ctx, &author.SearchAuthorsQuery{BookID: "missing"})
	require.NoError(t, err)
	assert.Empty(t, got)
}
