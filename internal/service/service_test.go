package service

import (
	"context"
	"testing"
	"time"

	"taskmanager/internal/apperr"
	"taskmanager/internal/models"
	"taskmanager/internal/repository"
	"taskmanager/internal/repository/inmemory"
	"taskmanager/internal/token"
	"taskmanager/pkg/crypto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	users    *UserService
	statuses *TaskStatusService
	labels   *LabelService
	tasks    *TaskService
	auth     *AuthService
}

func newFixture() fixture {
	users := inmemory.NewUserRepository()
	statuses := inmemory.NewTaskStatusRepository()
	labels := inmemory.NewLabelRepository()
	tasks := inmemory.NewTaskRepository()
	integrity := NewIntegrityGuard(tasks)
	tokens := token.NewService([]byte("test-secret"), time.Hour, token.NewMemoryRevocationStore())

	return fixture{
		users:    NewUserService(users, integrity),
		statuses: NewTaskStatusService(statuses, integrity),
		labels:   NewLabelService(labels, integrity),
		tasks:    NewTaskService(tasks, users, statuses, labels),
		auth:     NewAuthService(users, tokens),
	}
}

func (f fixture) createUser(t *testing.T, email string) models.User {
	t.Helper()
	user, err := f.users.Create(context.Background(), UserInput{
		FirstName: "Ivan",
		LastName:  "Petrov",
		Email:     email,
		Password:  "secret123",
	})
	require.NoError(t, err)
	return user
}

func (f fixture) createStatus(t *testing.T, name string) models.TaskStatus {
	t.Helper()
	status, err := f.statuses.Create(context.Background(), name)
	require.NoError(t, err)
	return status
}

func asPrincipal(user models.User) models.Principal {
	return models.Principal{ID: user.ID, Email: user.Email}
}

func TestCreateUserHashesPassword(t *testing.T) {
	f := newFixture()

	user := f.createUser(t, "a@x.com")

	assert.NotEqual(t, "secret123", user.Password)
	assert.True(t, crypto.CheckPassword("secret123", user.Password))
	assert.NotZero(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.createUser(t, "a@x.com")
	_, err := f.users.Create(ctx, UserInput{
		FirstName: "Other", LastName: "User", Email: "a@x.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	users, err := f.users.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUpdateUserOnlySelf(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	alice := f.createUser(t, "alice@x.com")
	bob := f.createUser(t, "bob@x.com")

	in := UserInput{FirstName: "New", LastName: "Name", Email: "alice@x.com", Password: "secret123"}

	_, err := f.users.Update(ctx, asPrincipal(bob), alice.ID, in)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	updated, err := f.users.Update(ctx, asPrincipal(alice), alice.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "New", updated.FirstName)
	assert.Equal(t, alice.ID, updated.ID)
	assert.Equal(t, alice.CreatedAt, updated.CreatedAt)
}

func TestUpdateMissingUserIsNotFoundNotForbidden(t *testing.T) {
	f := newFixture()

	alice := f.createUser(t, "alice@x.com")
	_, err := f.users.Update(context.Background(), asPrincipal(alice), 999, UserInput{
		FirstName: "New", LastName: "Name", Email: "new@x.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteUserOnlySelf(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	alice := f.createUser(t, "alice@x.com")
	bob := f.createUser(t, "bob@x.com")

	err := f.users.Delete(ctx, asPrincipal(bob), alice.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	require.NoError(t, f.users.Delete(ctx, asPrincipal(alice), alice.ID))
	_, err = f.users.GetByID(ctx, alice.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteUserReferencedByTask(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	alice := f.createUser(t, "alice@x.com")
	status := f.createStatus(t, "new")

	_, err := f.tasks.Create(ctx, asPrincipal(alice), TaskInput{
		Name: "t1", TaskStatusID: status.ID,
	})
	require.NoError(t, err)

	err = f.users.Delete(ctx, asPrincipal(alice), alice.ID)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestDeleteUserReferencedAsExecutor(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	alice := f.createUser(t, "alice@x.com")
	bob := f.createUser(t, "bob@x.com")
	status := f.createStatus(t, "new")

	_, err := f.tasks.Create(ctx, asPrincipal(alice), TaskInput{
		Name: "t1", TaskStatusID: status.ID, ExecutorID: &bob.ID,
	})
	require.NoError(t, err)

	err = f.users.Delete(ctx, asPrincipal(bob), bob.ID)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestTaskAuthorIsAlwaysPrincipal(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	alice := f.createUser(t, "alice@x.com")
	status := f.createStatus(t, "new")

	task, err := f.tasks.Create(ctx, asPrincipal(alice), TaskInput{
		Name: "t1", TaskStatusID: status.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, task.Author.ID)
	assert.Equal(t, alice.Email, task.Author.Email)
}

func TestTaskCreateDanglingReferences(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	alice := f.createUser(t, "alice@x.com")
	status := f.createStatus(t, "new")

	_, err := f.tasks.Create(ctx, asPrincipal(alice), TaskInput{Name: "t1", TaskStatusID: 999})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	missing := 999
	_, err = f.tasks.Create(ctx, asPrincipal(alice), TaskInput{
		Name: "t1", TaskStatusID: status.ID, ExecutorID: &missing,
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = f.tasks.Create(ctx, asPrincipal(alice), TaskInput{
		Name: "t1", TaskStatusID: status.ID, LabelIDs: []int{999},
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestTaskUpdatePreservesAuthorAndCreatedAt(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	alice := f.createUser(t, "alice@x.com")
	bob := f.createUser(t, "bob@x.com")
	open := f.createStatus(t, "open")
	done := f.createStatus(t, "done")

	task, err := f.tasks.Create(ctx, asPrincipal(alice), TaskInput{
		Name: "t1", TaskStatusID: open.ID,
	})
	require.NoError(t, err)

	updated, err := f.tasks.Update(ctx, asPrincipal(alice), task.ID, TaskInput{
		Name: "t1 renamed", Description: "now with details",
		TaskStatusID: done.ID, ExecutorID: &bob.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "t1 renamed", updated.Name)
	assert.Equal(t, done.ID, updated.TaskStatus.ID)
	assert.Equal(t, alice.ID, updated.Author.ID)
	assert.Equal(t, task.CreatedAt, updated.CreatedAt)
	require.NotNil(t, updated.Executor)
	assert.Equal(t, bob.ID, updated.Executor.ID)
}

func TestTaskMutationOnlyByAuthor(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	alice := f.createUser(t, "alice@x.com")
	bob := f.createUser(t, "bob@x.com")
	status := f.createStatus(t, "new")

	task, err := f.tasks.Create(ctx, asPrincipal(alice), TaskInput{
		Name: "t1", TaskStatusID: status.ID,
	})
	require.NoError(t, err)

	_, err = f.tasks.Update(ctx, asPrincipal(bob), task.ID, TaskInput{
		Name: "stolen", TaskStatusID: status.ID,
	})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	err = f.tasks.Delete(ctx, asPrincipal(bob), task.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	// Task still exists after the denied delete.
	_, err = f.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)

	require.NoError(t, f.tasks.Delete(ctx, asPrincipal(alice), task.ID))
	_, err = f.tasks.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteStatusReferencedByTask(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	alice := f.createUser(t, "alice@x.com")
	status := f.createStatus(t, "new")

	task, err := f.tasks.Create(ctx, asPrincipal(alice), TaskInput{
		Name: "t1", TaskStatusID: status.ID,
	})
	require.NoError(t, err)

	err = f.statuses.Delete(ctx, status.ID)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	require.NoError(t, f.tasks.Delete(ctx, asPrincipal(alice), task.ID))
	require.NoError(t, f.statuses.Delete(ctx, status.ID))
}

func TestDeleteLabelReferencedByTask(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	alice := f.createUser(t, "alice@x.com")
	status := f.createStatus(t, "new")
	label, err := f.labels.Create(ctx, "bug")
	require.NoError(t, err)

	task, err := f.tasks.Create(ctx, asPrincipal(alice), TaskInput{
		Name: "t1", TaskStatusID: status.ID, LabelIDs: []int{label.ID},
	})
	require.NoError(t, err)
	assert.Len(t, task.Labels, 1)

	err = f.labels.Delete(ctx, label.ID)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	require.NoError(t, f.tasks.Delete(ctx, asPrincipal(alice), task.ID))
	require.NoError(t, f.labels.Delete(ctx, label.ID))
}

func TestDuplicateStatusAndLabelNames(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.createStatus(t, "new")
	_, err := f.statuses.Create(ctx, "new")
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = f.labels.Create(ctx, "bug")
	require.NoError(t, err)
	_, err = f.labels.Create(ctx, "bug")
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestTaskFilter(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	alice := f.createUser(t, "alice@x.com")
	bob := f.createUser(t, "bob@x.com")
	open := f.createStatus(t, "open")
	done := f.createStatus(t, "done")
	label, err := f.labels.Create(ctx, "bug")
	require.NoError(t, err)

	_, err = f.tasks.Create(ctx, asPrincipal(alice), TaskInput{
		Name: "t1", TaskStatusID: open.ID, LabelIDs: []int{label.ID},
	})
	require.NoError(t, err)
	_, err = f.tasks.Create(ctx, asPrincipal(alice), TaskInput{
		Name: "t2", TaskStatusID: done.ID, ExecutorID: &bob.ID,
	})
	require.NoError(t, err)
	_, err = f.tasks.Create(ctx, asPrincipal(bob), TaskInput{
		Name: "t3", TaskStatusID: open.ID,
	})
	require.NoError(t, err)

	byStatus, err := f.tasks.Find(ctx, repository.TaskFilter{TaskStatusID: &open.ID})
	require.NoError(t, err)
	assert.Len(t, byStatus, 2)

	byExecutor, err := f.tasks.Find(ctx, repository.TaskFilter{ExecutorID: &bob.ID})
	require.NoError(t, err)
	require.Len(t, byExecutor, 1)
	assert.Equal(t, "t2", byExecutor[0].Name)

	byLabel, err := f.tasks.Find(ctx, repository.TaskFilter{LabelID: &label.ID})
	require.NoError(t, err)
	require.Len(t, byLabel, 1)
	assert.Equal(t, "t1", byLabel[0].Name)

	byAuthorAndStatus, err := f.tasks.Find(ctx, repository.TaskFilter{
		AuthorID: &alice.ID, TaskStatusID: &open.ID,
	})
	require.NoError(t, err)
	require.Len(t, byAuthorAndStatus, 1)
	assert.Equal(t, "t1", byAuthorAndStatus[0].Name)
}

func TestLoginIssuesToken(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.createUser(t, "alice@x.com")

	tokenString, err := f.auth.Login(ctx, "alice@x.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, tokenString)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.createUser(t, "alice@x.com")

	_, err := f.auth.Login(ctx, "alice@x.com", "wrongpass")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = f.auth.Login(ctx, "nobody@x.com", "secret123")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}
