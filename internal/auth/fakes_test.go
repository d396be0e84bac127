package auth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/repair-service/internal/domain"
	apperrors "github.com/spec-kit/repair-service/pkg/util"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[string]*domain.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == identifier {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) SuperadminExists(context.Context) (bool, error) { return false, nil }

func (f *fakeUserRepo) TouchLastLogin(context.Context, string, time.Time) error { return nil }

type fakeWorkspaceRepo struct {
	workspaces map[string]*domain.Workspace
}

func newFakeWorkspaceRepo(workspaces ...*domain.Workspace) *fakeWorkspaceRepo {
	repo := &fakeWorkspaceRepo{workspaces: map[string]*domain.Workspace{}}
	for _, ws := range workspaces {
		repo.workspaces[ws.ID] = ws
	}
	return repo
}

func (f *fakeWorkspaceRepo) CreateWithOwner(_ context.Context, workspace *domain.Workspace, _ *domain.WorkspaceMember) error {
	f.workspaces[workspace.ID] = workspace
	return nil
}

func (f *fakeWorkspaceRepo) GetByID(_ context.Context, id string) (*domain.Workspace, error) {
	if ws, ok := f.workspaces[id]; ok {
		return ws, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeWorkspaceRepo) ListActiveForUser(context.Context, string) ([]domain.UserWorkspace, error) {
	return nil, nil
}

type fakeMemberRepo struct {
	members []*domain.WorkspaceMember
}

func newFakeMemberRepo(members ...*domain.WorkspaceMember) *fakeMemberRepo {
	return &fakeMemberRepo{members: members}
}

func (f *fakeMemberRepo) Create(_ context.Context, member *domain.WorkspaceMember) error {
	f.members = append(f.members, member)
	return nil
}

func (f *fakeMemberRepo) GetByWorkspaceAndUser(_ context.Context, workspaceID, userID string) (*domain.WorkspaceMember, error) {
	for _, m := range f.members {
		if m.WorkspaceID == workspaceID && m.UserID == userID {
			return m, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeMemberRepo) GetByID(_ context.Context, workspaceID, id string) (*domain.WorkspaceMember, error) {
	for _, m := range f.members {
		if m.WorkspaceID == workspaceID && m.ID == id {
			return m, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeMemberRepo) Reactivate(_ context.Context, member *domain.WorkspaceMember, role domain.WorkspaceRole, _ time.Time) error {
	member.Status = domain.MemberStatusActive
	member.Role = role
	return nil
}

func (f *fakeMemberRepo) MarkRemoved(_ context.Context, member *domain.WorkspaceMember) error {
	member.Status = domain.MemberStatusRemoved
	return nil
}

func (f *fakeMemberRepo) ListByWorkspace(context.Context, string) ([]domain.MemberDetail, error) {
	return nil, nil
}

// newGuardApp builds a fiber app whose error handler renders DomainError the
// way the service's error middleware does, so guard outcomes are observable
// as status codes and bodies.
func newGuardApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{
				"code":    domainErr.Code,
				"message": domainErr.Message,
			}})
		},
	})
}

func performRequest(t *testing.T, app *fiber.App, req *http.Request) (int, string) {
	t.Helper()
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("perform request: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func okHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

func newRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}
