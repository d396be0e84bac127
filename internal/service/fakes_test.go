package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/repair-service/internal/domain"
	"github.com/spec-kit/repair-service/internal/events"
	"github.com/spec-kit/repair-service/internal/repository"
	"github.com/spec-kit/repair-service/internal/sms"
)

type fakeUserRepo struct {
	users      []*domain.User
	lastLogins map[string]time.Time
	nextID     int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{lastLogins: map[string]time.Time{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.nextID++
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	ident := strings.ToLower(strings.TrimSpace(identifier))
	if ident == "" {
		return nil, pgx.ErrNoRows
	}
	for _, u := range f.users {
		if u.Email == ident {
			return u, nil
		}
		if u.TelephoneNumber != nil && *u.TelephoneNumber == ident {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) SuperadminExists(_ context.Context) (bool, error) {
	for _, u := range f.users {
		if u.Role == domain.RoleSuperadmin {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	f.lastLogins[id] = at
	return nil
}

type fakeWorkspaceRepo struct {
	workspaces []*domain.Workspace
	members    *fakeMemberRepo
	nextID     int
}

func newFakeWorkspaceRepo(members *fakeMemberRepo) *fakeWorkspaceRepo {
	return &fakeWorkspaceRepo{members: members}
}

func (f *fakeWorkspaceRepo) CreateWithOwner(ctx context.Context, workspace *domain.Workspace, owner *domain.WorkspaceMember) error {
	f.nextID++
	workspace.ID = fmt.Sprintf("ws-%d", f.nextID)
	workspace.CreatedAt = time.Now()
	workspace.UpdatedAt = workspace.CreatedAt
	f.workspaces = append(f.workspaces, workspace)

	owner.WorkspaceID = workspace.ID
	return f.members.Create(ctx, owner)
}

func (f *fakeWorkspaceRepo) GetByID(_ context.Context, id string) (*domain.Workspace, error) {
	for _, ws := range f.workspaces {
		if ws.ID == id {
			return ws, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeWorkspaceRepo) ListActiveForUser(_ context.Context, userID string) ([]domain.UserWorkspace, error) {
	var out []domain.UserWorkspace
	for _, ws := range f.workspaces {
		if ws.Status != domain.WorkspaceStatusActive {
			continue
		}
		for _, m := range f.members.members {
			if m.WorkspaceID == ws.ID && m.UserID == userID && m.Status == domain.MemberStatusActive {
				out = append(out, domain.UserWorkspace{Workspace: *ws, Role: m.Role})
			}
		}
	}
	return out, nil
}

type fakeMemberRepo struct {
	members []*domain.WorkspaceMember
	nextID  int
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{}
}

func (f *fakeMemberRepo) Create(_ context.Context, member *domain.WorkspaceMember) error {
	f.nextID++
	member.ID = fmt.Sprintf("member-%d", f.nextID)
	member.CreatedAt = time.Now()
	member.UpdatedAt = member.CreatedAt
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

func (f *fakeMemberRepo) Reactivate(_ context.Context, member *domain.WorkspaceMember, role domain.WorkspaceRole, joinedAt time.Time) error {
	member.Status = domain.MemberStatusActive
	member.Role = role
	if member.JoinedAt == nil {
		member.JoinedAt = &joinedAt
	}
	member.UpdatedAt = time.Now()
	return nil
}

func (f *fakeMemberRepo) MarkRemoved(_ context.Context, member *domain.WorkspaceMember) error {
	member.Status = domain.MemberStatusRemoved
	member.UpdatedAt = time.Now()
	return nil
}

func (f *fakeMemberRepo) ListByWorkspace(_ context.Context, workspaceID string) ([]domain.MemberDetail, error) {
	var out []domain.MemberDetail
	for _, m := range f.members {
		if m.WorkspaceID == workspaceID && m.Status != domain.MemberStatusRemoved {
			out = append(out, domain.MemberDetail{Member: *m})
		}
	}
	return out, nil
}

type fakeRepairRepo struct {
	repairs []*domain.Repair
	nextID  int
	// statusChanges counts transitions performed through Complete.
	statusChanges int
}

func newFakeRepairRepo() *fakeRepairRepo {
	return &fakeRepairRepo{}
}

func (f *fakeRepairRepo) Create(_ context.Context, repair *domain.Repair) error {
	f.nextID++
	repair.ID = fmt.Sprintf("repair-%d", f.nextID)
	repair.CreatedAt = time.Now()
	repair.UpdatedAt = repair.CreatedAt
	f.repairs = append(f.repairs, repair)
	return nil
}

func (f *fakeRepairRepo) GetByID(_ context.Context, workspaceID, id string) (*domain.Repair, error) {
	for _, r := range f.repairs {
		if r.WorkspaceID == workspaceID && r.ID == id {
			return r, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeRepairRepo) ListWithFilter(_ context.Context, filter repository.RepairFilter) ([]domain.Repair, error) {
	var out []domain.Repair
	for _, r := range f.repairs {
		if r.WorkspaceID != filter.WorkspaceID {
			continue
		}
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRepairRepo) Complete(ctx context.Context, workspaceID, id string, _ *string) (*domain.Repair, bool, error) {
	repair, err := f.GetByID(ctx, workspaceID, id)
	if err != nil {
		return nil, false, err
	}
	if repair.Status == domain.RepairStatusCompleted {
		return repair, false, nil
	}
	now := time.Now()
	repair.Status = domain.RepairStatusCompleted
	repair.CompletedAt = &now
	repair.UpdatedAt = now
	f.statusChanges++
	return repair, true, nil
}

type fakeActivityRepo struct {
	entries []*domain.RepairActivity
	nextID  int
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{}
}

func (f *fakeActivityRepo) Create(_ context.Context, activity *domain.RepairActivity) error {
	f.nextID++
	activity.ID = fmt.Sprintf("activity-%d", f.nextID)
	activity.CreatedAt = time.Now()
	f.entries = append(f.entries, activity)
	return nil
}

func (f *fakeActivityRepo) ListByRepair(_ context.Context, workspaceID, repairID string) ([]domain.RepairActivity, error) {
	var out []domain.RepairActivity
	for i := len(f.entries) - 1; i >= 0; i-- {
		e := f.entries[i]
		if e.WorkspaceID == workspaceID && e.RepairID == repairID {
			out = append(out, *e)
		}
	}
	return out, nil
}

// syncDispatcher records published events without spawning goroutines so
// tests can assert on them deterministically.
type syncDispatcher struct {
	published []events.Event
}

func (d *syncDispatcher) Publish(_ context.Context, event events.Event) {
	d.published = append(d.published, event)
}

func (d *syncDispatcher) Subscribe(events.EventType, events.EventHandler) {}

type fakeSender struct {
	result sms.Result
	err    error
	sent   []string
}

func (f *fakeSender) Send(_ context.Context, message, _ string) (sms.Result, error) {
	if f.err != nil {
		return sms.Result{}, f.err
	}
	f.sent = append(f.sent, message)
	return f.result, nil
}
