package service

import (
	"context"
	"errors"
	"testing"

	"github.com/spec-kit/repair-service/internal/domain"
	apperrors "github.com/spec-kit/repair-service/pkg/util"
)

func newWorkspaceFixture() (*WorkspaceService, *fakeUserRepo, *fakeWorkspaceRepo, *fakeMemberRepo) {
	users := newFakeUserRepo()
	members := newFakeMemberRepo()
	workspaces := newFakeWorkspaceRepo(members)
	svc := NewWorkspaceService(testAuthConfig(), WorkspaceDependencies{
		UserRepo:      users,
		WorkspaceRepo: workspaces,
		MemberRepo:    members,
	})
	return svc, users, workspaces, members
}

func TestCreateWorkspaceWithNewOwner(t *testing.T) {
	svc, users, _, members := newWorkspaceFixture()

	workspace, owner, err := svc.CreateWorkspace(context.Background(), "super-1", CreateWorkspaceInput{
		Name: "  Acme Phone Repairs ",
		Owner: PersonInput{
			Email:    "Owner@Acme.example",
			Password: "owner-pass",
		},
	})
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}
	if workspace.Name != "Acme Phone Repairs" {
		t.Errorf("name = %q, want trimmed", workspace.Name)
	}
	if workspace.OwnerUserID != owner.ID {
		t.Errorf("owner_user_id = %q, want %q", workspace.OwnerUserID, owner.ID)
	}
	if owner.Email != "owner@acme.example" {
		t.Errorf("owner email = %q, want lowercased", owner.Email)
	}
	if len(users.users) != 1 {
		t.Fatalf("users created = %d, want 1", len(users.users))
	}

	membership, err := members.GetByWorkspaceAndUser(context.Background(), workspace.ID, owner.ID)
	if err != nil {
		t.Fatalf("owner membership missing: %v", err)
	}
	if membership.Role != domain.WorkspaceRoleOwner {
		t.Errorf("membership role = %q, want owner", membership.Role)
	}
	if membership.Status != domain.MemberStatusActive {
		t.Errorf("membership status = %q, want active", membership.Status)
	}
}

func TestCreateWorkspaceNewOwnerRequiresPassword(t *testing.T) {
	svc, users, workspaces, _ := newWorkspaceFixture()

	_, _, err := svc.CreateWorkspace(context.Background(), "super-1", CreateWorkspaceInput{
		Name:  "Acme",
		Owner: PersonInput{Email: "owner@acme.example"},
	})

	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError, got %v", err)
	}
	if domainErr.HTTPStatus != 422 {
		t.Errorf("status = %d, want 422", domainErr.HTTPStatus)
	}
	if len(domainErr.Fields) != 1 || domainErr.Fields[0].Field != "password" {
		t.Errorf("fields = %+v, want single password field", domainErr.Fields)
	}
	if len(users.users) != 0 || len(workspaces.workspaces) != 0 {
		t.Error("nothing should be created on validation failure")
	}
}

func TestCreateWorkspaceExistingOwnerNeedsNoPassword(t *testing.T) {
	svc, users, _, _ := newWorkspaceFixture()
	existing := seedUser(t, users, "owner@acme.example", "already-set", domain.UserStatusActive)

	_, owner, err := svc.CreateWorkspace(context.Background(), "super-1", CreateWorkspaceInput{
		Name:  "Acme",
		Owner: PersonInput{Email: "owner@acme.example"},
	})
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}
	if owner.ID != existing.ID {
		t.Errorf("owner = %q, want existing user %q", owner.ID, existing.ID)
	}
	if len(users.users) != 1 {
		t.Errorf("users = %d, want no new user", len(users.users))
	}
}

func TestAddMemberDefaultsToMemberRole(t *testing.T) {
	svc, _, _, _ := newWorkspaceFixture()

	member, created, err := svc.AddMember(context.Background(), "ws-1", "inviter-1", AddMemberInput{
		Person: PersonInput{Email: "tech@acme.example", Password: "tech-pass"},
	})
	if err != nil {
		t.Fatalf("add member: %v", err)
	}
	if !created {
		t.Error("expected a newly created membership")
	}
	if member.Role != domain.WorkspaceRoleMember {
		t.Errorf("role = %q, want member", member.Role)
	}
	if member.Status != domain.MemberStatusActive {
		t.Errorf("status = %q, want active", member.Status)
	}
}

func TestAddMemberExistingActiveConflicts(t *testing.T) {
	svc, _, _, _ := newWorkspaceFixture()

	if _, _, err := svc.AddMember(context.Background(), "ws-1", "inviter-1", AddMemberInput{
		Person: PersonInput{Email: "tech@acme.example", Password: "tech-pass"},
	}); err != nil {
		t.Fatalf("first add: %v", err)
	}

	_, _, err := svc.AddMember(context.Background(), "ws-1", "inviter-1", AddMemberInput{
		Person: PersonInput{Email: "tech@acme.example"},
	})
	assertDomainError(t, err, 409, "member_already_exists")
}

func TestAddMemberReactivatesRemovedRow(t *testing.T) {
	svc, _, _, members := newWorkspaceFixture()

	member, _, err := svc.AddMember(context.Background(), "ws-1", "inviter-1", AddMemberInput{
		Person: PersonInput{Email: "tech@acme.example", Password: "tech-pass"},
	})
	if err != nil {
		t.Fatalf("add member: %v", err)
	}
	if err := svc.RemoveMember(context.Background(), "ws-1", member.ID); err != nil {
		t.Fatalf("remove member: %v", err)
	}

	readded, created, err := svc.AddMember(context.Background(), "ws-1", "inviter-2", AddMemberInput{
		Person: PersonInput{Email: "tech@acme.example"},
		Role:   domain.WorkspaceRoleAdmin,
	})
	if err != nil {
		t.Fatalf("re-add member: %v", err)
	}
	if created {
		t.Error("expected a reactivation, not a new membership")
	}
	if readded.ID != member.ID {
		t.Errorf("membership ID = %q, want the original %q", readded.ID, member.ID)
	}
	if readded.Role != domain.WorkspaceRoleAdmin {
		t.Errorf("role = %q, want admin after reactivation", readded.Role)
	}
	if readded.Status != domain.MemberStatusActive {
		t.Errorf("status = %q, want active", readded.Status)
	}
	if len(members.members) != 1 {
		t.Errorf("membership rows = %d, want 1", len(members.members))
	}
}

func TestRemoveMemberOwnerRefused(t *testing.T) {
	svc, _, _, _ := newWorkspaceFixture()

	workspace, owner, err := svc.CreateWorkspace(context.Background(), "super-1", CreateWorkspaceInput{
		Name:  "Acme",
		Owner: PersonInput{Email: "owner@acme.example", Password: "owner-pass"},
	})
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}
	membership, err := svc.members.GetByWorkspaceAndUser(context.Background(), workspace.ID, owner.ID)
	if err != nil {
		t.Fatalf("lookup owner membership: %v", err)
	}

	err = svc.RemoveMember(context.Background(), workspace.ID, membership.ID)
	assertDomainError(t, err, 422, "owner_cannot_be_removed")
}

func TestRemoveMemberAlreadyRemoved(t *testing.T) {
	svc, _, _, _ := newWorkspaceFixture()

	member, _, err := svc.AddMember(context.Background(), "ws-1", "inviter-1", AddMemberInput{
		Person: PersonInput{Email: "tech@acme.example", Password: "tech-pass"},
	})
	if err != nil {
		t.Fatalf("add member: %v", err)
	}
	if err := svc.RemoveMember(context.Background(), "ws-1", member.ID); err != nil {
		t.Fatalf("remove member: %v", err)
	}

	err = svc.RemoveMember(context.Background(), "ws-1", member.ID)
	assertDomainError(t, err, 404, "member_not_found")
}

func TestRemoveMemberUnknown(t *testing.T) {
	svc, _, _, _ := newWorkspaceFixture()

	err := svc.RemoveMember(context.Background(), "ws-1", "missing")
	assertDomainError(t, err, 404, "member_not_found")
}

func TestListMembersExcludesRemoved(t *testing.T) {
	svc, _, _, _ := newWorkspaceFixture()

	member, _, err := svc.AddMember(context.Background(), "ws-1", "inviter-1", AddMemberInput{
		Person: PersonInput{Email: "tech@acme.example", Password: "tech-pass"},
	})
	if err != nil {
		t.Fatalf("add member: %v", err)
	}
	if _, _, err := svc.AddMember(context.Background(), "ws-1", "inviter-1", AddMemberInput{
		Person: PersonInput{Email: "other@acme.example", Password: "other-pass"},
	}); err != nil {
		t.Fatalf("add second member: %v", err)
	}
	if err := svc.RemoveMember(context.Background(), "ws-1", member.ID); err != nil {
		t.Fatalf("remove member: %v", err)
	}

	listed, err := svc.ListMembers(context.Background(), "ws-1")
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("members listed = %d, want 1", len(listed))
	}
	if listed[0].Member.ID == member.ID {
		t.Error("removed member should not be listed")
	}
}
