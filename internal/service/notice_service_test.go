package service

import (
	"context"
	"testing"

	"github.com/practice-kit/practice-service/internal/domain"
	apperrors "github.com/practice-kit/practice-service/pkg/util"
)

func newTestNoticeService(notices *fakeNoticeRepo, staff *fakeStaffRepo) *NoticeService {
	return NewNoticeService(NoticeDependencies{
		NoticeRepo: notices,
		StaffRepo:  staff,
	})
}

func rosterRepo() *fakeStaffRepo {
	return &fakeStaffRepo{members: []domain.StaffMember{
		{ID: "staff-admin", Handle: "gabriella.souza", Role: domain.StaffRoleAdmin, Active: true},
		{ID: "staff-teacher", Handle: "bruno.costa", Role: domain.StaffRoleTeacher, Active: true},
	}}
}

func TestToggleReactionRoundTrip(t *testing.T) {
	notices := &fakeNoticeRepo{notices: []domain.Notice{
		{ID: "n1", Author: "gabriella.souza", Content: "staff meeting friday", Audience: domain.Audience{Everyone: true}},
	}}
	svc := newTestNoticeService(notices, rosterRepo())
	actor := teacherMember()

	notice, err := svc.ToggleReaction(context.Background(), actor, "n1", "👍")
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if len(notice.Reactions) != 1 {
		t.Fatalf("reactions = %d, want 1", len(notice.Reactions))
	}
	if notice.Reactions[0].Handle != "bruno.costa" || notice.Reactions[0].Emoji != "👍" {
		t.Errorf("reaction = %+v", notice.Reactions[0])
	}

	notice, err = svc.ToggleReaction(context.Background(), actor, "n1", "👍")
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if len(notice.Reactions) != 0 {
		t.Errorf("reactions = %d after second toggle, want 0", len(notice.Reactions))
	}
}

func TestToggleReactionDistinctEmojis(t *testing.T) {
	notices := &fakeNoticeRepo{notices: []domain.Notice{
		{ID: "n1", Author: "gabriella.souza", Audience: domain.Audience{Everyone: true}},
	}}
	svc := newTestNoticeService(notices, rosterRepo())
	actor := teacherMember()

	if _, err := svc.ToggleReaction(context.Background(), actor, "n1", "👍"); err != nil {
		t.Fatalf("first emoji: %v", err)
	}
	notice, err := svc.ToggleReaction(context.Background(), actor, "n1", "🎉")
	if err != nil {
		t.Fatalf("second emoji: %v", err)
	}
	if len(notice.Reactions) != 2 {
		t.Errorf("reactions = %d, want one per distinct emoji", len(notice.Reactions))
	}
}

func TestNoticeAudienceScoping(t *testing.T) {
	notices := &fakeNoticeRepo{notices: []domain.Notice{
		{ID: "n1", Author: "gabriella.souza", Content: "for everyone", Audience: domain.Audience{Everyone: true}},
		{ID: "n2", Author: "gabriella.souza", Content: "admins only", Audience: domain.Audience{Handles: []string{"gabriella.souza"}}},
		{ID: "n3", Author: "gabriella.souza", Content: "for bruno", Audience: domain.Audience{Handles: []string{"bruno.costa"}}},
	}}
	svc := newTestNoticeService(notices, rosterRepo())

	visible, err := svc.ListNotices(context.Background(), teacherMember())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(visible) != 2 {
		t.Fatalf("teacher sees %d notices, want 2", len(visible))
	}
	for _, n := range visible {
		if n.ID == "n2" {
			t.Error("teacher must not see a notice addressed to others")
		}
	}

	if _, err := svc.GetNotice(context.Background(), teacherMember(), "n2"); err == nil {
		t.Error("expected forbidden reading an unaddressed notice")
	}
}

func TestAddCommentAndReact(t *testing.T) {
	notices := &fakeNoticeRepo{notices: []domain.Notice{
		{ID: "n1", Author: "gabriella.souza", Audience: domain.Audience{Everyone: true}},
	}}
	svc := newTestNoticeService(notices, rosterRepo())

	notice, err := svc.AddComment(context.Background(), teacherMember(), "n1", "noted, thanks")
	if err != nil {
		t.Fatalf("comment: %v", err)
	}
	if len(notice.Comments) != 1 {
		t.Fatalf("comments = %d, want 1", len(notice.Comments))
	}
	comment := notice.Comments[0]
	if comment.Author != "bruno.costa" || comment.ID == "" {
		t.Errorf("comment = %+v", comment)
	}

	notice, err = svc.ToggleCommentReaction(context.Background(), adminMember(), "n1", comment.ID, "❤️")
	if err != nil {
		t.Fatalf("comment reaction: %v", err)
	}
	if len(notice.Comments[0].Reactions) != 1 {
		t.Errorf("comment reactions = %d, want 1", len(notice.Comments[0].Reactions))
	}

	_, err = svc.ToggleCommentReaction(context.Background(), adminMember(), "n1", "missing", "❤️")
	if !apperrors.IsNotFound(err) {
		t.Errorf("expected not found for unknown comment, got %v", err)
	}
}

func TestUpdateNoticeAuthorOnly(t *testing.T) {
	notices := &fakeNoticeRepo{notices: []domain.Notice{
		{ID: "n1", Author: "gabriella.souza", Content: "original", Audience: domain.Audience{Everyone: true}},
	}}
	svc := newTestNoticeService(notices, rosterRepo())

	_, err := svc.UpdateNotice(context.Background(), teacherMember(), "n1", NoticeInput{Content: "hijacked", Everyone: true})
	if de := apperrors.ToDomainError(err); de == nil || de.Code != "FORBIDDEN" {
		t.Errorf("expected FORBIDDEN, got %v", err)
	}

	updated, err := svc.UpdateNotice(context.Background(), adminMember(), "n1", NoticeInput{Content: "revised", Everyone: true})
	if err != nil {
		t.Fatalf("author update: %v", err)
	}
	if updated.Content != "revised" {
		t.Errorf("content = %q", updated.Content)
	}
}

func TestCreateNoticeValidatesAudience(t *testing.T) {
	svc := newTestNoticeService(&fakeNoticeRepo{}, rosterRepo())

	if _, err := svc.CreateNotice(context.Background(), adminMember(), NoticeInput{Content: "hello"}); err == nil {
		t.Error("expected error for empty audience")
	}
	if _, err := svc.CreateNotice(context.Background(), adminMember(), NoticeInput{Content: "hello", Handles: []string{"ghost"}}); err == nil {
		t.Error("expected error for unknown handle")
	}
}
