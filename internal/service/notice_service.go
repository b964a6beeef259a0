package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/practice-kit/practice-service/internal/access"
	"github.com/practice-kit/practice-service/internal/domain"
	"github.com/practice-kit/practice-service/internal/events"
	"github.com/practice-kit/practice-service/internal/repository"
	apperrors "github.com/practice-kit/practice-service/pkg/util"
)

// NoticeService manages the announcement board, including reactions and
// the per-notice discussion thread.
type NoticeService struct {
	notices    repository.NoticeRepository
	staff      repository.StaffRepository
	dispatcher events.Dispatcher
}

// NoticeDependencies wires repositories into the service.
type NoticeDependencies struct {
	NoticeRepo repository.NoticeRepository
	StaffRepo  repository.StaffRepository
	Dispatcher events.Dispatcher
}

// NewNoticeService builds the service.
func NewNoticeService(deps NoticeDependencies) *NoticeService {
	return &NoticeService{
		notices:    deps.NoticeRepo,
		staff:      deps.StaffRepo,
		dispatcher: deps.Dispatcher,
	}
}

// NoticeInput carries the writable fields of a notice.
type NoticeInput struct {
	Content  string
	Everyone bool
	Handles  []string
}

// CreateNotice posts an announcement addressed to everyone or to a set
// of staff handles. The author is always the acting member.
func (s *NoticeService) CreateNotice(ctx context.Context, actor *domain.StaffMember, input NoticeInput) (*domain.Notice, error) {
	audience, err := s.buildAudience(ctx, input)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, apperrors.NewValidationError("notice content is required", nil)
	}

	notice := &domain.Notice{
		Author:    actor.Handle,
		Content:   strings.TrimSpace(input.Content),
		Audience:  audience,
		Reactions: []domain.Reaction{},
		Comments:  []domain.Comment{},
	}
	if err := s.notices.Create(ctx, notice); err != nil {
		return nil, err
	}

	publishRecordChange(ctx, s.dispatcher, actor.Handle, events.CollectionNotices, events.OpCreated, notice.ID, notice.Author)
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:        events.EventNoticePosted,
		ActorHandle: actor.Handle,
		Payload: events.NoticePostedPayload{
			NoticeID: notice.ID,
			Everyone: notice.Audience.Everyone,
		},
	})
	return notice, nil
}

// UpdateNotice edits the content or audience. Only the author or an
// admin may edit.
func (s *NoticeService) UpdateNotice(ctx context.Context, actor *domain.StaffMember, id string, input NoticeInput) (*domain.Notice, error) {
	notice, err := s.getNotice(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanEditNotice(actor, notice) {
		return nil, apperrors.NewForbidden("only the author may edit a notice")
	}
	audience, err := s.buildAudience(ctx, input)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, apperrors.NewValidationError("notice content is required", nil)
	}

	notice.Content = strings.TrimSpace(input.Content)
	notice.Audience = audience
	if err := s.saveNotice(ctx, actor, notice); err != nil {
		return nil, err
	}
	return notice, nil
}

// DeleteNotice removes a notice. Only the author or an admin may delete.
func (s *NoticeService) DeleteNotice(ctx context.Context, actor *domain.StaffMember, id string) error {
	notice, err := s.getNotice(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanEditNotice(actor, notice) {
		return apperrors.NewForbidden("only the author may delete a notice")
	}

	if err := s.notices.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("notice", map[string]any{"id": id})
		}
		return err
	}

	publishRecordChange(ctx, s.dispatcher, actor.Handle, events.CollectionNotices, events.OpDeleted, id, notice.Author)
	return nil
}

// GetNotice fetches one notice, enforcing audience visibility.
func (s *NoticeService) GetNotice(ctx context.Context, actor *domain.StaffMember, id string) (*domain.Notice, error) {
	notice, err := s.getNotice(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanViewNotice(actor, notice) {
		return nil, apperrors.NewForbidden("notice is not addressed to you")
	}
	return notice, nil
}

// ListNotices returns the notices visible to the actor, newest first.
func (s *NoticeService) ListNotices(ctx context.Context, actor *domain.StaffMember) ([]domain.Notice, error) {
	all, err := s.notices.List(ctx)
	if err != nil {
		return nil, err
	}
	return access.FilterNotices(actor, all), nil
}

// ToggleReaction flips the actor's reaction with the given emoji on the
// notice. Repeating the call with the same emoji removes it again.
func (s *NoticeService) ToggleReaction(ctx context.Context, actor *domain.StaffMember, noticeID, emoji string) (*domain.Notice, error) {
	if emoji == "" {
		return nil, apperrors.NewValidationError("emoji is required", nil)
	}

	notice, err := s.getNotice(ctx, noticeID)
	if err != nil {
		return nil, err
	}
	if !access.CanViewNotice(actor, notice) {
		return nil, apperrors.NewForbidden("notice is not addressed to you")
	}

	notice.Reactions = domain.ToggleReaction(notice.Reactions, emoji, actor.Handle)
	if err := s.saveNotice(ctx, actor, notice); err != nil {
		return nil, err
	}
	return notice, nil
}

// AddComment appends a comment to the notice's thread.
func (s *NoticeService) AddComment(ctx context.Context, actor *domain.StaffMember, noticeID, content string) (*domain.Notice, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.NewValidationError("comment content is required", nil)
	}

	notice, err := s.getNotice(ctx, noticeID)
	if err != nil {
		return nil, err
	}
	if !access.CanViewNotice(actor, notice) {
		return nil, apperrors.NewForbidden("notice is not addressed to you")
	}

	notice.Comments = append(notice.Comments, domain.Comment{
		ID:        uuid.NewString(),
		Author:    actor.Handle,
		Content:   strings.TrimSpace(content),
		Reactions: []domain.Reaction{},
		CreatedAt: time.Now(),
	})
	if err := s.saveNotice(ctx, actor, notice); err != nil {
		return nil, err
	}
	return notice, nil
}

// DeleteComment removes a comment. The comment author or an admin may
// delete it.
func (s *NoticeService) DeleteComment(ctx context.Context, actor *domain.StaffMember, noticeID, commentID string) (*domain.Notice, error) {
	notice, err := s.getNotice(ctx, noticeID)
	if err != nil {
		return nil, err
	}
	if !access.CanViewNotice(actor, notice) {
		return nil, apperrors.NewForbidden("notice is not addressed to you")
	}

	idx := -1
	for i, c := range notice.Comments {
		if c.ID == commentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperrors.NewNotFound("comment", map[string]any{"id": commentID})
	}
	if notice.Comments[idx].Author != actor.Handle && !actor.IsAdmin() {
		return nil, apperrors.NewForbidden("only the comment author may delete it")
	}

	notice.Comments = append(notice.Comments[:idx:idx], notice.Comments[idx+1:]...)
	if err := s.saveNotice(ctx, actor, notice); err != nil {
		return nil, err
	}
	return notice, nil
}

// ToggleCommentReaction flips the actor's emoji reaction on one comment.
func (s *NoticeService) ToggleCommentReaction(ctx context.Context, actor *domain.StaffMember, noticeID, commentID, emoji string) (*domain.Notice, error) {
	if emoji == "" {
		return nil, apperrors.NewValidationError("emoji is required", nil)
	}

	notice, err := s.getNotice(ctx, noticeID)
	if err != nil {
		return nil, err
	}
	if !access.CanViewNotice(actor, notice) {
		return nil, apperrors.NewForbidden("notice is not addressed to you")
	}

	found := false
	for i := range notice.Comments {
		if notice.Comments[i].ID == commentID {
			notice.Comments[i].Reactions = domain.ToggleReaction(notice.Comments[i].Reactions, emoji, actor.Handle)
			found = true
			break
		}
	}
	if !found {
		return nil, apperrors.NewNotFound("comment", map[string]any{"id": commentID})
	}

	if err := s.saveNotice(ctx, actor, notice); err != nil {
		return nil, err
	}
	return notice, nil
}

func (s *NoticeService) getNotice(ctx context.Context, id string) (*domain.Notice, error) {
	notice, err := s.notices.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("notice", map[string]any{"id": id})
		}
		return nil, err
	}
	return notice, nil
}

func (s *NoticeService) saveNotice(ctx context.Context, actor *domain.StaffMember, notice *domain.Notice) error {
	if err := s.notices.Update(ctx, notice); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("notice", map[string]any{"id": notice.ID})
		}
		return err
	}
	publishRecordChange(ctx, s.dispatcher, actor.Handle, events.CollectionNotices, events.OpUpdated, notice.ID, notice.Author)
	return nil
}

func (s *NoticeService) buildAudience(ctx context.Context, input NoticeInput) (domain.Audience, error) {
	if input.Everyone {
		return domain.Audience{Everyone: true}, nil
	}
	if len(input.Handles) == 0 {
		return domain.Audience{}, apperrors.NewValidationError("audience must be everyone or a list of handles", nil)
	}

	handles := make([]string, 0, len(input.Handles))
	for _, h := range input.Handles {
		handle := domain.NormalizeHandle(h)
		if _, err := s.staff.GetByHandle(ctx, handle); err != nil {
			if err == pgx.ErrNoRows {
				return domain.Audience{}, apperrors.NewValidationError("unknown staff handle", map[string]any{"handle": h})
			}
			return domain.Audience{}, err
		}
		handles = append(handles, handle)
	}
	return domain.Audience{Handles: handles}, nil
}
