package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sharelist/sharelist-api/internal/domain/entity"
	repo "github.com/sharelist/sharelist-api/internal/domain/repository"
	"github.com/sharelist/sharelist-api/pkg/apperr"
	"github.com/sharelist/sharelist-api/pkg/mailer"
)

// SharePublisher pushes share-notification jobs onto the email queue.
// Satisfied by helpers.RabbitPublisher; nil disables notifications.
type SharePublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// ListService owns lists and their membership relation. Every authorization
// decision is a flat set-containment test on Members; the creator holds no
// extra rights.
type ListService struct {
	Lists     repo.ListRepository
	Users     repo.UserRepository
	Publisher SharePublisher
	Logger    *logrus.Logger
}

func NewListService(lists repo.ListRepository, users repo.UserRepository, pub SharePublisher, logger *logrus.Logger) *ListService {
	return &ListService{Lists: lists, Users: users, Publisher: pub, Logger: logger}
}

var allListRelations = repo.ListRelations{Members: true, Items: true, CreatedBy: true}

// Create makes a new list whose sole member and creator is the requesting
// user.
func (s *ListService) Create(ctx context.Context, title string, userID int64) (*entity.List, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperr.Validation("title must not be empty")
	}
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	l := &entity.List{Title: title}
	if err := s.Lists.Create(ctx, l, user.ID); err != nil {
		return nil, err
	}
	l.Members = []entity.User{*user}
	l.CreatedBy = user
	return l, nil
}

// FindAll returns every list with members and items populated. The listing
// is public, matching the read policy of FindOne without a user.
func (s *ListService) FindAll(ctx context.Context) ([]entity.List, error) {
	return s.Lists.GetAll(ctx, allListRelations)
}

// FindOne loads a list with its relations. When userID is non-nil the
// caller must be a member; an anonymous read skips the check entirely.
func (s *ListService) FindOne(ctx context.Context, id int64, userID *int64) (*entity.List, error) {
	l, err := s.Lists.GetByID(ctx, id, allListRelations)
	if err != nil {
		return nil, err
	}
	if userID != nil && !l.HasMember(*userID) {
		return nil, apperr.Forbidden("you do not have access to this list")
	}
	return l, nil
}

// Update changes the list title. Membership is enforced by loading through
// FindOne before anything is written.
func (s *ListService) Update(ctx context.Context, id int64, title string, userID int64) (*entity.List, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperr.Validation("title must not be empty")
	}
	l, err := s.FindOne(ctx, id, &userID)
	if err != nil {
		return nil, err
	}
	if err := s.Lists.UpdateTitle(ctx, id, title); err != nil {
		return nil, err
	}
	l.Title = title
	return l, nil
}

// Remove deletes the list; its items are destroyed by the storage cascade.
func (s *ListService) Remove(ctx context.Context, id int64, userID int64) error {
	if _, err := s.FindOne(ctx, id, &userID); err != nil {
		return err
	}
	return s.Lists.Delete(ctx, id)
}

// Share adds the user behind email to the membership set. Any current
// member may share; the target must exist and must not already be a member.
func (s *ListService) Share(ctx context.Context, listID int64, email string, userID int64) (*entity.List, error) {
	l, err := s.Lists.GetByID(ctx, listID, repo.ListRelations{Members: true})
	if err != nil {
		return nil, err
	}
	if !l.HasMember(userID) {
		return nil, apperr.Forbidden("you do not have permission to share this list")
	}

	target, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if l.HasMember(target.ID) {
		return nil, apperr.Conflict("user is already in the list")
	}

	if err := s.Lists.AddMember(ctx, listID, target.ID); err != nil {
		return nil, err
	}
	l.Members = append(l.Members, *target)

	s.notifyShared(ctx, l, target, userID)
	return l, nil
}

// notifyShared queues the notification email. Best effort: a broker outage
// must not fail a share that already committed.
func (s *ListService) notifyShared(ctx context.Context, l *entity.List, target *entity.User, sharedByID int64) {
	if s.Publisher == nil {
		return
	}
	sharedBy := ""
	for _, m := range l.Members {
		if m.ID == sharedByID {
			sharedBy = m.Email
			break
		}
	}
	job := mailer.EmailJob{
		To:       target.Email,
		Template: "list_shared",
		Data: map[string]any{
			"ListTitle": l.Title,
			"SharedBy":  sharedBy,
		},
	}
	if err := s.Publisher.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"list_id": l.ID,
			"to":      target.Email,
		}).Warn("share notification publish failed")
	}
}
