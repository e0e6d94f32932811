package services

import (
	"context"
	"errors"
	"fmt"

	"etkinlik.link/configs/configsdatabase"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/pkg/queryparams"
	"etkinlik.link/repositories"

	"gorm.io/gorm"
)

// ReviewServiceError değerlendirme servis hataları.
type ReviewServiceError string

func (e ReviewServiceError) Error() string { return string(e) }

const (
	ErrReviewNotFound     ReviewServiceError = "değerlendirme bulunamadı"
	ErrReviewExists       ReviewServiceError = "bu etkinliği zaten değerlendirdiniz"
	ErrReviewInvalidScore ReviewServiceError = "puan 1 ile 5 arasında olmalıdır"
	ErrReviewCreateFailed ReviewServiceError = "değerlendirme kaydedilemedi"
)

// IReviewService değerlendirme işlemleri için arayüz.
type IReviewService interface {
	SubmitReview(ctx context.Context, eventID uint, rating int, comment string, caller Caller) (*models.Review, error)
	ModerateReview(ctx context.Context, reviewID uint, decision models.ReviewStatus, caller Caller) error
	ReplyToReview(ctx context.Context, reviewID uint, reply string, caller Caller) error
	ListReviews(ctx context.Context, eventID uint, params queryparams.ListParams, caller Caller) (*queryparams.PaginatedResult, error)
}

// ReviewService IReviewService arayüzünü uygular.
type ReviewService struct {
	reviewRepo repositories.IReviewRepository
	eventRepo  repositories.IEventRepository
}

// NewReviewService üretim kurulumunda global bağlantıyı kullanır.
func NewReviewService() IReviewService {
	return NewReviewServiceWithDB(configsdatabase.GetDB())
}

// NewReviewServiceWithDB bağlantıyı dışarıdan alır (test ve DI).
func NewReviewServiceWithDB(db *gorm.DB) IReviewService {
	return &ReviewService{
		reviewRepo: repositories.NewReviewRepositoryWithDB(db),
		eventRepo:  repositories.NewEventRepositoryWithDB(db),
	}
}

// SubmitReview kullanıcı başına etkinlikte tek değerlendirme kuralıyla
// pending durumda kayıt açar.
func (s *ReviewService) SubmitReview(ctx context.Context, eventID uint, rating int, comment string, caller Caller) (*models.Review, error) {
	if caller.IsAnonymous() {
		return nil, ErrUnauthorized
	}
	if rating < 1 || rating > 5 {
		return nil, ErrReviewInvalidScore
	}

	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if _, err := s.reviewRepo.FindByEventAndUser(ctx, eventID, caller.UserID); err == nil {
		return nil, ErrReviewExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	review := &models.Review{
		EventID: eventID,
		UserID:  caller.UserID,
		Rating:  rating,
		Comment: comment,
		Status:  models.SubmissionStatusPending,
	}
	if err := s.reviewRepo.Create(models.ContextWithUserID(ctx, caller.UserID), review); err != nil {
		configslog.SLog.Errorf("SubmitReview: kayıt başarısız (etkinlik=%d kullanıcı=%d): %v", eventID, caller.UserID, err)
		return nil, ErrReviewCreateFailed
	}
	return review, nil
}

// ModerateReview kararı koşulsuz uygular (başvuru moderasyonuyla aynı sözleşme).
func (s *ReviewService) ModerateReview(ctx context.Context, reviewID uint, decision models.ReviewStatus, caller Caller) error {
	if decision != models.SubmissionStatusApproved && decision != models.SubmissionStatusRejected {
		return fmt.Errorf("%w: %s", ErrInvalidDecision, decision)
	}

	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	event, err := s.eventRepo.FindByID(ctx, review.EventID)
	if err != nil {
		return err
	}
	if err := Authorize(caller, event, ActionModerate); err != nil {
		return err
	}
	return s.reviewRepo.UpdateStatus(models.ContextWithUserID(ctx, caller.UserID), reviewID, decision)
}

// ReplyToReview organizatörün tek yanıt hakkını kullanır (tekrar çağrı yanıtı değiştirir).
func (s *ReviewService) ReplyToReview(ctx context.Context, reviewID uint, reply string, caller Caller) error {
	if reply == "" {
		return fmt.Errorf("%w: yanıt boş olamaz", ErrEventInvalidInput)
	}
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	event, err := s.eventRepo.FindByID(ctx, review.EventID)
	if err != nil {
		return err
	}
	if err := Authorize(caller, event, ActionModerate); err != nil {
		return err
	}
	return s.reviewRepo.UpdateReply(models.ContextWithUserID(ctx, caller.UserID), reviewID, reply, caller.UserID)
}

func (s *ReviewService) ListReviews(ctx context.Context, eventID uint, params queryparams.ListParams, caller Caller) (*queryparams.PaginatedResult, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if err := Authorize(caller, event, ActionView); err != nil {
		return nil, err
	}

	params.Validate()
	reviews, totalCount, err := s.reviewRepo.FindAllByEventPaginated(ctx, eventID, params)
	if err != nil {
		return nil, err
	}
	return paginated(reviews, params, totalCount), nil
}

var _ IReviewService = (*ReviewService)(nil)
