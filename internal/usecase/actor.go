package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/greenstamp/greenstamp/internal/domain"
	"github.com/greenstamp/greenstamp/internal/infra/database/models"
)

const (
	ecoActorsCacheKey = "greenstamp:eco-actors"
	ecoActorsCacheTTL = 60 // seconds

	recentProofLimit = 5
)

// ActorUsecase serves the aggregated read views over users, their badges
// and their latest proofs. The eco-actors listing is cached briefly in
// memcached because it fans out across three tables.
type ActorUsecase struct {
	users  UserRepository
	badges BadgeRepository
	mc     *memcache.Client
}

func NewActorUsecase(users UserRepository, badges BadgeRepository, mc *memcache.Client) *ActorUsecase {
	return &ActorUsecase{
		users:  users,
		badges: badges,
		mc:     mc,
	}
}

func (uc *ActorUsecase) EcoActors(ctx context.Context) ([]domain.EcoActor, error) {
	ctx, span := tracer.Start(ctx, "Actor.EcoActors")
	defer span.End()

	if uc.mc != nil {
		if item, err := uc.mc.Get(ecoActorsCacheKey); err == nil {
			var cached []domain.EcoActor
			if err := json.Unmarshal(item.Value, &cached); err == nil {
				return cached, nil
			}
		}
	}

	users, err := uc.users.ListByImpact(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	userIDs := make([]string, 0, len(users))
	for _, user := range users {
		userIDs = append(userIDs, user.ID)
	}
	awardsByUser, err := uc.badges.ListByUsers(ctx, userIDs)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	actors := make([]domain.EcoActor, 0, len(users))
	for _, user := range users {
		proofs, err := uc.users.ListProofs(ctx, user.ID, recentProofLimit)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		actors = append(actors, domain.EcoActor{
			ID:           user.ID,
			Name:         user.Name,
			Email:        user.Email,
			Bio:          user.Bio,
			TotalProofs:  user.TotalProofs,
			TotalImpact:  user.TotalImpact,
			Badges:       toBadgeAwards(awardsByUser[user.ID]),
			RecentProofs: toProofSummaries(proofs),
		})
	}

	if uc.mc != nil {
		if payload, err := json.Marshal(actors); err == nil {
			err := uc.mc.Set(&memcache.Item{
				Key:        ecoActorsCacheKey,
				Value:      payload,
				Expiration: ecoActorsCacheTTL,
			})
			if err != nil {
				slog.WarnContext(ctx, "failed to cache eco-actors",
					slog.String("error", err.Error()),
					slog.String("module", "actor"),
				)
			}
		}
	}

	return actors, nil
}

func (uc *ActorUsecase) Profile(ctx context.Context, userID string) (domain.Profile, error) {
	ctx, span := tracer.Start(ctx, "Actor.Profile")
	defer span.End()

	user, err := uc.users.Get(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}

	awards, err := uc.badges.ListByUser(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return domain.Profile{}, err
	}

	proofs, err := uc.users.ListProofs(ctx, userID, recentProofLimit)
	if err != nil {
		span.RecordError(err)
		return domain.Profile{}, err
	}

	return domain.Profile{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Avatar:       user.Avatar,
		Bio:          user.Bio,
		TotalProofs:  user.TotalProofs,
		TotalImpact:  user.TotalImpact,
		CreatedAt:    user.CreatedAt,
		Badges:       toBadgeAwards(awards),
		RecentProofs: toProofSummaries(proofs),
	}, nil
}

func toBadgeAwards(awards []models.UserBadge) []domain.BadgeAward {
	views := make([]domain.BadgeAward, 0, len(awards))
	for _, award := range awards {
		views = append(views, domain.BadgeAward{
			ID:          award.Badge.ID,
			Name:        award.Badge.Name,
			Description: award.Badge.Description,
			Icon:        award.Badge.Icon,
			Color:       award.Badge.Color,
			AwardedAt:   award.AwardedAt,
			AwardedBy:   award.AwardedBy,
		})
	}
	return views
}

func toProofSummaries(proofs []models.Proof) []domain.ProofSummary {
	views := make([]domain.ProofSummary, 0, len(proofs))
	for _, proof := range proofs {
		views = append(views, domain.ProofSummary{
			ID:               proof.ID,
			Title:            proof.Title,
			Category:         proof.Category,
			CreatedAt:        proof.CreatedAt,
			CID:              proof.CID,
			BlockchainStatus: proof.BlockchainStatus,
		})
	}
	return views
}
