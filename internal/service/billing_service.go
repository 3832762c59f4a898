package service

import (
	"context"
	"log/slog"
	"strings"

	"resumin/internal/marketplace"
	"resumin/internal/models"
	"resumin/internal/repository"
	"resumin/internal/validation"
)

const freePlanName = "Free"

// PlanResolver answers what marketplace plan a GitHub account is on.
type PlanResolver interface {
	AccountPlan(ctx context.Context, githubLogin string) (*marketplace.Plan, error)
}

// BillingStatus is the billing state reported to the account holder.
type BillingStatus struct {
	Plan        string `json:"plan"`
	IsPaid      bool   `json:"isPaid"`
	OnTrial     bool   `json:"onTrial"`
	UpgradeURL  string `json:"upgradeUrl,omitempty"`
	GithubLogin string `json:"githubLogin,omitempty"`
}

// BillingService reports a user's plan from their GitHub Marketplace purchase.
type BillingService struct {
	userRepo   repository.UserRepository
	plans      PlanResolver
	upgradeURL string
}

func NewBillingService(userRepo repository.UserRepository, plans PlanResolver, upgradeURL string) *BillingService {
	return &BillingService{
		userRepo:   userRepo,
		plans:      plans,
		upgradeURL: upgradeURL,
	}
}

// Status returns the user's current plan. Users without a linked GitHub
// account, or without a purchase, are on the free plan. Marketplace lookup
// failures degrade to free rather than blocking the account page.
func (s *BillingService) Status(ctx context.Context, userID uint) (*BillingStatus, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", userID)
	}
	return s.statusFor(ctx, user), nil
}

// LinkAccount records the GitHub account a user purchases through, then
// re-resolves their plan so the response reflects any existing purchase on
// that account.
func (s *BillingService) LinkAccount(ctx context.Context, userID uint, githubLogin string) (*BillingStatus, error) {
	githubLogin = strings.TrimSpace(githubLogin)
	if err := validation.ValidateGithubLogin(githubLogin); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", userID)
	}

	user.GithubLogin = githubLogin
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.statusFor(ctx, user), nil
}

func (s *BillingService) statusFor(ctx context.Context, user *models.User) *BillingStatus {
	status := &BillingStatus{
		Plan:        freePlanName,
		GithubLogin: user.GithubLogin,
		UpgradeURL:  s.upgradeURL,
	}
	if user.GithubLogin == "" || s.plans == nil {
		return status
	}

	plan, err := s.plans.AccountPlan(ctx, user.GithubLogin)
	if err != nil {
		slog.WarnContext(ctx, "marketplace plan lookup failed",
			slog.Uint64("user_id", uint64(user.ID)),
			slog.String("error", err.Error()))
		return status
	}
	if plan == nil {
		return status
	}

	status.Plan = plan.Name
	status.IsPaid = plan.IsPaid
	status.OnTrial = plan.OnTrial
	if plan.IsPaid {
		status.UpgradeURL = ""
	}
	return status
}
